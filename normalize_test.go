// Copyright 2026 The Nakama Search Core Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrapBoost_FoldsOuterIntoSurvivingChild(t *testing.T) {
	child := Term{Field: "body", Text: "fox", BoostValue: 2}
	got := rewrapBoost(child, 3)
	assert.Equal(t, float64(6), got.(Term).Boost())
}

func TestRewrapBoost_OuterOneIsNoop(t *testing.T) {
	child := NewTerm("body", "fox")
	assert.Equal(t, child, rewrapBoost(child, 1))
}

func TestAnd_NormalizeDoesNotFlattenBoostedNestedAnd(t *testing.T) {
	inner := And{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}, BoostValue: 2}
	outer := And{Children: []Query{inner, NewTerm("body", "c")}}
	got := outer.Normalize().(And)
	assert.Len(t, got.Children, 2)
}

func TestOr_NormalizeDoesNotFlattenMinMatchNestedOr(t *testing.T) {
	inner := Or{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}, MinMatch: 2}
	outer := Or{Children: []Query{inner, NewTerm("body", "c")}}
	got := outer.Normalize().(Or)
	assert.Len(t, got.Children, 2)
}

func TestDedupeTerms_DoesNotDedupeNestedTerms(t *testing.T) {
	nested := And{Children: []Query{NewTerm("body", "a")}, BoostValue: 2}
	out := dedupeTerms([]Query{NewTerm("body", "a"), nested})
	assert.Len(t, out, 2)
}

func TestDedupeTerms_RespectsDistinctBoosts(t *testing.T) {
	a := NewTerm("body", "x")
	b := Term{Field: "body", Text: "x", BoostValue: 2}
	out := dedupeTerms([]Query{a, b})
	assert.Len(t, out, 2)
}
