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
	"github.com/stretchr/testify/require"

	"github.com/heroiclabs/nakama-search-core/search"
)

func TestAnd_MatcherIntersectsChildren(t *testing.T) {
	r := basicReader()
	q := And{Children: []Query{NewTerm("body", "quick"), NewTerm("body", "fox")}}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestAnd_SimplifySplitsNotIntoAndNot(t *testing.T) {
	r := basicReader()
	q := And{Children: []Query{NewTerm("body", "quick"), Not{Child: NewTerm("body", "brown")}}}
	got, err := q.Simplify(r)
	require.NoError(t, err)
	andNot, ok := got.(AndNot)
	require.True(t, ok, "Simplify result should be AndNot, got %T", got)
	assert.True(t, andNot.Positive.Equals(NewTerm("body", "quick")))
	assert.True(t, andNot.Negative.Equals(NewTerm("body", "brown")))

	m, err := got.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)
}

func TestAnd_SimplifyAllNotChildrenIsNullPositive(t *testing.T) {
	r := basicReader()
	q := And{Children: []Query{Not{Child: NewTerm("body", "fox")}}}
	got, err := q.Simplify(r)
	require.NoError(t, err)
	assert.Equal(t, NullQuery{}, got)
}

func TestAnd_NormalizeFlattensNestedAnd(t *testing.T) {
	inner := And{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}}
	outer := And{Children: []Query{inner, NewTerm("body", "c")}}
	got := outer.Normalize()
	want := And{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b"), NewTerm("body", "c")}}
	assert.True(t, got.Equals(want))
}

func TestAnd_NormalizeNullAbsorbs(t *testing.T) {
	q := And{Children: []Query{NewTerm("body", "a"), NullQuery{}}}
	assert.Equal(t, NullQuery{}, q.Normalize())
}

func TestAnd_NormalizeEmptyIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, And{}.Normalize())
}

func TestAnd_NormalizeSingletonCollapses(t *testing.T) {
	got := And{Children: []Query{NewTerm("body", "a")}}.Normalize()
	assert.True(t, got.Equals(NewTerm("body", "a")))
}

func TestAnd_NormalizeDedupesDirectTermChildren(t *testing.T) {
	q := And{Children: []Query{NewTerm("body", "a"), NewTerm("body", "a")}}
	got := q.Normalize()
	assert.True(t, got.Equals(NewTerm("body", "a")))
}

func TestAnd_String(t *testing.T) {
	q := And{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}}
	assert.Equal(t, "(body:a AND body:b)", q.String())
}

func TestOr_MatcherUnionsChildren(t *testing.T) {
	r := basicReader()
	q := Or{Children: []Query{NewTerm("body", "dog"), NewTerm("body", "fox")}}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestOr_MinMatchRequiresMultipleChildren(t *testing.T) {
	r := basicReader()
	q := Or{Children: []Query{NewTerm("body", "quick"), NewTerm("body", "fox"), NewTerm("body", "dog")}, MinMatch: 2}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids) // doc 0 and 2 both have quick+fox
}

func TestOr_NormalizeDropsNullChildren(t *testing.T) {
	q := Or{Children: []Query{NewTerm("body", "a"), NullQuery{}}}
	got := q.Normalize()
	assert.True(t, got.Equals(NewTerm("body", "a")))
}

func TestOr_NormalizeEmptyIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, Or{}.Normalize())
}

func TestOr_NormalizeFlattensNestedPlainOr(t *testing.T) {
	inner := Or{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}}
	outer := Or{Children: []Query{inner, NewTerm("body", "c")}}
	got := outer.Normalize()
	want := Or{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b"), NewTerm("body", "c")}}
	assert.True(t, got.Equals(want))
}

func TestOr_String(t *testing.T) {
	q := Or{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}, MinMatch: 2}
	assert.Equal(t, "(body:a OR body:b)>2", q.String())
}

func TestDisjunctionMax_MatcherScoresMaxPlusTiebreak(t *testing.T) {
	r := basicReader()
	q := DisjunctionMax{Children: []Query{NewTerm("body", "quick"), NewTerm("body", "fox")}, Tiebreak: 0.5}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	require.True(t, m.IsActive())
	// doc 0: quick and fox each weigh 1, so max(1, 1) + 0.5*1 = 1.5
	assert.Equal(t, 1.5, m.Score())
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestDisjunctionMax_NormalizeFlattensSameTiebreak(t *testing.T) {
	inner := DisjunctionMax{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}, Tiebreak: 0.3}
	outer := DisjunctionMax{Children: []Query{inner, NewTerm("body", "c")}, Tiebreak: 0.3}
	got := outer.Normalize()
	want := DisjunctionMax{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b"), NewTerm("body", "c")}, Tiebreak: 0.3}
	assert.True(t, got.Equals(want))
}

func TestDisjunctionMax_NormalizeDifferentTiebreakDoesNotFlatten(t *testing.T) {
	inner := DisjunctionMax{Children: []Query{NewTerm("body", "a"), NewTerm("body", "b")}, Tiebreak: 0.1}
	outer := DisjunctionMax{Children: []Query{inner, NewTerm("body", "c")}, Tiebreak: 0.3}
	got := outer.Normalize().(DisjunctionMax)
	require.Len(t, got.Children, 2)
	assert.True(t, got.Children[0].Equals(inner))
}

func TestEstimateSize_AndIsMinOfChildren(t *testing.T) {
	r := basicReader()
	q := And{Children: []Query{NewTerm("body", "quick"), NewTerm("body", "dog")}}
	assert.Equal(t, r.DocFrequency("body", "dog"), q.EstimateSize(r))
}

func TestEstimateSize_OrIsMaxOfChildren(t *testing.T) {
	r := basicReader()
	q := Or{Children: []Query{NewTerm("body", "quick"), NewTerm("body", "dog")}}
	assert.Equal(t, r.DocFrequency("body", "quick"), q.EstimateSize(r))
}
