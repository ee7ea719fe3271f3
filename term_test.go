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

	"github.com/heroiclabs/nakama-search-core/index/memreader"
	"github.com/heroiclabs/nakama-search-core/search"
)

func basicReader() *memreader.Reader {
	return memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "the quick brown fox"}).
		AddDocument(1, map[string]string{"body": "the lazy dog"}).
		AddDocument(2, map[string]string{"body": "quick quick fox"}).
		Build()
}

func TestTerm_MatcherFindsPostings(t *testing.T) {
	r := basicReader()
	m, err := NewTerm("body", "quick").Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestTerm_MatcherMissingTermIsEmpty(t *testing.T) {
	r := basicReader()
	m, err := NewTerm("body", "missing").Matcher(r, nil)
	require.NoError(t, err)
	assert.False(t, m.IsActive())
}

func TestTerm_BoostDefaultsToOne(t *testing.T) {
	assert.Equal(t, float64(1), NewTerm("body", "fox").Boost())
	assert.Equal(t, float64(2), Term{Field: "body", Text: "fox", BoostValue: 2}.Boost())
}

func TestTerm_EqualsComparesFieldTextBoost(t *testing.T) {
	a := NewTerm("body", "fox")
	b := Term{Field: "body", Text: "fox", BoostValue: 1}
	c := NewTerm("body", "dog")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(Every{}))
}

func TestTerm_ReplaceRewritesMatchingLeaf(t *testing.T) {
	a := NewTerm("body", "fox")
	assert.Equal(t, NewTerm("body", "wolf"), a.Replace("body", "fox", "wolf"))
	assert.Equal(t, a, a.Replace("body", "dog", "wolf"))
	assert.Equal(t, a, a.Replace("title", "fox", "wolf"))
}

func TestTerm_String(t *testing.T) {
	assert.Equal(t, "body:fox", NewTerm("body", "fox").String())
	assert.Equal(t, "body:fox^2", Term{Field: "body", Text: "fox", BoostValue: 2}.String())
}

func TestTerm_AllTermsAndExistingTerms(t *testing.T) {
	r := basicReader()
	ts := AllTerms(NewTerm("body", "fox"), false)
	assert.True(t, ts.Contains("body", "fox"))

	present, err := ExistingTerms(NewTerm("body", "fox"), r, false, false)
	require.NoError(t, err)
	assert.True(t, present.Contains("body", "fox"))

	missing, err := ExistingTerms(NewTerm("body", "nope"), r, true, false)
	require.NoError(t, err)
	assert.True(t, missing.Contains("body", "nope"))
}
