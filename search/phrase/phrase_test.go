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

package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heroiclabs/nakama-search-core/index/memreader"
	"github.com/heroiclabs/nakama-search-core/search"
)

func TestMatchesSlop_AdjacentWords(t *testing.T) {
	assert.True(t, MatchesSlop([][]int{{0}, {1}, {2}}, 1))
}

func TestMatchesSlop_OutOfOrderFails(t *testing.T) {
	assert.False(t, MatchesSlop([][]int{{2}, {0}}, 1))
}

func TestMatchesSlop_WithinSlopWindow(t *testing.T) {
	assert.True(t, MatchesSlop([][]int{{0}, {3}}, 3))
	assert.False(t, MatchesSlop([][]int{{0}, {4}}, 3))
}

func TestMatchesSlop_PicksEarliestCompatiblePosition(t *testing.T) {
	// "quick" at 0 and 5, "fox" at 1: the window anchored at 0 must win.
	assert.True(t, MatchesSlop([][]int{{0, 5}, {1}}, 1))
}

func TestMatchesSlop_BacktracksPastNearestCandidate(t *testing.T) {
	// The nearest second-list candidate (1) is a dead end: it can't reach
	// 6 within slop 3. The farther candidate (3) completes 0,3,6.
	assert.True(t, MatchesSlop([][]int{{0}, {1, 3}, {6}}, 3))
}

func TestMatchesSlop_SingleListNonEmpty(t *testing.T) {
	assert.True(t, MatchesSlop([][]int{{7}}, 0))
	assert.False(t, MatchesSlop([][]int{{}}, 0))
}

func TestMatchesSlop_EmptyListsFails(t *testing.T) {
	assert.False(t, MatchesSlop(nil, 0))
}

func buildPhraseFixture() *memreader.Reader {
	return memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "the quick brown fox"}).
		AddDocument(1, map[string]string{"body": "quick the fox"}).
		AddDocument(2, map[string]string{"body": "the quick red fox"}).
		Build()
}

func postingsFor(t *testing.T, r *memreader.Reader, field string, words []string) []search.Matcher {
	t.Helper()
	ms := make([]search.Matcher, len(words))
	for i, w := range words {
		m, err := r.Postings(field, w)
		require.NoError(t, err)
		ms[i] = m
	}
	return ms
}

func TestPostingMatcher_ExactPhraseMatch(t *testing.T) {
	r := buildPhraseFixture()
	m := NewPostingMatcher(postingsFor(t, r, "body", []string{"quick", "brown", "fox"}), 1)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, ids)
}

func TestPostingMatcher_SlopAllowsInterveningWord(t *testing.T) {
	r := buildPhraseFixture()
	// every doc has exactly one word between "quick" and "fox", so a slop
	// of 2 matches all three.
	m := NewPostingMatcher(postingsFor(t, r, "body", []string{"quick", "fox"}), 2)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestPostingMatcher_TightSlopExcludesAll(t *testing.T) {
	r := buildPhraseFixture()
	// every doc has exactly one word between quick and fox, so a slop of 1
	// (strict adjacency) matches none of them.
	m := NewPostingMatcher(postingsFor(t, r, "body", []string{"quick", "fox"}), 1)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPostingMatcher_SkipTo(t *testing.T) {
	r := buildPhraseFixture()
	m := NewPostingMatcher(postingsFor(t, r, "body", []string{"quick", "fox"}), 3)
	active, err := m.SkipTo(2)
	require.NoError(t, err)
	require.True(t, active)
	assert.Equal(t, uint64(2), m.ID())
}

func buildVectorFixture() *memreader.Reader {
	return memreader.NewBuilder().
		WithVectors("body").
		WithoutPositions("body").
		AddDocument(0, map[string]string{"body": "the quick brown fox"}).
		AddDocument(1, map[string]string{"body": "quick the fox"}).
		Build()
}

func TestVectorMatcher_MatchesPhraseViaVector(t *testing.T) {
	r := buildVectorFixture()
	require.False(t, r.StoresPositions("body"))
	m, err := NewVectorMatcher(r, "body", []string{"quick", "brown", "fox"}, 1)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, ids)
}

func TestVectorMatcher_TermNotFoundYieldsInactiveMatcher(t *testing.T) {
	r := buildVectorFixture()
	m, err := NewVectorMatcher(r, "body", []string{"missing"}, 0)
	require.NoError(t, err)
	assert.False(t, m.IsActive())
}

func TestVectorMatcher_SlopBoundsTheWindow(t *testing.T) {
	r := buildVectorFixture()
	// both docs have exactly one word between "quick" and "fox".
	tight, err := NewVectorMatcher(r, "body", []string{"quick", "fox"}, 1)
	require.NoError(t, err)
	assert.False(t, tight.IsActive())

	wide, err := NewVectorMatcher(r, "body", []string{"quick", "fox"}, 2)
	require.NoError(t, err)
	ids, err := search.AllIDs(wide)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, ids)
}
