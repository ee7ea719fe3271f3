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

func TestNot_MatcherComplementsChild(t *testing.T) {
	r := basicReader()
	q := Not{Child: NewTerm("body", "dog")}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestNot_NormalizeDoubleNegationCancels(t *testing.T) {
	q := Not{Child: Not{Child: NewTerm("body", "a")}}
	got := q.Normalize()
	assert.True(t, got.Equals(NewTerm("body", "a")))
}

func TestNot_NormalizeOfNullIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, Not{Child: NullQuery{}}.Normalize())
}

func TestNot_String(t *testing.T) {
	assert.Equal(t, "NOT body:a", Not{Child: NewTerm("body", "a")}.String())
}

func TestEvery_MatcherCoversAllLiveDocs(t *testing.T) {
	r := basicReader()
	m, err := Every{}.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestEvery_String(t *testing.T) {
	assert.Equal(t, "*", Every{}.String())
}

func TestNullQuery_MatcherIsInactive(t *testing.T) {
	m, err := NullQuery{}.Matcher(nil, nil)
	require.NoError(t, err)
	assert.False(t, m.IsActive())
}

func TestNullQuery_BoostIsAlwaysOne(t *testing.T) {
	assert.Equal(t, float64(1), NullQuery{}.Boost())
}

func TestRequire_MatcherFollowsRequiredScoresFromScored(t *testing.T) {
	r := basicReader()
	q := Require{Scored: NewTerm("body", "quick"), Required: NewTerm("body", "fox")}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestRequire_NormalizeNullEitherSideIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, Require{Scored: NullQuery{}, Required: NewTerm("body", "a")}.Normalize())
	assert.Equal(t, NullQuery{}, Require{Scored: NewTerm("body", "a"), Required: NullQuery{}}.Normalize())
}

func TestAndMaybe_NormalizeNullOptionalCollapsesToRequired(t *testing.T) {
	q := AndMaybe{Required: NewTerm("body", "a"), Optional: NullQuery{}}
	got := q.Normalize()
	assert.True(t, got.Equals(NewTerm("body", "a")))
}

func TestAndMaybe_NormalizeNullRequiredIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, AndMaybe{Required: NullQuery{}, Optional: NewTerm("body", "a")}.Normalize())
}

func TestAndMaybe_MatcherIdsFollowRequired(t *testing.T) {
	r := basicReader()
	q := AndMaybe{Required: NewTerm("body", "quick"), Optional: NewTerm("body", "fox")}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestAndNot_MatcherExcludesNegative(t *testing.T) {
	r := basicReader()
	q := AndNot{Positive: NewTerm("body", "quick"), Negative: NewTerm("body", "fox")}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Empty(t, ids) // every doc with "quick" also has "fox" in this fixture
}

func TestAndNot_NormalizeNullNegativeCollapsesToPositive(t *testing.T) {
	q := AndNot{Positive: NewTerm("body", "a"), Negative: NullQuery{}}
	got := q.Normalize()
	assert.True(t, got.Equals(NewTerm("body", "a")))
}

func TestAndNot_NormalizeNullPositiveIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, AndNot{Positive: NullQuery{}, Negative: NewTerm("body", "a")}.Normalize())
}

func TestAndNot_String(t *testing.T) {
	q := AndNot{Positive: NewTerm("body", "a"), Negative: NewTerm("body", "b")}
	assert.Equal(t, "body:a ANDNOT body:b", q.String())
}
