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

package docset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heroiclabs/nakama-search-core/search"
)

func TestSet_AddContains(t *testing.T) {
	s := New()
	s.Add(3)
	s.Add(7)
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(4))
}

func TestSet_Of(t *testing.T) {
	s := Of(1, 2, 3)
	assert.Equal(t, uint64(3), s.Cardinality())
}

func TestSet_Union(t *testing.T) {
	a := Of(1, 2)
	b := Of(2, 3)
	a.Union(b)
	assert.True(t, a.Contains(1))
	assert.True(t, a.Contains(2))
	assert.True(t, a.Contains(3))
	assert.Equal(t, uint64(3), a.Cardinality())
}

func TestSet_NilReceiverIsSafe(t *testing.T) {
	var s *Set
	assert.False(t, s.Contains(1))
	assert.Equal(t, uint64(0), s.Cardinality())
	s.Union(Of(1)) // must not panic on a nil receiver
}

func TestSet_UnionOfNilOtherIsNoop(t *testing.T) {
	a := Of(1)
	a.Union(nil)
	assert.Equal(t, uint64(1), a.Cardinality())
}

func TestSet_Matcher_WalksAscending(t *testing.T) {
	s := Of(5, 1, 3)
	ids, err := search.AllIDs(s.Matcher())
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3, 5}, ids)
}

func TestSet_Matcher_SkipTo(t *testing.T) {
	s := Of(1, 3, 5, 7)
	m := s.Matcher()
	active, err := m.SkipTo(5)
	require.NoError(t, err)
	require.True(t, active)
	assert.Equal(t, uint64(5), m.ID())
}

func TestSet_Matcher_EmptySetIsInactive(t *testing.T) {
	m := New().Matcher()
	assert.False(t, m.IsActive())
}

func TestFromMatcher_MaterializesDrainedIDs(t *testing.T) {
	s := Of(2, 4, 6)
	m := s.Matcher()
	materialized, err := FromMatcher(m)
	require.NoError(t, err)
	assert.True(t, materialized.Contains(2))
	assert.True(t, materialized.Contains(4))
	assert.True(t, materialized.Contains(6))
	assert.False(t, materialized.Contains(3))
}
