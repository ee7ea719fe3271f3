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

func TestNewBoolean_RequiredOnly(t *testing.T) {
	r := basicReader()
	q := NewBoolean([]Query{NewTerm("body", "quick")}, nil, nil)
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestNewBoolean_RequiredAndProhibited(t *testing.T) {
	r := basicReader()
	q := NewBoolean([]Query{NewTerm("body", "quick")}, nil, []Query{NewTerm("body", "fox")})
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Empty(t, ids) // both quick docs also contain fox
}

func TestNewBoolean_NoRequiredMeansEveryLiveDoc(t *testing.T) {
	r := basicReader()
	q := NewBoolean(nil, nil, []Query{NewTerm("body", "dog")})
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestNewBoolean_ShouldDoesNotExcludeNonMatches(t *testing.T) {
	r := basicReader()
	q := NewBoolean([]Query{NewTerm("body", "quick")}, []Query{NewTerm("body", "missing")}, nil)
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestNewBoolean_EmptyEverything(t *testing.T) {
	got := NewBoolean(nil, nil, nil)
	assert.Equal(t, Every{}, got)
}
