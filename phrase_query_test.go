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

func phraseReader() *memreader.Reader {
	return memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "the quick brown fox"}).
		AddDocument(1, map[string]string{"body": "quick the fox"}).
		Build()
}

func TestPhrase_NormalizeEmptyIsNull(t *testing.T) {
	assert.Equal(t, NullQuery{}, Phrase{Field: "body"}.Normalize())
}

func TestPhrase_NormalizeSingleWordIsTerm(t *testing.T) {
	got := Phrase{Field: "body", Words: []string{"fox"}}.Normalize()
	assert.Equal(t, NewTerm("body", "fox"), got)
}

func TestPhrase_MatcherUsesPostingsWhenPositionsStored(t *testing.T) {
	r := phraseReader()
	require.True(t, r.StoresPositions("body"))
	q := Phrase{Field: "body", Words: []string{"quick", "brown", "fox"}, Slop: 1}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, ids)
}

func TestPhrase_MatcherUsesVectorWhenNoPositions(t *testing.T) {
	r := memreader.NewBuilder().
		WithVectors("body").
		WithoutPositions("body").
		AddDocument(0, map[string]string{"body": "the quick brown fox"}).
		AddDocument(1, map[string]string{"body": "quick the fox"}).
		Build()
	require.False(t, r.StoresPositions("body"))
	q := Phrase{Field: "body", Words: []string{"quick", "brown", "fox"}, Slop: 1}
	m, err := q.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, ids)
}

func TestPhrase_EqualsComparesWordsElementwise(t *testing.T) {
	a := Phrase{Field: "body", Words: []string{"a", "b"}}
	b := Phrase{Field: "body", Words: []string{"a", "b"}}
	c := Phrase{Field: "body", Words: []string{"b", "a"}}
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestPhrase_ReplaceRewritesMatchingWord(t *testing.T) {
	p := Phrase{Field: "body", Words: []string{"quick", "fox"}}
	got := p.Replace("body", "fox", "wolf")
	assert.Equal(t, []string{"quick", "wolf"}, got.(Phrase).Words)
}

func TestPhrase_String(t *testing.T) {
	p := Phrase{Field: "body", Words: []string{"quick", "fox"}, Slop: 2}
	assert.Equal(t, `body:"quick fox"~2`, p.String())
}
