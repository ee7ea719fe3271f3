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

package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/memreader"
	"github.com/heroiclabs/nakama-search-core/search"
)

func twoSegments() *index.MultiReader {
	seg0 := memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "fox jumps"}).
		AddDocument(1, map[string]string{"body": "dog sleeps"}).
		Build()
	seg1 := memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "fox runs"}).
		AddDocument(1, map[string]string{"body": "cat hides"}).
		Build()
	return index.NewMultiReader(seg0, seg1)
}

func TestMultiReader_OffsetsSecondSegment(t *testing.T) {
	mr := twoSegments()
	assert.Equal(t, uint64(4), mr.DocCountAll())

	m, err := mr.Postings("body", "fox")
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2}, ids)
}

func TestMultiReader_DocFrequencySumsSegments(t *testing.T) {
	mr := twoSegments()
	assert.Equal(t, uint64(2), mr.DocFrequency("body", "fox"))
}

func TestMultiReader_TermNotFoundAcrossAllSegments(t *testing.T) {
	mr := twoSegments()
	_, err := mr.Postings("body", "elephant")
	assert.ErrorIs(t, err, index.ErrTermNotFound)
}

func TestMultiReader_IsDeletedLocatesOwningSegment(t *testing.T) {
	seg0 := memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "a"}).
		AddDocument(1, map[string]string{"body": "b"}).
		Delete(1).
		Build()
	seg1 := memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "c"}).
		Build()
	mr := index.NewMultiReader(seg0, seg1)

	assert.True(t, mr.IsDeleted(1))  // seg0 doc 1
	assert.False(t, mr.IsDeleted(2)) // seg1 doc 0, global id 2
}

func TestMultiReader_AllTerms_MergesAndDedupes(t *testing.T) {
	mr := twoSegments()
	it := mr.AllTerms()
	var terms []string
	for {
		term, ok := it.Next()
		if !ok {
			break
		}
		terms = append(terms, term.Text)
	}
	assert.Equal(t, []string{"cat", "dog", "fox", "hides", "jumps", "runs", "sleeps"}, terms)
}

func TestMultiReader_Lexicon_MergesAndDedupes(t *testing.T) {
	mr := twoSegments()
	it, err := mr.Lexicon("body")
	require.NoError(t, err)
	var out []string
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, s)
	}
	assert.Equal(t, []string{"cat", "dog", "fox", "hides", "jumps", "runs", "sleeps"}, out)
}

func TestMultiReader_StoresPositions_FollowsFirstSegment(t *testing.T) {
	seg0 := memreader.NewBuilder().WithoutPositions("body").
		AddDocument(0, map[string]string{"body": "a"}).Build()
	seg1 := memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "b"}).Build()
	mr := index.NewMultiReader(seg0, seg1)
	assert.False(t, mr.StoresPositions("body"))
}

func TestMultiReader_Vector_TranslatesGlobalToLocalID(t *testing.T) {
	seg0 := memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "x"}).Build()
	seg1 := memreader.NewBuilder().WithVectors("body").
		AddDocument(0, map[string]string{"body": "a b"}).Build()
	mr := index.NewMultiReader(seg0, seg1)

	it, err := mr.Vector(1, "body") // global doc 1 == seg1 local doc 0
	require.NoError(t, err)
	var terms []string
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		terms = append(terms, v.Term)
	}
	assert.Equal(t, []string{"a", "b"}, terms)
}
