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

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heroiclabs/nakama-search-core"
	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/memreader"
	"github.com/heroiclabs/nakama-search-core/search"
)

func fixtureReader() *memreader.Reader {
	return memreader.NewBuilder().
		AddDocument(0, map[string]string{"body": "quick brown fox"}).
		AddDocument(1, map[string]string{"body": "lazy dog"}).
		AddDocument(2, map[string]string{"body": "qu*ck wildcard"}).
		Build()
}

func TestNew_DefaultOptions(t *testing.T) {
	e := New(zap.NewNop(), DefaultOptions())
	assert.Equal(t, float64(0), e.Options().DisjunctionMaxTiebreak)
	assert.Equal(t, 0, e.Options().DefaultSlop)
}

func TestEngine_Search_SimplifiesAndMatches(t *testing.T) {
	e := New(zap.NewNop(), DefaultOptions())
	r := fixtureReader()
	plan, err := e.Search(r, Prefix("body", "qu"))
	require.NoError(t, err)

	m, err := plan.Matcher(r, nil)
	require.NoError(t, err)
	ids, err := search.AllIDs(m)
	require.NoError(t, err)
	assert.NotEmpty(t, ids)
}

func TestEngine_Search_BumpsSearchesRunCounter(t *testing.T) {
	e := New(zap.NewNop(), DefaultOptions())
	r := fixtureReader()
	before := e.Stats().SearchesRun.Load()
	_, err := e.Search(r, query.NewTerm("body", "fox"))
	require.NoError(t, err)
	assert.Equal(t, before+1, e.Stats().SearchesRun.Load())
}

// Prefix is a tiny local helper keeping the test terse; it mirrors how a
// caller would build a query.Prefix node.
func Prefix(field, text string) query.Query {
	return query.Prefix{Field: field, Text: text}
}

// errOnSimplify embeds NullQuery to inherit every other Query method and
// overrides Normalize (to return itself rather than decaying to a plain
// NullQuery) and Simplify, standing in for a hand-rolled Query whose
// Simplify surfaces index.ErrTermNotFound the way a reader's Postings does.
type errOnSimplify struct {
	query.NullQuery
}

func (e errOnSimplify) Normalize() query.Query { return e }

func (errOnSimplify) Simplify(index.Reader) (query.Query, error) {
	return nil, index.ErrTermNotFound
}

func TestEngine_Search_SwallowsTermNotFoundIntoNullQuery(t *testing.T) {
	e := New(zap.NewNop(), DefaultOptions())
	r := fixtureReader()
	missingBefore := e.Stats().TermsMissing.Load()

	plan, err := e.Search(r, errOnSimplify{})
	require.NoError(t, err)
	assert.Equal(t, query.NullQuery{}, plan)
	assert.Equal(t, missingBefore+1, e.Stats().TermsMissing.Load())
}
