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

// Package matching implements the leaf and combinator matchers that an
// execution plan is built from: posting, null and every-doc leaves, and
// the intersection/union/disjunction-max/require/and-maybe/inverse/
// filter/boost/multi-segment combinators (spec §4.2, §4.3, §4.9).
package matching

import (
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
)

// NullMatcher is always inactive; it is the matcher built for NullQuery
// and for multi-term expansions with zero surviving words.
type NullMatcher struct{}

var _ search.Matcher = NullMatcher{}

func (NullMatcher) IsActive() bool           { return false }
func (NullMatcher) ID() uint64                { return search.NoMoreDocs }
func (NullMatcher) Weight() float32           { return 0 }
func (NullMatcher) Value() []byte             { return nil }
func (NullMatcher) Score() float64            { return 0 }
func (NullMatcher) Next() (bool, error)        { return false, nil }
func (NullMatcher) SkipTo(uint64) (bool, error) { return false, nil }
func (NullMatcher) Close() error               { return nil }

// PostingMatcher wraps a raw posting-list matcher fetched from a reader,
// transparently skipping any doc id present in an excluded set (the ids
// AndNot.Matcher folds in from its negative side; deleted docs are already
// dropped by the reader's Postings).
type PostingMatcher struct {
	child    search.Matcher
	excluded *docset.Set
}

var _ search.Matcher = (*PostingMatcher)(nil)

// NewPostingMatcher wraps child, skipping doc ids in excluded. excluded
// may be nil, meaning no filtering.
func NewPostingMatcher(child search.Matcher, excluded *docset.Set) *PostingMatcher {
	m := &PostingMatcher{child: child, excluded: excluded}
	m.skipExcluded()
	return m
}

func (m *PostingMatcher) skipExcluded() {
	for m.child.IsActive() && m.excluded.Contains(m.child.ID()) {
		if _, err := m.child.Next(); err != nil {
			return
		}
	}
}

func (m *PostingMatcher) IsActive() bool  { return m.child.IsActive() }
func (m *PostingMatcher) ID() uint64      { return m.child.ID() }
func (m *PostingMatcher) Weight() float32 { return m.child.Weight() }
func (m *PostingMatcher) Value() []byte   { return m.child.Value() }
func (m *PostingMatcher) Score() float64  { return float64(m.Weight()) }
func (m *PostingMatcher) Close() error    { return m.child.Close() }

func (m *PostingMatcher) Next() (bool, error) {
	active, err := m.child.Next()
	if err != nil {
		return false, err
	}
	if !active {
		return false, nil
	}
	m.skipExcluded()
	return m.child.IsActive(), nil
}

func (m *PostingMatcher) SkipTo(target uint64) (bool, error) {
	active, err := m.child.SkipTo(target)
	if err != nil {
		return false, err
	}
	if !active {
		return false, nil
	}
	m.skipExcluded()
	return m.child.IsActive(), nil
}

// EveryMatcher walks [0, docCount) in order, skipping ids present in an
// excluded set. It backs the Every query (spec §4.2), which filters out
// deleted docs on top of it.
type EveryMatcher struct {
	docCount uint64
	excluded *docset.Set
	id       uint64
	active   bool
}

var _ search.Matcher = (*EveryMatcher)(nil)

// NewEveryMatcher returns a matcher over [0, docCount), skipping ids in
// excluded (which may be nil).
func NewEveryMatcher(docCount uint64, excluded *docset.Set) *EveryMatcher {
	m := &EveryMatcher{docCount: docCount, excluded: excluded}
	m.id = 0
	m.active = true
	if m.docCount == 0 || m.excluded.Contains(0) {
		m.advanceToNextLive()
	}
	return m
}

func (m *EveryMatcher) advanceToNextLive() {
	for m.id < m.docCount && m.excluded.Contains(m.id) {
		m.id++
	}
	m.active = m.id < m.docCount
}

func (m *EveryMatcher) IsActive() bool  { return m.active }
func (m *EveryMatcher) ID() uint64      { return m.id }
func (m *EveryMatcher) Weight() float32 { return 1 }
func (m *EveryMatcher) Value() []byte   { return nil }
func (m *EveryMatcher) Score() float64  { return 1 }
func (m *EveryMatcher) Close() error    { return nil }

func (m *EveryMatcher) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	m.id++
	m.advanceToNextLive()
	return m.active, nil
}

func (m *EveryMatcher) SkipTo(target uint64) (bool, error) {
	if !m.active || target <= m.id {
		return m.active, nil
	}
	m.id = target
	m.advanceToNextLive()
	return m.active, nil
}
