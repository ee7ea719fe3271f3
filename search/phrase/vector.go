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
	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/search"
	"github.com/heroiclabs/nakama-search-core/search/matching"
)

// VectorMatcher verifies a phrase against per-document term vectors, for
// fields whose postings do not store positions (spec §4.4
// "Vector-based"). Candidate docs are the intersection of each word's
// plain posting list; at each candidate the document's term vector is
// fetched and checked for a valid slop window.
type VectorMatcher struct {
	reader     index.Reader
	field      string
	words      []string
	slop       int
	candidates search.Matcher
	active     bool
}

var _ search.Matcher = (*VectorMatcher)(nil)

// NewVectorMatcher builds a phrase matcher over words (in phrase order)
// within field, using reader's stored term vectors for positional
// verification.
func NewVectorMatcher(reader index.Reader, field string, words []string, slop int) (*VectorMatcher, error) {
	wordMatchers := make([]search.Matcher, 0, len(words))
	for _, w := range words {
		pm, err := reader.Postings(field, w)
		if err == index.ErrTermNotFound {
			return &VectorMatcher{active: false}, nil
		}
		if err != nil {
			return nil, err
		}
		wordMatchers = append(wordMatchers, pm)
	}

	m := &VectorMatcher{
		reader:     reader,
		field:      field,
		words:      words,
		slop:       slop,
		candidates: matching.IntersectAll(wordMatchers),
	}
	m.advanceToMatch()
	return m, nil
}

func (m *VectorMatcher) verify(docnum uint64) (bool, error) {
	it, err := m.reader.Vector(docnum, m.field)
	if err != nil {
		return false, err
	}
	positions := make(map[string][]int)
	for {
		vt, ok := it.Next()
		if !ok {
			break
		}
		positions[vt.Term] = vt.Positions
	}
	lists := make([][]int, len(m.words))
	for i, w := range m.words {
		lists[i] = positions[w]
	}
	return MatchesSlop(lists, m.slop), nil
}

func (m *VectorMatcher) advanceToMatch() {
	if m.candidates == nil {
		m.active = false
		return
	}
	for m.candidates.IsActive() {
		ok, err := m.verify(m.candidates.ID())
		if err == nil && ok {
			m.active = true
			return
		}
		if _, err := m.candidates.Next(); err != nil {
			m.active = false
			return
		}
	}
	m.active = false
}

func (m *VectorMatcher) IsActive() bool { return m.active }
func (m *VectorMatcher) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	return m.candidates.ID()
}
func (m *VectorMatcher) Weight() float32 {
	if !m.active {
		return 0
	}
	return m.candidates.Weight()
}
func (m *VectorMatcher) Value() []byte { return nil }
func (m *VectorMatcher) Score() float64 {
	if !m.active {
		return 0
	}
	return m.candidates.Score()
}

func (m *VectorMatcher) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	if _, err := m.candidates.Next(); err != nil {
		return false, err
	}
	m.advanceToMatch()
	return m.active, nil
}

func (m *VectorMatcher) SkipTo(target uint64) (bool, error) {
	if !m.active {
		return false, nil
	}
	if target <= m.ID() {
		return true, nil
	}
	if _, err := m.candidates.SkipTo(target); err != nil {
		return false, err
	}
	m.advanceToMatch()
	return m.active, nil
}

func (m *VectorMatcher) Close() error {
	if m.candidates == nil {
		return nil
	}
	return m.candidates.Close()
}
