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
)

// PostingMatcher verifies a phrase against postings that store positions.
// One posting matcher per word is intersected on doc id, and at each
// intersected doc the positions lists are checked for a valid slop
// window (spec §4.4 "Posting-based").
type PostingMatcher struct {
	words  []search.Matcher
	slop   int
	active bool
}

var _ search.Matcher = (*PostingMatcher)(nil)

// NewPostingMatcher builds a phrase matcher over words (one posting
// matcher per phrase word, in phrase order) with the given slop.
func NewPostingMatcher(words []search.Matcher, slop int) *PostingMatcher {
	m := &PostingMatcher{words: words, slop: slop}
	m.advanceToMatch()
	return m
}

// syncDocID advances the lagging word matchers until all agree on a doc
// id or one becomes inactive.
func (m *PostingMatcher) syncDocID() bool {
	for {
		maxID := uint64(0)
		for _, w := range m.words {
			if !w.IsActive() {
				return false
			}
			if w.ID() > maxID {
				maxID = w.ID()
			}
		}
		allEqual := true
		for _, w := range m.words {
			if w.ID() != maxID {
				allEqual = false
				if _, err := w.SkipTo(maxID); err != nil {
					return false
				}
			}
		}
		if allEqual {
			return true
		}
	}
}

// advanceToMatch moves forward until either a doc satisfies the slop
// window across every word, or every word matcher is exhausted.
func (m *PostingMatcher) advanceToMatch() {
	for m.syncDocID() {
		if m.verifyCurrent() {
			m.active = true
			return
		}
		if _, err := m.words[0].Next(); err != nil {
			m.active = false
			return
		}
	}
	m.active = false
}

func (m *PostingMatcher) verifyCurrent() bool {
	lists := make([][]int, len(m.words))
	for i, w := range m.words {
		lists[i] = index.DecodePositions(w.Value())
	}
	return MatchesSlop(lists, m.slop)
}

func (m *PostingMatcher) IsActive() bool { return m.active }
func (m *PostingMatcher) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	return m.words[0].ID()
}
func (m *PostingMatcher) Weight() float32 {
	if !m.active {
		return 0
	}
	var total float32
	for _, w := range m.words {
		total += w.Weight()
	}
	return total
}
func (m *PostingMatcher) Value() []byte { return nil }
func (m *PostingMatcher) Score() float64 {
	if !m.active {
		return 0
	}
	var total float64
	for _, w := range m.words {
		total += w.Score()
	}
	return total
}

func (m *PostingMatcher) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	if _, err := m.words[0].Next(); err != nil {
		return false, err
	}
	m.advanceToMatch()
	return m.active, nil
}

func (m *PostingMatcher) SkipTo(target uint64) (bool, error) {
	if !m.active {
		return false, nil
	}
	if target <= m.ID() {
		return true, nil
	}
	if _, err := m.words[0].SkipTo(target); err != nil {
		return false, err
	}
	m.advanceToMatch()
	return m.active, nil
}

func (m *PostingMatcher) Close() error {
	var first error
	for _, w := range m.words {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
