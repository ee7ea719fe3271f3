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

package memreader

import (
	"sort"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/search"
)

// sliceMatcher is a search.Matcher over a materialized, already-sorted
// slice of postings. It backs memreader's Postings() and is the simplest
// possible implementation of the leaf matcher contract (spec §4.2).
type sliceMatcher struct {
	postings []index.Posting
	pos      int
	active   bool
}

var _ search.Matcher = (*sliceMatcher)(nil)

func newSliceMatcher(postings []index.Posting) *sliceMatcher {
	m := &sliceMatcher{postings: postings, pos: -1}
	m.active = len(postings) > 0
	if m.active {
		m.pos = 0
	}
	return m
}

func (m *sliceMatcher) IsActive() bool { return m.active }

func (m *sliceMatcher) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	return m.postings[m.pos].ID
}

func (m *sliceMatcher) Weight() float32 {
	if !m.active {
		return 0
	}
	return m.postings[m.pos].Weight
}

func (m *sliceMatcher) Value() []byte {
	if !m.active {
		return nil
	}
	return m.postings[m.pos].Value
}

func (m *sliceMatcher) Score() float64 { return float64(m.Weight()) }

func (m *sliceMatcher) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	m.pos++
	if m.pos >= len(m.postings) {
		m.active = false
		return false, nil
	}
	return true, nil
}

func (m *sliceMatcher) SkipTo(target uint64) (bool, error) {
	if !m.active || target <= m.postings[m.pos].ID {
		return m.active, nil
	}
	rest := m.postings[m.pos:]
	idx := sort.Search(len(rest), func(i int) bool {
		return rest[i].ID >= target
	})
	m.pos += idx
	if m.pos >= len(m.postings) {
		m.active = false
		return false, nil
	}
	return true, nil
}

func (m *sliceMatcher) Close() error { return nil }
