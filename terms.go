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

import "github.com/heroiclabs/nakama-search-core/index"

// TermSet is a deduplicated collection of (field, term) pairs, built up by
// AllTerms / ExistingTerms (spec §4.5).
type TermSet struct {
	items map[index.Term]struct{}
}

// NewTermSet returns an empty TermSet.
func NewTermSet() *TermSet {
	return &TermSet{items: make(map[index.Term]struct{})}
}

// Add inserts (field, text) into the set.
func (ts *TermSet) Add(field, text string) {
	ts.items[index.Term{Field: field, Text: text}] = struct{}{}
}

// Contains reports whether (field, text) is a member.
func (ts *TermSet) Contains(field, text string) bool {
	_, ok := ts.items[index.Term{Field: field, Text: text}]
	return ok
}

// Len returns the number of members.
func (ts *TermSet) Len() int { return len(ts.items) }

// Slice returns the set's members in unspecified order.
func (ts *TermSet) Slice() []index.Term {
	out := make([]index.Term, 0, len(ts.items))
	for t := range ts.items {
		out = append(out, t)
	}
	return out
}

// AllTerms collects the (field, term) pairs referenced by q's leaves
// (spec §4.5). Phrase leaves contribute their word tuples only when
// phrases is true.
func AllTerms(q Query, phrases bool) *TermSet {
	ts := NewTermSet()
	q.AllTerms(ts, phrases)
	return ts
}

// ExistingTerms collects the (field, term) pairs referenced by q's leaves
// that are present in reader (or, if reverse is true, the ones that are
// missing). Multi-term leaves expand via their reader-driven word
// iterator (spec §4.5).
func ExistingTerms(q Query, reader index.Reader, reverse, phrases bool) (*TermSet, error) {
	ts := NewTermSet()
	if err := q.ExistingTerms(reader, ts, reverse, phrases); err != nil {
		return ts, err
	}
	return ts, nil
}
