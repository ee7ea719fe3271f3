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

// Package search defines the streaming matcher contract: a lazy,
// forward-only cursor over an ascending sequence of document ids. Leaf and
// combinator implementations live in search/matching; phrase-specific
// implementations live in search/phrase.
package search

// NoMoreDocs is a sentinel doc id that most matchers return from ID once
// exhausted; it compares greater than any real doc id. Not every matcher
// returns it (EveryMatcher, for one, does not), so check IsActive.
const NoMoreDocs = ^uint64(0)

// Matcher is a lazy, forward-only cursor over ascending (docid, weight,
// value) postings. All combinators preserve the ascending, duplicate-free
// invariant on doc ids; see Next and SkipTo.
type Matcher interface {
	// IsActive reports whether a current posting exists.
	IsActive() bool

	// ID is the current doc id. Only meaningful while IsActive is true.
	ID() uint64

	// Weight is the current posting's weight.
	Weight() float32

	// Value is the current posting's opaque payload (e.g. positions).
	Value() []byte

	// Next advances to the next posting and reports the new IsActive.
	Next() (bool, error)

	// SkipTo advances past every doc id strictly less than target. It may
	// land on target itself or the first id greater than target. Calling
	// SkipTo with a target at or before the current id has no effect.
	SkipTo(target uint64) (bool, error)

	// Score is the matcher's contribution to a hit's score. Leaf matchers
	// return Weight(); combinators override this to combine children.
	Score() float64

	// Close releases resources the matcher holds open in the reader.
	Close() error
}

// AllIDs drains m, returning every doc id it yields in ascending order.
// Intended for tests and small result sets; production callers should
// prefer draining incrementally via Next/SkipTo.
func AllIDs(m Matcher) ([]uint64, error) {
	var out []uint64
	active := m.IsActive()
	for active {
		out = append(out, m.ID())
		var err error
		active, err = m.Next()
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
