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

// Package docset provides the compact doc-id bitsets the matcher
// combinators use for deletion filtering and for folding Not children into
// an excluded-doc set during execution planning (spec §4.8.1, §9
// "Deletion filtering"). It is a thin, roaring-bitmap-backed alternative to
// hand-rolled bit slices, addressed by local (segment) doc id.
package docset

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/heroiclabs/nakama-search-core/search"
)

// Set is a mutable set of doc ids backed by a roaring bitmap.
type Set struct {
	bits *roaring.Bitmap
}

// New returns an empty set.
func New() *Set {
	return &Set{bits: roaring.New()}
}

// Of returns a set containing exactly the given doc ids.
func Of(ids ...uint64) *Set {
	s := New()
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s *Set) Add(id uint64) {
	s.bits.Add(uint32(id))
}

// Contains reports whether id is a member of the set.
func (s *Set) Contains(id uint64) bool {
	if s == nil || s.bits == nil {
		return false
	}
	return s.bits.Contains(uint32(id))
}

// Union merges other's members into s in place, matching the "combine by
// in-place union" rule used when folding several Not subqueries into one
// excluded-doc set.
func (s *Set) Union(other *Set) {
	if s == nil || other == nil || other.bits == nil {
		return
	}
	s.bits.Or(other.bits)
}

// Cardinality returns the number of members.
func (s *Set) Cardinality() uint64 {
	if s == nil || s.bits == nil {
		return 0
	}
	return s.bits.GetCardinality()
}

// FromMatcher drains m and returns the set of doc ids it yielded. Used by
// Not.Matcher to materialize its child, and by AndNot.Matcher to fold the
// negative side into the exclude set handed to the positive side.
func FromMatcher(m search.Matcher) (*Set, error) {
	s := New()
	ids, err := search.AllIDs(m)
	if err != nil {
		return s, err
	}
	for _, id := range ids {
		s.Add(id)
	}
	return s, nil
}

// setIterator adapts a roaring bitmap's iterator to the ascending uint64
// sequence the matcher contract expects.
type setIterator struct {
	it roaring.IntPeekable
}

func (s *Set) iterator() *setIterator {
	if s == nil || s.bits == nil {
		return &setIterator{it: roaring.New().Iterator()}
	}
	return &setIterator{it: s.bits.Iterator()}
}

func (it *setIterator) next() (uint64, bool) {
	if !it.it.HasNext() {
		return 0, false
	}
	return uint64(it.it.Next()), true
}

func (it *setIterator) advanceTo(target uint64) (uint64, bool) {
	it.it.AdvanceIfNeeded(uint32(target))
	if !it.it.HasNext() {
		return 0, false
	}
	return uint64(it.it.Next()), true
}

// Matcher returns a search.Matcher that walks the set's members in
// ascending order. Used by Not.Matcher to feed a materialized child set
// into Inverse.
func (s *Set) Matcher() search.Matcher {
	m := &setMatcher{it: s.iterator()}
	m.active, _ = m.Next()
	return m
}

type setMatcher struct {
	it     *setIterator
	id     uint64
	active bool
}

func (m *setMatcher) IsActive() bool   { return m.active }
func (m *setMatcher) ID() uint64       { return m.id }
func (m *setMatcher) Weight() float32  { return 1 }
func (m *setMatcher) Value() []byte    { return nil }
func (m *setMatcher) Score() float64   { return float64(m.Weight()) }
func (m *setMatcher) Close() error     { return nil }

func (m *setMatcher) Next() (bool, error) {
	id, ok := m.it.next()
	if !ok {
		m.active = false
		return false, nil
	}
	m.id = id
	m.active = true
	return true, nil
}

func (m *setMatcher) SkipTo(target uint64) (bool, error) {
	if !m.active || target <= m.id {
		return m.active, nil
	}
	id, ok := m.it.advanceTo(target)
	if !ok {
		m.active = false
		return false, nil
	}
	m.id = id
	m.active = true
	return true, nil
}
