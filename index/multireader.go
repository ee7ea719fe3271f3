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

package index

import (
	"container/heap"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/heroiclabs/nakama-search-core/search"
	"github.com/heroiclabs/nakama-search-core/search/matching"
)

// MultiReader composes several segment readers into one logical reader,
// offsetting each segment's local doc ids by a precomputed base so callers
// see one flat, ascending global doc id space (spec §6 "MultiReader", §9
// "Multi-segment offsets").
//
// MultiReader is safe for concurrent reads; AddReader is the sole mutating
// administrative call and is documented as unsafe to run concurrently with
// live searches, matching spec §5.
type MultiReader struct {
	mu      sync.RWMutex
	readers []Reader
	bases   []uint64 // bases[i] is the global doc id of readers[i]'s doc 0
}

var _ Reader = (*MultiReader)(nil)

// NewMultiReader composes readers in the given order; bases are assigned
// by each reader's DocCountAll in sequence.
func NewMultiReader(readers ...Reader) *MultiReader {
	mr := &MultiReader{}
	for _, r := range readers {
		mr.AddReader(r)
	}
	return mr
}

// AddReader appends r to the composite, assigning it the next base. Not
// safe to call concurrently with in-flight searches against mr.
func (mr *MultiReader) AddReader(r Reader) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	base := uint64(0)
	if n := len(mr.readers); n > 0 {
		base = mr.bases[n-1] + mr.readers[n-1].DocCountAll()
	}
	mr.readers = append(mr.readers, r)
	mr.bases = append(mr.bases, base)
}

// locate finds the segment owning global doc id, returning its index and
// base via a binary search over the base table (bisect_right - 1).
func (mr *MultiReader) locate(global uint64) (idx int, base uint64, ok bool) {
	n := len(mr.bases)
	i := sort.Search(n, func(i int) bool { return mr.bases[i] > global }) - 1
	if i < 0 || i >= n {
		return 0, 0, false
	}
	return i, mr.bases[i], true
}

func (mr *MultiReader) segmentOf(field, term string, probe func(Reader) bool) (int, bool) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	for i, r := range mr.readers {
		if probe(r) {
			return i, true
		}
	}
	return 0, false
}

// StoresPositions reports the first segment's answer, assuming (as a
// single logical index normally would) that every segment indexes field
// the same way.
func (mr *MultiReader) StoresPositions(field string) bool {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	if len(mr.readers) == 0 {
		return true
	}
	return mr.readers[0].StoresPositions(field)
}

func (mr *MultiReader) Contains(field, term string) bool {
	_, ok := mr.segmentOf(field, term, func(r Reader) bool { return r.Contains(field, term) })
	return ok
}

func (mr *MultiReader) TermInfo(field, term string) (TermInfo, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var merged TermInfo
	found := false
	for i, r := range mr.readers {
		ti, err := r.TermInfo(field, term)
		if err == ErrTermNotFound {
			continue
		}
		if err != nil {
			return TermInfo{}, errors.Wrap(err, fmt.Sprintf("segment %d: term info for %q in field %q", i, term, field))
		}
		found = true
		merged = merged.Merge(mr.bases[i], ti)
	}
	if !found {
		return TermInfo{}, ErrTermNotFound
	}
	return merged, nil
}

func (mr *MultiReader) FirstID(field, term string) (uint64, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	for i, r := range mr.readers {
		id, err := r.FirstID(field, term)
		if err == ErrTermNotFound {
			continue
		}
		if err != nil {
			return 0, errors.Wrap(err, fmt.Sprintf("segment %d: first id for %q in field %q", i, term, field))
		}
		return id + mr.bases[i], nil
	}
	return 0, ErrTermNotFound
}

func (mr *MultiReader) Frequency(field, term string) uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var total uint64
	for _, r := range mr.readers {
		total += r.Frequency(field, term)
	}
	return total
}

func (mr *MultiReader) DocFrequency(field, term string) uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var total uint64
	for _, r := range mr.readers {
		total += r.DocFrequency(field, term)
	}
	return total
}

// Postings builds a MultiMatcher merging every segment that has a posting
// list for (field, term), offsetting each by its base (spec §4.3
// "MultiMatcher").
func (mr *MultiReader) Postings(field, term string) (search.Matcher, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var parts []matching.SegmentMatcher
	for i, r := range mr.readers {
		m, err := r.Postings(field, term)
		if err == ErrTermNotFound {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("segment %d: postings for %q in field %q", i, term, field))
		}
		parts = append(parts, matching.SegmentMatcher{Matcher: m, Base: mr.bases[i]})
	}
	if len(parts) == 0 {
		return nil, ErrTermNotFound
	}
	return matching.NewMulti(parts), nil
}

func (mr *MultiReader) Vector(docnum uint64, field string) (VectorIterator, error) {
	mr.mu.RLock()
	idx, base, ok := mr.locate(docnum)
	mr.mu.RUnlock()
	if !ok {
		return nil, ErrTermNotFound
	}
	return mr.readers[idx].Vector(docnum-base, field)
}

func (mr *MultiReader) DocCountAll() uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	if len(mr.readers) == 0 {
		return 0
	}
	return mr.bases[len(mr.bases)-1] + mr.readers[len(mr.readers)-1].DocCountAll()
}

func (mr *MultiReader) DocCount() uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var total uint64
	for _, r := range mr.readers {
		total += r.DocCount()
	}
	return total
}

func (mr *MultiReader) HasDeletions() bool {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	for _, r := range mr.readers {
		if r.HasDeletions() {
			return true
		}
	}
	return false
}

func (mr *MultiReader) IsDeleted(docnum uint64) bool {
	mr.mu.RLock()
	idx, base, ok := mr.locate(docnum)
	mr.mu.RUnlock()
	if !ok {
		return false
	}
	return mr.readers[idx].IsDeleted(docnum - base)
}

func (mr *MultiReader) FieldLength(field string) uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var total uint64
	for _, r := range mr.readers {
		total += r.FieldLength(field)
	}
	return total
}

func (mr *MultiReader) MinFieldLength(field string) int {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	min := -1
	for _, r := range mr.readers {
		l := r.MinFieldLength(field)
		if min < 0 || l < min {
			min = l
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

func (mr *MultiReader) MaxFieldLength(field string) int {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	max := 0
	for _, r := range mr.readers {
		if l := r.MaxFieldLength(field); l > max {
			max = l
		}
	}
	return max
}

func (mr *MultiReader) DocFieldLength(docnum uint64, field string) int {
	mr.mu.RLock()
	idx, base, ok := mr.locate(docnum)
	mr.mu.RUnlock()
	if !ok {
		return 0
	}
	return mr.readers[idx].DocFieldLength(docnum-base, field)
}

func (mr *MultiReader) TermsWithin(field, text string, maxDist, prefix int) (StringIterator, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	var anyErr error
	for _, r := range mr.readers {
		it, err := r.TermsWithin(field, text, maxDist, prefix)
		if err != nil && err != ErrNoGraph {
			return nil, err
		}
		if err == ErrNoGraph {
			anyErr = ErrNoGraph
		}
		for {
			t, ok := it.Next()
			if !ok {
				break
			}
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return &stringSlice{entries: out}, anyErr
}

func (mr *MultiReader) ExpandPrefix(field, prefix string) (StringIterator, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var out []string
	for _, r := range mr.readers {
		it, err := r.ExpandPrefix(field, prefix)
		if err != nil {
			return nil, err
		}
		for {
			t, ok := it.Next()
			if !ok {
				break
			}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return &stringSlice{entries: out}, nil
}

func (mr *MultiReader) Lexicon(field string) (StringIterator, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, r := range mr.readers {
		it, err := r.Lexicon(field)
		if err != nil {
			return nil, err
		}
		for {
			t, ok := it.Next()
			if !ok {
				break
			}
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return &stringSlice{entries: out}, nil
}

// AllTerms streams a heap merge across every segment's term dictionary,
// collapsing duplicate (field, term) pairs (spec §6 "streaming heap
// merge").
func (mr *MultiReader) AllTerms() TermIterator {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	h := &termHeap{}
	for _, r := range mr.readers {
		it := r.AllTerms()
		if t, ok := it.Next(); ok {
			heap.Push(h, &termHeapItem{term: t, it: it})
		}
	}
	return &mergingTermIterator{h: h}
}

func (mr *MultiReader) TermsFrom(field, prefix string) TermIterator {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	h := &termHeap{}
	for _, r := range mr.readers {
		it := r.TermsFrom(field, prefix)
		if t, ok := it.Next(); ok {
			heap.Push(h, &termHeapItem{term: t, it: it})
		}
	}
	return &mergingTermIterator{h: h}
}

func (mr *MultiReader) Close() error {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	var first error
	for _, r := range mr.readers {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type stringSlice struct {
	entries []string
	pos     int
}

func (s *stringSlice) Next() (string, bool) {
	if s.pos >= len(s.entries) {
		return "", false
	}
	v := s.entries[s.pos]
	s.pos++
	return v, true
}

// termHeapItem / termHeap implement a min-heap over the next pending term
// of each segment's iterator, used to stream a lexicographically merged,
// duplicate-collapsed term dictionary view across segments.
type termHeapItem struct {
	term Term
	it   TermIterator
}

type termHeap []*termHeapItem

func (h termHeap) Len() int { return len(h) }
func (h termHeap) Less(i, j int) bool {
	if h[i].term.Field != h[j].term.Field {
		return h[i].term.Field < h[j].term.Field
	}
	return h[i].term.Text < h[j].term.Text
}
func (h termHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *termHeap) Push(x interface{}) { *h = append(*h, x.(*termHeapItem)) }
func (h *termHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type mergingTermIterator struct {
	h *termHeap
}

func (m *mergingTermIterator) Next() (Term, bool) {
	if m.h.Len() == 0 {
		return Term{}, false
	}
	top := heap.Pop(m.h).(*termHeapItem)
	result := top.term

	// Advance and re-push this segment's iterator.
	if next, ok := top.it.Next(); ok {
		top.term = next
		heap.Push(m.h, top)
	}

	// Collapse any other segments currently sitting on the same pair.
	for m.h.Len() > 0 {
		peek := (*m.h)[0]
		if peek.term != result {
			break
		}
		dup := heap.Pop(m.h).(*termHeapItem)
		if next, ok := dup.it.Next(); ok {
			dup.term = next
			heap.Push(m.h, dup)
		}
	}

	return result, true
}
