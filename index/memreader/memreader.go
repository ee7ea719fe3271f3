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

// Package memreader is a small in-memory index.Reader used by the test
// suite in place of a real segment reader. It is not a production index;
// it exists to exercise every method of the reader contract (index.Reader)
// against small, hand-built fixtures the way bluge's own tests build an
// in-memory segment.
package memreader

import (
	"sort"
	"strings"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/search"
)

// Token is one occurrence of a term at a position within a document field.
type Token struct {
	Text string
	Pos  int
}

type postingEntry struct {
	docnum   uint64
	freq     uint64
	weight   float32
	length   int
	positions []int
}

type termEntry struct {
	postings []postingEntry // ascending by docnum
}

type fieldData struct {
	terms       map[string]*termEntry
	sortedTerms []string
	fieldLength uint64
	minLen      int
	maxLen      int
	docLens     map[uint64]int
}

func newFieldData() *fieldData {
	return &fieldData{
		terms:   make(map[string]*termEntry),
		docLens: make(map[uint64]int),
		minLen:  -1,
	}
}

// Reader is an in-memory, immutable index.Reader built by Builder.
type Reader struct {
	fields   map[string]*fieldData
	vectors  map[uint64]map[string][]Token // docnum -> field -> tokens, in position order
	docCount uint64                        // doc count including deleted
	deleted     map[uint64]bool
	fieldVec    map[string]bool // fields that store vectors
	noPositions map[string]bool // fields whose postings omit positions
}

var _ index.Reader = (*Reader)(nil)

// Builder assembles a Reader from documents added one at a time.
type Builder struct {
	fields      map[string]*fieldData
	vectors     map[uint64]map[string][]Token
	docCount    uint64
	deleted     map[uint64]bool
	fieldVec    map[string]bool
	noPositions map[string]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		fields:      make(map[string]*fieldData),
		vectors:     make(map[uint64]map[string][]Token),
		deleted:     make(map[uint64]bool),
		fieldVec:    make(map[string]bool),
		noPositions: make(map[string]bool),
	}
}

// WithVectors marks field as storing per-document term vectors (in
// addition to postings), so phrase queries on it can fall back to
// vector-based verification.
func (b *Builder) WithVectors(field string) *Builder {
	b.fieldVec[field] = true
	return b
}

// WithoutPositions marks field as storing postings with no position data,
// forcing phrase queries on it through the vector-based matcher. Pair with
// WithVectors, which is how a real segment would index such a field too.
func (b *Builder) WithoutPositions(field string) *Builder {
	b.noPositions[field] = true
	return b
}

// AddDocument indexes docnum's fields. text is tokenized on whitespace;
// positions are assigned in order starting at 0. Calling AddDocument with
// the same docnum twice is not supported.
func (b *Builder) AddDocument(docnum uint64, fields map[string]string) *Builder {
	if docnum+1 > b.docCount {
		b.docCount = docnum + 1
	}
	for field, text := range fields {
		words := strings.Fields(text)
		toks := make([]Token, len(words))
		for i, w := range words {
			toks[i] = Token{Text: w, Pos: i}
		}
		b.addField(docnum, field, toks)
	}
	return b
}

// AddTokens indexes docnum's field from a pre-tokenized list, allowing
// callers to control positions directly (used by phrase-slop fixtures).
func (b *Builder) AddTokens(docnum uint64, field string, toks []Token) *Builder {
	if docnum+1 > b.docCount {
		b.docCount = docnum + 1
	}
	b.addField(docnum, field, toks)
	return b
}

func (b *Builder) addField(docnum uint64, field string, toks []Token) {
	fd, ok := b.fields[field]
	if !ok {
		fd = newFieldData()
		b.fields[field] = fd
	}

	byTerm := make(map[string][]int)
	for _, t := range toks {
		byTerm[t.Text] = append(byTerm[t.Text], t.Pos)
	}

	for text, positions := range byTerm {
		te, ok := fd.terms[text]
		if !ok {
			te = &termEntry{}
			fd.terms[text] = te
		}
		te.postings = append(te.postings, postingEntry{
			docnum:    docnum,
			freq:      uint64(len(positions)),
			weight:    float32(len(positions)),
			length:    len(toks),
			positions: positions,
		})
	}

	fd.fieldLength += uint64(len(toks))
	fd.docLens[docnum] = len(toks)
	if fd.minLen < 0 || len(toks) < fd.minLen {
		fd.minLen = len(toks)
	}
	if len(toks) > fd.maxLen {
		fd.maxLen = len(toks)
	}

	if b.fieldVec[field] {
		if b.vectors[docnum] == nil {
			b.vectors[docnum] = make(map[string][]Token)
		}
		b.vectors[docnum][field] = append(b.vectors[docnum][field], toks...)
	}
}

// Delete marks docnum as deleted. Deleted documents remain in DocCountAll
// but are excluded from DocCount, Every and posting-list iteration.
func (b *Builder) Delete(docnum uint64) *Builder {
	b.deleted[docnum] = true
	return b
}

// Build finalizes the Builder into an immutable Reader.
func (b *Builder) Build() *Reader {
	for _, fd := range b.fields {
		fd.sortedTerms = make([]string, 0, len(fd.terms))
		for t, te := range fd.terms {
			fd.sortedTerms = append(fd.sortedTerms, t)
			sort.Slice(te.postings, func(i, j int) bool {
				return te.postings[i].docnum < te.postings[j].docnum
			})
		}
		sort.Strings(fd.sortedTerms)
	}
	return &Reader{
		fields:      b.fields,
		vectors:     b.vectors,
		docCount:    b.docCount,
		deleted:     b.deleted,
		fieldVec:    b.fieldVec,
		noPositions: b.noPositions,
	}
}

// StoresPositions reports whether field's postings carry positions; false
// for fields built with WithoutPositions.
func (r *Reader) StoresPositions(field string) bool {
	return !r.noPositions[field]
}

func (r *Reader) field(field string) *fieldData {
	return r.fields[field]
}

func (r *Reader) Contains(field, term string) bool {
	fd := r.field(field)
	if fd == nil {
		return false
	}
	_, ok := fd.terms[term]
	return ok
}

func (r *Reader) TermInfo(field, term string) (index.TermInfo, error) {
	fd := r.field(field)
	if fd == nil {
		return index.TermInfo{}, index.ErrTermNotFound
	}
	te, ok := fd.terms[term]
	if !ok {
		return index.TermInfo{}, index.ErrTermNotFound
	}
	ti := index.TermInfo{MinID: index.NoID, MaxLength: 0, MinLength: -1}
	for _, p := range te.postings {
		if r.deleted[p.docnum] {
			continue
		}
		ti.Weight += float64(p.weight)
		ti.DocFreq++
		if ti.MinLength < 0 || p.length < ti.MinLength {
			ti.MinLength = p.length
		}
		if p.length > ti.MaxLength {
			ti.MaxLength = p.length
		}
		if p.weight > ti.MaxWeight {
			ti.MaxWeight = p.weight
		}
		if p.docnum < ti.MinID {
			ti.MinID = p.docnum
		}
		if p.docnum > ti.MaxID {
			ti.MaxID = p.docnum
		}
	}
	if ti.DocFreq == 0 {
		return index.TermInfo{}, index.ErrTermNotFound
	}
	if ti.MinLength < 0 {
		ti.MinLength = 0
	}
	return ti, nil
}

func (r *Reader) FirstID(field, term string) (uint64, error) {
	fd := r.field(field)
	if fd == nil {
		return 0, index.ErrTermNotFound
	}
	te, ok := fd.terms[term]
	if !ok {
		return 0, index.ErrTermNotFound
	}
	for _, p := range te.postings {
		if !r.deleted[p.docnum] {
			return p.docnum, nil
		}
	}
	return 0, index.ErrTermNotFound
}

func (r *Reader) Frequency(field, term string) uint64 {
	fd := r.field(field)
	if fd == nil {
		return 0
	}
	te, ok := fd.terms[term]
	if !ok {
		return 0
	}
	var total uint64
	for _, p := range te.postings {
		if !r.deleted[p.docnum] {
			total += p.freq
		}
	}
	return total
}

func (r *Reader) DocFrequency(field, term string) uint64 {
	ti, err := r.TermInfo(field, term)
	if err != nil {
		return 0
	}
	return ti.DocFreq
}

func (r *Reader) Postings(field, term string) (search.Matcher, error) {
	fd := r.field(field)
	if fd == nil {
		return nil, index.ErrTermNotFound
	}
	te, ok := fd.terms[term]
	if !ok {
		return nil, index.ErrTermNotFound
	}
	live := make([]index.Posting, 0, len(te.postings))
	storesPositions := !r.noPositions[field]
	for _, p := range te.postings {
		if r.deleted[p.docnum] {
			continue
		}
		posting := index.Posting{ID: p.docnum, Weight: p.weight}
		if storesPositions {
			posting.Value = index.EncodePositions(p.positions)
		}
		live = append(live, posting)
	}
	return newSliceMatcher(live), nil
}

func (r *Reader) Vector(docnum uint64, field string) (index.VectorIterator, error) {
	toks := r.vectors[docnum][field]
	byTerm := make(map[string][]int)
	var order []string
	for _, t := range toks {
		if _, ok := byTerm[t.Text]; !ok {
			order = append(order, t.Text)
		}
		byTerm[t.Text] = append(byTerm[t.Text], t.Pos)
	}
	entries := make([]index.VectorTerm, 0, len(order))
	for _, t := range order {
		entries = append(entries, index.VectorTerm{Term: t, Positions: byTerm[t]})
	}
	return &vectorIterator{entries: entries}, nil
}

type vectorIterator struct {
	entries []index.VectorTerm
	pos     int
}

func (v *vectorIterator) Next() (index.VectorTerm, bool) {
	if v.pos >= len(v.entries) {
		return index.VectorTerm{}, false
	}
	e := v.entries[v.pos]
	v.pos++
	return e, true
}

func (r *Reader) DocCountAll() uint64 { return r.docCount }

func (r *Reader) DocCount() uint64 {
	return r.docCount - uint64(len(r.deleted))
}

func (r *Reader) HasDeletions() bool { return len(r.deleted) > 0 }

func (r *Reader) IsDeleted(docnum uint64) bool { return r.deleted[docnum] }

func (r *Reader) FieldLength(field string) uint64 {
	fd := r.field(field)
	if fd == nil {
		return 0
	}
	return fd.fieldLength
}

func (r *Reader) MinFieldLength(field string) int {
	fd := r.field(field)
	if fd == nil {
		return 0
	}
	if fd.minLen < 0 {
		return 0
	}
	return fd.minLen
}

func (r *Reader) MaxFieldLength(field string) int {
	fd := r.field(field)
	if fd == nil {
		return 0
	}
	return fd.maxLen
}

func (r *Reader) DocFieldLength(docnum uint64, field string) int {
	fd := r.field(field)
	if fd == nil {
		return 0
	}
	return fd.docLens[docnum]
}

func (r *Reader) Close() error { return nil }
