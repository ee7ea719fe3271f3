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

// Package index defines the reader contract the query and matching core
// consumes: an abstract, immutable snapshot of an inverted index. Segment
// formats, on-disk storage and index writing live outside this package;
// this is only the surface the query core needs to expand multi-term
// queries and materialize postings.
package index

import (
	"errors"

	"github.com/heroiclabs/nakama-search-core/search"
)

// ErrTermNotFound is returned by TermInfo, Postings and FirstID when the
// requested (field, term) pair is absent from the term dictionary.
var ErrTermNotFound = errors.New("index: term not found")

// NoID is a sentinel doc id used by implementations to seed a running
// minimum before any real doc id has been observed.
const NoID = ^uint64(0)

// ErrNoGraph is returned (alongside a still-usable fallback result) by
// TermsWithin when the reader lacks a stored word graph and had to fall
// back to a linear prefix scan.
var ErrNoGraph = errors.New("index: no word graph, used prefix scan fallback")

// Term identifies a single entry in the term dictionary.
type Term struct {
	Field string
	Text  string
}

// TermInfo aggregates the statistics the scoring and planning layers need
// about a single term, merged across whatever segments back a reader.
type TermInfo struct {
	Weight         float64
	DocFreq        uint64
	MinLength      int
	MaxLength      int
	MaxWeight      float32
	MinID          uint64
	MaxID          uint64
}

// Merge folds another segment's TermInfo into this one, offsetting doc ids
// by that segment's base. Used by MultiReader when composing per-segment
// dictionaries into one logical view.
func (ti TermInfo) Merge(base uint64, other TermInfo) TermInfo {
	out := ti
	out.Weight += other.Weight
	out.DocFreq += other.DocFreq
	if other.MinLength < out.MinLength || out.DocFreq == other.DocFreq {
		out.MinLength = other.MinLength
	}
	if other.MaxLength > out.MaxLength {
		out.MaxLength = other.MaxLength
	}
	if other.MaxWeight > out.MaxWeight {
		out.MaxWeight = other.MaxWeight
	}
	minID := other.MinID + base
	maxID := other.MaxID + base
	if out.DocFreq == other.DocFreq || minID < out.MinID {
		out.MinID = minID
	}
	if maxID > out.MaxID {
		out.MaxID = maxID
	}
	return out
}

// Posting is one entry of a posting list: a document id together with its
// weight and an opaque payload (positions, term vector data, ...).
type Posting struct {
	ID     uint64
	Weight float32
	Value  []byte
}

// VectorTerm is one entry of a stored per-document term vector: the term
// text together with the positions it occupied in that document's field.
type VectorTerm struct {
	Term      string
	Positions []int
}

// Reader is the abstract snapshot of an index that the query core
// consumes. Implementations must be immutable for the lifetime of any
// Matcher built from them; see Matcher for the matcher-side contract.
type Reader interface {
	// Contains reports whether (field, term) exists in the dictionary.
	Contains(field, term string) bool

	// AllTerms iterates every (field, term) pair in lexicographic order.
	AllTerms() TermIterator

	// TermsFrom iterates (field, term) pairs starting at (field, prefix)
	// inclusive, in lexicographic order.
	TermsFrom(field, prefix string) TermIterator

	// ExpandPrefix iterates every term of field beginning with prefix,
	// terminating at the first non-matching entry.
	ExpandPrefix(field, prefix string) (StringIterator, error)

	// Lexicon iterates every term stored under field.
	Lexicon(field string) (StringIterator, error)

	// TermInfo returns dictionary statistics for (field, term), or
	// ErrTermNotFound if it is absent.
	TermInfo(field, term string) (TermInfo, error)

	// Postings returns a Matcher over the posting list of (field, term),
	// or ErrTermNotFound if the term is absent. The returned Matcher's
	// Value carries position data when the field stores positions.
	Postings(field, term string) (search.Matcher, error)

	// Vector returns an iterator over the stored term vector of docnum in
	// field, yielding (term, positions) pairs via VectorTerm values.
	Vector(docnum uint64, field string) (VectorIterator, error)

	// DocCountAll returns the total number of documents, including
	// deleted ones.
	DocCountAll() uint64

	// DocCount returns the number of live (non-deleted) documents.
	DocCount() uint64

	// HasDeletions reports whether any document has been deleted.
	HasDeletions() bool

	// IsDeleted reports whether docnum has been deleted.
	IsDeleted(docnum uint64) bool

	// FieldLength returns the total token count stored for field across
	// all indexed documents, deleted ones included.
	FieldLength(field string) uint64

	// MinFieldLength and MaxFieldLength bound the per-document token
	// count stored for field.
	MinFieldLength(field string) int
	MaxFieldLength(field string) int

	// DocFieldLength returns the token count of field within document
	// docnum.
	DocFieldLength(docnum uint64, field string) int

	// Frequency returns the total occurrence count of term within field
	// across all documents.
	Frequency(field, term string) uint64

	// DocFrequency returns the number of documents containing term
	// within field.
	DocFrequency(field, term string) uint64

	// FirstID returns the lowest doc id in the posting list of (field,
	// term), or ErrTermNotFound if it is absent.
	FirstID(field, term string) (uint64, error)

	// StoresPositions reports whether field's postings carry within-document
	// term positions (spec §4.4): when true, phrase queries on field verify
	// directly against postings; when false they fall back to Vector.
	StoresPositions(field string) bool

	// TermsWithin returns every term of field whose Damerau-Levenshtein
	// distance from text is at most maxDist, restricted to terms sharing
	// the first prefix characters with text. Implementations that lack a
	// stored word graph fall back to a linear prefix scan and return
	// ErrNoGraph alongside the (still valid) fallback result.
	TermsWithin(field, text string, maxDist, prefix int) (StringIterator, error)

	// Close releases resources associated with this reader. Matchers
	// derived from the reader must not be used after Close.
	Close() error
}

// TermIterator walks (field, term) pairs in lexicographic order.
type TermIterator interface {
	Next() (Term, bool)
}

// StringIterator walks a sequence of term texts.
type StringIterator interface {
	Next() (string, bool)
}

// VectorIterator walks the stored term vector of one document/field pair.
type VectorIterator interface {
	Next() (VectorTerm, bool)
}
