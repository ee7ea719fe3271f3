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
	"strings"

	"github.com/heroiclabs/nakama-search-core/index"
)

// AllTerms iterates every (field, term) pair across all fields, in
// lexicographic order by (field, term).
func (r *Reader) AllTerms() index.TermIterator {
	var entries []index.Term
	for field, fd := range r.fields {
		for _, t := range fd.sortedTerms {
			entries = append(entries, index.Term{Field: field, Text: t})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Field != entries[j].Field {
			return entries[i].Field < entries[j].Field
		}
		return entries[i].Text < entries[j].Text
	})
	return &termSliceIterator{entries: entries}
}

// TermsFrom iterates (field, term) pairs starting at (field, prefix)
// inclusive.
func (r *Reader) TermsFrom(field, prefix string) index.TermIterator {
	fd := r.field(field)
	if fd == nil {
		return &termSliceIterator{}
	}
	idx := sort.SearchStrings(fd.sortedTerms, prefix)
	var entries []index.Term
	for _, t := range fd.sortedTerms[idx:] {
		entries = append(entries, index.Term{Field: field, Text: t})
	}
	return &termSliceIterator{entries: entries}
}

// ExpandPrefix iterates every term of field beginning with prefix,
// terminating at the first non-matching entry (the dictionary is sorted,
// so once a term no longer shares the prefix, none of the rest will).
func (r *Reader) ExpandPrefix(field, prefix string) (index.StringIterator, error) {
	fd := r.field(field)
	if fd == nil {
		return &stringSliceIterator{}, nil
	}
	idx := sort.SearchStrings(fd.sortedTerms, prefix)
	var out []string
	for _, t := range fd.sortedTerms[idx:] {
		if !strings.HasPrefix(t, prefix) {
			break
		}
		out = append(out, t)
	}
	return &stringSliceIterator{entries: out}, nil
}

// Lexicon iterates every term stored under field.
func (r *Reader) Lexicon(field string) (index.StringIterator, error) {
	fd := r.field(field)
	if fd == nil {
		return &stringSliceIterator{}, nil
	}
	out := make([]string, len(fd.sortedTerms))
	copy(out, fd.sortedTerms)
	return &stringSliceIterator{entries: out}, nil
}

// TermsWithin returns every term of field within maxDist Damerau-Levenshtein
// edits of text, restricted to terms sharing the first prefix characters.
// The in-memory reader never stores a word graph, so this always falls
// back to a linear prefix scan and reports index.ErrNoGraph.
func (r *Reader) TermsWithin(field, text string, maxDist, prefix int) (index.StringIterator, error) {
	fd := r.field(field)
	if fd == nil {
		return &stringSliceIterator{}, index.ErrNoGraph
	}

	head := text
	if prefix > 0 && prefix <= len(text) {
		head = text[:prefix]
	}

	var out []string
	for _, t := range fd.sortedTerms {
		if prefix > 0 {
			if len(t) < prefix || t[:prefix] != head {
				continue
			}
		}
		if damerauLevenshtein(t, text) <= maxDist {
			out = append(out, t)
		}
	}
	return &stringSliceIterator{entries: out}, index.ErrNoGraph
}

type termSliceIterator struct {
	entries []index.Term
	pos     int
}

func (it *termSliceIterator) Next() (index.Term, bool) {
	if it.pos >= len(it.entries) {
		return index.Term{}, false
	}
	e := it.entries[it.pos]
	it.pos++
	return e, true
}

type stringSliceIterator struct {
	entries []string
	pos     int
}

func (it *stringSliceIterator) Next() (string, bool) {
	if it.pos >= len(it.entries) {
		return "", false
	}
	e := it.entries[it.pos]
	it.pos++
	return e, true
}

// damerauLevenshtein computes the Damerau-Levenshtein edit distance
// (insertions, deletions, substitutions, adjacent transpositions) between
// a and b.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	d := make([][]int, la+2)
	for i := range d {
		d[i] = make([]int, lb+2)
	}

	maxDist := la + lb
	d[0][0] = maxDist
	for i := 0; i <= la; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	lastRow := make(map[rune]int)
	for i := 1; i <= la; i++ {
		lastCol := 0
		for j := 1; j <= lb; j++ {
			i2 := lastRow[rb[j-1]]
			j2 := lastCol
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
				lastCol = j
			}
			del := d[i][j+1] + 1
			ins := d[i+1][j] + 1
			sub := d[i][j] + cost
			trans := d[i2][j2] + (i-i2-1) + 1 + (j-j2-1)
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			if trans < best {
				best = trans
			}
			d[i+1][j+1] = best
		}
		lastRow[ra[i-1]] = i
	}
	return d[la+1][lb+1]
}
