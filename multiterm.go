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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/go-porterstemmer"
	"github.com/gobwas/glob"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
)

// multiTermLeaf is the shared shape of every query node that expands, at
// Simplify time, into an Or of concrete Term leaves (spec §4.7): Prefix,
// Wildcard, FuzzyTerm, TermRange and Variations.
type multiTermLeaf interface {
	Query
	field() string
}

// expandMultiTerm runs candidates through a matched predicate, wraps the
// survivors in Term leaves, collects them under an Or and normalizes the
// result (collapsing to Null or to a single Term where applicable).
func expandMultiTerm(field string, it index.StringIterator, boost float64, accept func(string) bool) Query {
	var children []Query
	for {
		text, ok := it.Next()
		if !ok {
			break
		}
		if accept != nil && !accept(text) {
			continue
		}
		children = append(children, Term{Field: field, Text: text})
	}
	return Or{Children: children, BoostValue: boost}.Normalize()
}

// unreachableMatcher is returned by a multi-term leaf's Matcher method: the
// execution planner always calls Simplify before Matcher (spec §4.7/§4.8),
// so a multi-term leaf should never be asked to match directly.
func unreachableMatcher() (search.Matcher, error) {
	return nil, fmt.Errorf("%w: multi-term query used without Simplify", ErrQuery)
}

// Prefix matches every term of Field beginning with Text (spec §3 Prefix).
type Prefix struct {
	Field      string
	Text       string
	BoostValue float64
}

var _ Query = Prefix{}

func (p Prefix) field() string  { return p.Field }
func (p Prefix) Boost() float64 { return effectiveBoost(p.BoostValue) }
func (p Prefix) Normalize() Query {
	if p.Text == "" {
		return Every{BoostValue: p.BoostValue}
	}
	return p
}

func (p Prefix) Simplify(reader index.Reader) (Query, error) {
	it, err := reader.ExpandPrefix(p.Field, p.Text)
	if err != nil {
		return nil, err
	}
	return expandMultiTerm(p.Field, it, p.Boost(), nil), nil
}

func (p Prefix) Matcher(index.Reader, *docset.Set) (search.Matcher, error) { return unreachableMatcher() }

func (p Prefix) EstimateSize(reader index.Reader) uint64 { return reader.DocCount() }

func (p Prefix) AllTerms(*TermSet, bool) {}

func (p Prefix) ExistingTerms(reader index.Reader, ts *TermSet, reverse, _ bool) error {
	it, err := reader.ExpandPrefix(p.Field, p.Text)
	if err != nil {
		return err
	}
	for {
		text, ok := it.Next()
		if !ok {
			break
		}
		if !reverse {
			ts.Add(p.Field, text)
		}
	}
	return nil
}

func (p Prefix) Replace(field, oldText, newText string) Query {
	if p.Field == field && p.Text == oldText {
		return Prefix{Field: field, Text: newText, BoostValue: p.BoostValue}
	}
	return p
}

func (p Prefix) Accept(visitor Visitor) Query { return visitor(p) }

func (p Prefix) Equals(other Query) bool {
	o, ok := other.(Prefix)
	return ok && p.Field == o.Field && p.Text == o.Text && boostEqual(p.BoostValue, o.BoostValue)
}

func (p Prefix) String() string {
	s := fmt.Sprintf("%s:%s*", p.Field, p.Text)
	return withBoostSuffix(s, p.Boost())
}

// Wildcard matches every term of Field against a shell-style glob pattern
// (spec §3 Wildcard). '*' matches any run of characters, '?' matches
// exactly one.
type Wildcard struct {
	Field      string
	Pattern    string
	BoostValue float64
}

var _ Query = Wildcard{}

func (w Wildcard) field() string  { return w.Field }
func (w Wildcard) Boost() float64 { return effectiveBoost(w.BoostValue) }

func (w Wildcard) Normalize() Query {
	switch {
	case w.Pattern == "" || w.Pattern == "*":
		return Every{BoostValue: w.BoostValue}
	case !strings.ContainsAny(w.Pattern, "*?"):
		return Term{Field: w.Field, Text: w.Pattern, BoostValue: w.BoostValue}
	case strings.HasSuffix(w.Pattern, "*") && !strings.ContainsAny(w.Pattern[:len(w.Pattern)-1], "*?"):
		return Prefix{Field: w.Field, Text: w.Pattern[:len(w.Pattern)-1], BoostValue: w.BoostValue}
	default:
		return w
	}
}

func (w Wildcard) Simplify(reader index.Reader) (Query, error) {
	g, err := glob.Compile(w.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wildcard pattern %q: %v", ErrQuery, w.Pattern, err)
	}
	it, err := reader.Lexicon(w.Field)
	if err != nil {
		return nil, err
	}
	return expandMultiTerm(w.Field, it, w.Boost(), g.Match), nil
}

func (w Wildcard) Matcher(index.Reader, *docset.Set) (search.Matcher, error) { return unreachableMatcher() }

func (w Wildcard) EstimateSize(reader index.Reader) uint64 { return reader.DocCount() }

func (w Wildcard) AllTerms(*TermSet, bool) {}

func (w Wildcard) ExistingTerms(reader index.Reader, ts *TermSet, reverse, _ bool) error {
	g, err := glob.Compile(w.Pattern)
	if err != nil {
		return fmt.Errorf("%w: invalid wildcard pattern %q: %v", ErrQuery, w.Pattern, err)
	}
	it, err := reader.Lexicon(w.Field)
	if err != nil {
		return err
	}
	for {
		text, ok := it.Next()
		if !ok {
			break
		}
		if g.Match(text) && !reverse {
			ts.Add(w.Field, text)
		}
	}
	return nil
}

func (w Wildcard) Replace(field, oldText, newText string) Query {
	if w.Field == field && w.Pattern == oldText {
		return Wildcard{Field: field, Pattern: newText, BoostValue: w.BoostValue}
	}
	return w
}

func (w Wildcard) Accept(visitor Visitor) Query { return visitor(w) }

func (w Wildcard) Equals(other Query) bool {
	o, ok := other.(Wildcard)
	return ok && w.Field == o.Field && w.Pattern == o.Pattern && boostEqual(w.BoostValue, o.BoostValue)
}

func (w Wildcard) String() string {
	s := fmt.Sprintf("%s:%s", w.Field, w.Pattern)
	return withBoostSuffix(s, w.Boost())
}

// FuzzyTerm matches every term of Field within MaxEdits Damerau-Levenshtein
// edits of Text, restricted to terms sharing Text's first PrefixLength
// characters (spec §3 FuzzyTerm).
type FuzzyTerm struct {
	Field        string
	Text         string
	MaxEdits     int
	PrefixLength int
	BoostValue   float64
}

var _ Query = FuzzyTerm{}

func (f FuzzyTerm) field() string  { return f.Field }
func (f FuzzyTerm) Boost() float64 { return effectiveBoost(f.BoostValue) }

func (f FuzzyTerm) Normalize() Query { return f }

func (f FuzzyTerm) Simplify(reader index.Reader) (Query, error) {
	if f.Text == "" {
		return nil, fmt.Errorf("%w: empty FuzzyTerm text", ErrQuery)
	}
	it, err := reader.TermsWithin(f.Field, f.Text, f.MaxEdits, f.PrefixLength)
	if err != nil && err != index.ErrNoGraph {
		return nil, err
	}
	return expandMultiTerm(f.Field, it, f.Boost(), nil), nil
}

func (f FuzzyTerm) Matcher(index.Reader, *docset.Set) (search.Matcher, error) { return unreachableMatcher() }

func (f FuzzyTerm) EstimateSize(reader index.Reader) uint64 { return reader.DocCount() }

func (f FuzzyTerm) AllTerms(*TermSet, bool) {}

func (f FuzzyTerm) ExistingTerms(reader index.Reader, ts *TermSet, reverse, _ bool) error {
	it, err := reader.TermsWithin(f.Field, f.Text, f.MaxEdits, f.PrefixLength)
	if err != nil && err != index.ErrNoGraph {
		return err
	}
	for {
		text, ok := it.Next()
		if !ok {
			break
		}
		if !reverse {
			ts.Add(f.Field, text)
		}
	}
	return nil
}

func (f FuzzyTerm) Replace(field, oldText, newText string) Query {
	if f.Field == field && f.Text == oldText {
		return FuzzyTerm{Field: field, Text: newText, MaxEdits: f.MaxEdits, PrefixLength: f.PrefixLength, BoostValue: f.BoostValue}
	}
	return f
}

func (f FuzzyTerm) Accept(visitor Visitor) Query { return visitor(f) }

func (f FuzzyTerm) Equals(other Query) bool {
	o, ok := other.(FuzzyTerm)
	return ok && f.Field == o.Field && f.Text == o.Text && f.MaxEdits == o.MaxEdits &&
		f.PrefixLength == o.PrefixLength && boostEqual(f.BoostValue, o.BoostValue)
}

func (f FuzzyTerm) String() string {
	s := fmt.Sprintf("%s:%s~%d", f.Field, f.Text, f.MaxEdits)
	return withBoostSuffix(s, f.Boost())
}

// TermRange matches every term of Field lexicographically between Start
// and End, each bound optionally exclusive (spec §3 TermRange). An empty
// bound means unbounded on that side.
type TermRange struct {
	Field        string
	Start        string
	End          string
	StartExclude bool
	EndExclude   bool
	BoostValue   float64
}

var _ Query = TermRange{}

func (r TermRange) field() string  { return r.Field }
func (r TermRange) Boost() float64 { return effectiveBoost(r.BoostValue) }

func (r TermRange) Normalize() Query {
	if r.Start != "" && r.Start == r.End && !r.StartExclude && !r.EndExclude {
		return Term{Field: r.Field, Text: r.Start, BoostValue: r.BoostValue}
	}
	return r
}

func (r TermRange) Simplify(reader index.Reader) (Query, error) {
	var it index.StringIterator
	if r.Start == "" {
		all, err := reader.Lexicon(r.Field)
		if err != nil {
			return nil, err
		}
		it = all
	} else {
		// TermsFrom seeks directly to Start, skipping the dead prefix of
		// the lexicon that inRange would otherwise filter out one by one.
		it = &termTextIterator{inner: reader.TermsFrom(r.Field, r.Start), field: r.Field}
	}
	return expandMultiTerm(r.Field, it, r.Boost(), func(text string) bool { return r.inRange(text) }), nil
}

type termTextIterator struct {
	inner index.TermIterator
	field string
}

func (it *termTextIterator) Next() (string, bool) {
	t, ok := it.inner.Next()
	if !ok || t.Field != it.field {
		return "", false
	}
	return t.Text, true
}

func (r TermRange) inRange(text string) bool {
	if r.Start != "" {
		if r.StartExclude {
			if text <= r.Start {
				return false
			}
		} else if text < r.Start {
			return false
		}
	}
	if r.End != "" {
		if r.EndExclude {
			if text >= r.End {
				return false
			}
		} else if text > r.End {
			return false
		}
	}
	return true
}

func (r TermRange) Matcher(index.Reader, *docset.Set) (search.Matcher, error) { return unreachableMatcher() }

func (r TermRange) EstimateSize(reader index.Reader) uint64 { return reader.DocCount() }

func (r TermRange) AllTerms(*TermSet, bool) {}

func (r TermRange) ExistingTerms(reader index.Reader, ts *TermSet, reverse, _ bool) error {
	it, err := reader.Lexicon(r.Field)
	if err != nil {
		return err
	}
	for {
		text, ok := it.Next()
		if !ok {
			break
		}
		if r.inRange(text) && !reverse {
			ts.Add(r.Field, text)
		}
	}
	return nil
}

func (r TermRange) Replace(field, oldText, newText string) Query {
	if r.Field != field {
		return r
	}
	out := r
	if out.Start == oldText {
		out.Start = newText
	}
	if out.End == oldText {
		out.End = newText
	}
	return out
}

func (r TermRange) Accept(visitor Visitor) Query { return visitor(r) }

func (r TermRange) Equals(other Query) bool {
	o, ok := other.(TermRange)
	return ok && r.Field == o.Field && r.Start == o.Start && r.End == o.End &&
		r.StartExclude == o.StartExclude && r.EndExclude == o.EndExclude && boostEqual(r.BoostValue, o.BoostValue)
}

func (r TermRange) String() string {
	open, close := "[", "]"
	if r.StartExclude {
		open = "{"
	}
	if r.EndExclude {
		close = "}"
	}
	s := fmt.Sprintf("%s:%s%s TO %s%s", r.Field, open, r.Start, r.End, close)
	return withBoostSuffix(s, r.Boost())
}

// Variations matches Text together with the morphological variants of it
// that actually occur in the index (spec §3 Variations): every indexed
// term of Field that reduces to the same Porter stem as Text, found by
// scanning the field's lexicon rather than by an edit-distance budget.
type Variations struct {
	Field      string
	Text       string
	BoostValue float64
}

var _ Query = Variations{}

func (v Variations) field() string  { return v.Field }
func (v Variations) Boost() float64 { return effectiveBoost(v.BoostValue) }

func (v Variations) Normalize() Query { return v }

// sameStem reports whether candidate shares Text's Porter stem.
func (v Variations) sameStem(candidate string) bool {
	return porterstemmer.StemString(candidate) == porterstemmer.StemString(v.Text)
}

func (v Variations) Simplify(reader index.Reader) (Query, error) {
	it, err := reader.Lexicon(v.Field)
	if err != nil {
		return nil, err
	}
	return expandMultiTerm(v.Field, it, v.Boost(), v.sameStem), nil
}

func (v Variations) Matcher(index.Reader, *docset.Set) (search.Matcher, error) { return unreachableMatcher() }

func (v Variations) EstimateSize(reader index.Reader) uint64 { return reader.DocCount() }

func (v Variations) AllTerms(*TermSet, bool) {}

func (v Variations) ExistingTerms(reader index.Reader, ts *TermSet, reverse, _ bool) error {
	it, err := reader.Lexicon(v.Field)
	if err != nil {
		return err
	}
	for {
		text, ok := it.Next()
		if !ok {
			break
		}
		if !reverse && v.sameStem(text) {
			ts.Add(v.Field, text)
		}
	}
	return nil
}

func (v Variations) Replace(field, oldText, newText string) Query {
	if v.Field == field && v.Text == oldText {
		return Variations{Field: field, Text: newText, BoostValue: v.BoostValue}
	}
	return v
}

func (v Variations) Accept(visitor Visitor) Query { return visitor(v) }

func (v Variations) Equals(other Query) bool {
	o, ok := other.(Variations)
	return ok && v.Field == o.Field && v.Text == o.Text && boostEqual(v.BoostValue, o.BoostValue)
}

func (v Variations) String() string {
	s := fmt.Sprintf("%s:<%s>", v.Field, v.Text)
	return withBoostSuffix(s, v.Boost())
}

func withBoostSuffix(s string, boost float64) string {
	if boost == 1 {
		return s
	}
	return s + "^" + strconv.FormatFloat(boost, 'g', -1, 64)
}
