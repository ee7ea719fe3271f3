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
	"sort"
	"strconv"
	"strings"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
	"github.com/heroiclabs/nakama-search-core/search/matching"
)

// And matches documents present in every child (spec §3 And).
type And struct {
	Children   []Query
	BoostValue float64
}

var _ Query = And{}

func (a And) Boost() float64 { return effectiveBoost(a.BoostValue) }

func (a And) Normalize() Query {
	return normalizeConjunction(a)
}

// Simplify splits any Not children out of the conjunction and rewrites
// the result as AndNot(positives, Or(negatives)) (spec §4.7 step 5,
// §3 invariant 4). The positive side keeps a.BoostValue; AndNot itself
// carries no boost of its own since the positive side already does.
func (a And) Simplify(reader index.Reader) (Query, error) {
	var positives, negatives []Query
	for _, c := range a.Children {
		if n, ok := c.(Not); ok {
			negatives = append(negatives, n.Child)
		} else {
			positives = append(positives, c)
		}
	}
	positive, err := simplifyChildren(a, positives, func(children []Query) Query {
		return And{Children: children, BoostValue: a.BoostValue}
	}, reader)
	if err != nil {
		return nil, err
	}
	if len(negatives) == 0 {
		return positive, nil
	}
	negative := Or{Children: negatives}.Normalize()
	return AndNot{Positive: positive, Negative: negative}.Simplify(reader)
}

func (a And) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	matchers, err := childMatchers(a.Children, reader, exclude)
	if err != nil {
		return nil, err
	}
	sortCheapestFirst(matchers)
	m := matching.MakeTree(func(l, r search.Matcher) search.Matcher { return matching.NewIntersection(l, r) }, toSearchMatchers(matchers))
	return wrapBoost(m, a.Boost()), nil
}

func (a And) EstimateSize(reader index.Reader) uint64 {
	return minEstimate(a.Children, reader)
}

func (a And) AllTerms(ts *TermSet, phrases bool) {
	for _, c := range a.Children {
		c.AllTerms(ts, phrases)
	}
}

func (a And) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	for _, c := range a.Children {
		if err := c.ExistingTerms(reader, ts, reverse, phrases); err != nil {
			return err
		}
	}
	return nil
}

func (a And) Replace(field, oldText, newText string) Query {
	return And{Children: replaceChildren(a.Children, field, oldText, newText), BoostValue: a.BoostValue}
}

func (a And) Accept(visitor Visitor) Query {
	return visitor(And{Children: acceptChildren(a.Children, visitor), BoostValue: a.BoostValue})
}

func (a And) Equals(other Query) bool {
	o, ok := other.(And)
	if !ok || !boostEqual(a.BoostValue, o.BoostValue) {
		return false
	}
	return childrenEqual(a.Children, o.Children)
}

func (a And) String() string { return compoundString(a.Children, "AND", a.Boost(), 0) }

// Or matches documents present in at least MinMatch children (spec §3 Or).
type Or struct {
	Children   []Query
	MinMatch   int
	BoostValue float64
}

var _ Query = Or{}

func (o Or) Boost() float64 { return effectiveBoost(o.BoostValue) }

func (o Or) Normalize() Query {
	return normalizeDisjunction(o)
}

func (o Or) Simplify(reader index.Reader) (Query, error) {
	return simplifyChildren(o, o.Children, func(children []Query) Query {
		return Or{Children: children, MinMatch: o.MinMatch, BoostValue: o.BoostValue}
	}, reader)
}

func (o Or) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	matchers, err := childMatchers(o.Children, reader, exclude)
	if err != nil {
		return nil, err
	}
	sortCheapestFirst(matchers)
	sms := toSearchMatchers(matchers)
	if o.MinMatch <= 1 {
		m := matching.UnionAll(sms)
		return wrapBoost(m, o.Boost()), nil
	}
	m := matching.NewMinShouldMatch(sms, o.MinMatch)
	return wrapBoost(m, o.Boost()), nil
}

func (o Or) EstimateSize(reader index.Reader) uint64 {
	return maxEstimate(o.Children, reader)
}

func (o Or) AllTerms(ts *TermSet, phrases bool) {
	for _, c := range o.Children {
		c.AllTerms(ts, phrases)
	}
}

func (o Or) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	for _, c := range o.Children {
		if err := c.ExistingTerms(reader, ts, reverse, phrases); err != nil {
			return err
		}
	}
	return nil
}

func (o Or) Replace(field, oldText, newText string) Query {
	return Or{Children: replaceChildren(o.Children, field, oldText, newText), MinMatch: o.MinMatch, BoostValue: o.BoostValue}
}

func (o Or) Accept(visitor Visitor) Query {
	return visitor(Or{Children: acceptChildren(o.Children, visitor), MinMatch: o.MinMatch, BoostValue: o.BoostValue})
}

func (o Or) Equals(other Query) bool {
	other2, ok := other.(Or)
	if !ok || !boostEqual(o.BoostValue, other2.BoostValue) || o.MinMatch != other2.MinMatch {
		return false
	}
	return childrenEqual(o.Children, other2.Children)
}

func (o Or) String() string {
	s := compoundString(o.Children, "OR", o.Boost(), 0)
	if o.MinMatch > 1 {
		s += ">" + strconv.Itoa(o.MinMatch)
	}
	return s
}

// DisjunctionMax matches documents present in any child, scoring each with
// the best single child's score plus a fraction of the rest (spec §3
// DisjunctionMax).
type DisjunctionMax struct {
	Children   []Query
	Tiebreak   float64
	BoostValue float64
}

var _ Query = DisjunctionMax{}

func (d DisjunctionMax) Boost() float64 { return effectiveBoost(d.BoostValue) }

func (d DisjunctionMax) Normalize() Query {
	children := normalizeChildrenFlatten(d.Children, func(q Query) ([]Query, bool) {
		if dm, ok := q.(DisjunctionMax); ok && dm.Tiebreak == d.Tiebreak && dm.Boost() == 1 {
			return dm.Children, true
		}
		return nil, false
	})
	if len(children) == 0 {
		return NullQuery{}
	}
	if len(children) == 1 {
		return rewrapBoost(children[0], d.Boost())
	}
	return DisjunctionMax{Children: children, Tiebreak: d.Tiebreak, BoostValue: d.BoostValue}
}

func (d DisjunctionMax) Simplify(reader index.Reader) (Query, error) {
	return simplifyChildren(d, d.Children, func(children []Query) Query {
		return DisjunctionMax{Children: children, Tiebreak: d.Tiebreak, BoostValue: d.BoostValue}
	}, reader)
}

func (d DisjunctionMax) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	matchers, err := childMatchers(d.Children, reader, exclude)
	if err != nil {
		return nil, err
	}
	m := matching.NewDisjunctionMax(toSearchMatchers(matchers), d.Tiebreak)
	return wrapBoost(m, d.Boost()), nil
}

func (d DisjunctionMax) EstimateSize(reader index.Reader) uint64 {
	return maxEstimate(d.Children, reader)
}

func (d DisjunctionMax) AllTerms(ts *TermSet, phrases bool) {
	for _, c := range d.Children {
		c.AllTerms(ts, phrases)
	}
}

func (d DisjunctionMax) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	for _, c := range d.Children {
		if err := c.ExistingTerms(reader, ts, reverse, phrases); err != nil {
			return err
		}
	}
	return nil
}

func (d DisjunctionMax) Replace(field, oldText, newText string) Query {
	return DisjunctionMax{Children: replaceChildren(d.Children, field, oldText, newText), Tiebreak: d.Tiebreak, BoostValue: d.BoostValue}
}

func (d DisjunctionMax) Accept(visitor Visitor) Query {
	return visitor(DisjunctionMax{Children: acceptChildren(d.Children, visitor), Tiebreak: d.Tiebreak, BoostValue: d.BoostValue})
}

func (d DisjunctionMax) Equals(other Query) bool {
	o, ok := other.(DisjunctionMax)
	if !ok || !boostEqual(d.BoostValue, o.BoostValue) || d.Tiebreak != o.Tiebreak {
		return false
	}
	return childrenEqual(d.Children, o.Children)
}

func (d DisjunctionMax) String() string {
	s := compoundString(d.Children, "DISMAX", d.Boost(), 0)
	return s
}

// --- shared compound helpers -------------------------------------------

func childMatchers(children []Query, reader index.Reader, exclude *docset.Set) ([]queryMatcher, error) {
	out := make([]queryMatcher, 0, len(children))
	for _, c := range children {
		m, err := c.Matcher(reader, exclude)
		if err != nil {
			return nil, err
		}
		out = append(out, queryMatcher{m: m, size: c.EstimateSize(reader)})
	}
	return out, nil
}

type queryMatcher struct {
	m    search.Matcher
	size uint64
}

func sortCheapestFirst(matchers []queryMatcher) {
	sort.SliceStable(matchers, func(i, j int) bool { return matchers[i].size < matchers[j].size })
}

func toSearchMatchers(matchers []queryMatcher) []search.Matcher {
	out := make([]search.Matcher, len(matchers))
	for i, qm := range matchers {
		out[i] = qm.m
	}
	return out
}

func minEstimate(children []Query, reader index.Reader) uint64 {
	var min uint64
	for i, c := range children {
		size := c.EstimateSize(reader)
		if i == 0 || size < min {
			min = size
		}
	}
	return min
}

func maxEstimate(children []Query, reader index.Reader) uint64 {
	var max uint64
	for _, c := range children {
		if size := c.EstimateSize(reader); size > max {
			max = size
		}
	}
	return max
}

func replaceChildren(children []Query, field, oldText, newText string) []Query {
	out := make([]Query, len(children))
	for i, c := range children {
		out[i] = c.Replace(field, oldText, newText)
	}
	return out
}

func acceptChildren(children []Query, visitor Visitor) []Query {
	out := make([]Query, len(children))
	for i, c := range children {
		out[i] = c.Accept(visitor)
	}
	return out
}

func childrenEqual(a, b []Query) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func compoundString(children []Query, op string, boost float64, _ int) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	s := "(" + strings.Join(parts, " "+op+" ") + ")"
	if boost != 1 {
		s += "^" + strconv.FormatFloat(boost, 'g', -1, 64)
	}
	return s
}

func wrapBoost(m search.Matcher, boost float64) search.Matcher {
	if boost == 1 {
		return m
	}
	return matching.NewBoost(m, boost)
}
