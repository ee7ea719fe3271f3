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

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
	"github.com/heroiclabs/nakama-search-core/search/matching"
)

// Not complements Child over the whole document space (spec §3 Not).
// And.Simplify rewrites a conjunction's Not children into an AndNot; Or,
// DisjunctionMax and the other compounds keep their Not children as they
// are, so a Not that is top-level or sits under one of those is matched
// directly, through Inverse.
type Not struct {
	Child      Query
	BoostValue float64
}

var _ Query = Not{}

func (n Not) Boost() float64 { return effectiveBoost(n.BoostValue) }

func (n Not) Normalize() Query {
	child := n.Child.Normalize()
	if _, ok := child.(NullQuery); ok {
		return NullQuery{}
	}
	if inner, ok := child.(Not); ok && inner.Boost() == 1 {
		return rewrapBoost(inner.Child, n.Boost())
	}
	return Not{Child: child, BoostValue: n.BoostValue}
}

func (n Not) Simplify(reader index.Reader) (Query, error) {
	child, err := n.Child.Simplify(reader)
	if err != nil {
		return nil, err
	}
	return Not{Child: child, BoostValue: n.BoostValue}.Normalize(), nil
}

func (n Not) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	childMatcher, err := n.Child.Matcher(reader, nil)
	if err != nil {
		return nil, err
	}
	negated, err := docset.FromMatcher(childMatcher)
	if err != nil {
		return nil, err
	}
	m := matching.NewInverse(negated.Matcher(), reader.DocCountAll(), func(id uint64) bool {
		return reader.IsDeleted(id) || exclude.Contains(id)
	})
	return wrapBoost(m, n.Boost()), nil
}

func (n Not) EstimateSize(reader index.Reader) uint64 { return reader.DocCountAll() }

func (n Not) AllTerms(ts *TermSet, phrases bool) { n.Child.AllTerms(ts, phrases) }

func (n Not) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	return n.Child.ExistingTerms(reader, ts, reverse, phrases)
}

func (n Not) Replace(field, oldText, newText string) Query {
	return Not{Child: n.Child.Replace(field, oldText, newText), BoostValue: n.BoostValue}
}

func (n Not) Accept(visitor Visitor) Query {
	return visitor(Not{Child: n.Child.Accept(visitor), BoostValue: n.BoostValue})
}

func (n Not) Equals(other Query) bool {
	o, ok := other.(Not)
	return ok && boostEqual(n.BoostValue, o.BoostValue) && n.Child.Equals(o.Child)
}

func (n Not) String() string { return withBoostSuffix("NOT "+n.Child.String(), n.Boost()) }

// Every matches every live document (spec §3 Every).
type Every struct {
	BoostValue float64
}

var _ Query = Every{}

func (e Every) Boost() float64                             { return effectiveBoost(e.BoostValue) }
func (e Every) Normalize() Query                            { return e }
func (e Every) Simplify(index.Reader) (Query, error)        { return e, nil }
func (e Every) EstimateSize(reader index.Reader) uint64     { return reader.DocCount() }
func (e Every) AllTerms(*TermSet, bool)                     {}
func (e Every) ExistingTerms(index.Reader, *TermSet, bool, bool) error { return nil }
func (e Every) Replace(string, string, string) Query        { return e }
func (e Every) Accept(visitor Visitor) Query                { return visitor(e) }
func (e Every) Equals(other Query) bool {
	o, ok := other.(Every)
	return ok && boostEqual(e.BoostValue, o.BoostValue)
}
func (e Every) String() string { return withBoostSuffix("*", e.Boost()) }

func (e Every) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	var m search.Matcher = matching.NewEveryMatcher(reader.DocCountAll(), exclude)
	if reader.HasDeletions() {
		m = matching.NewFilter(m, reader.IsDeleted, true)
	}
	return wrapBoost(m, e.Boost()), nil
}

// NullQuery matches nothing (spec §3 NullQuery). It is the singleton
// identity value every compound's null-absorption and empty-collapse
// rules rewrite down to.
type NullQuery struct{}

var _ Query = NullQuery{}

func (NullQuery) Boost() float64                             { return 1 }
func (n NullQuery) Normalize() Query                          { return n }
func (n NullQuery) Simplify(index.Reader) (Query, error)      { return n, nil }
func (NullQuery) EstimateSize(index.Reader) uint64             { return 0 }
func (NullQuery) AllTerms(*TermSet, bool)                      {}
func (NullQuery) ExistingTerms(index.Reader, *TermSet, bool, bool) error { return nil }
func (n NullQuery) Replace(string, string, string) Query      { return n }
func (n NullQuery) Accept(visitor Visitor) Query               { return visitor(n) }
func (NullQuery) Equals(other Query) bool {
	_, ok := other.(NullQuery)
	return ok
}
func (NullQuery) String() string { return "<null>" }

func (NullQuery) Matcher(index.Reader, *docset.Set) (search.Matcher, error) {
	return matching.NullMatcher{}, nil
}

// Require matches documents the Required child matches, but scores and
// weighs purely from the Scored child (spec §3 Require): a conjunction
// where only one side contributes to ranking.
type Require struct {
	Scored     Query
	Required   Query
	BoostValue float64
}

var _ Query = Require{}

func (r Require) Boost() float64 { return effectiveBoost(r.BoostValue) }

func (r Require) Normalize() Query {
	scored := r.Scored.Normalize()
	required := r.Required.Normalize()
	if _, ok := scored.(NullQuery); ok {
		return NullQuery{}
	}
	if _, ok := required.(NullQuery); ok {
		return NullQuery{}
	}
	return Require{Scored: scored, Required: required, BoostValue: r.BoostValue}
}

func (r Require) Simplify(reader index.Reader) (Query, error) {
	scored, err := r.Scored.Simplify(reader)
	if err != nil {
		return nil, err
	}
	required, err := r.Required.Simplify(reader)
	if err != nil {
		return nil, err
	}
	return Require{Scored: scored, Required: required, BoostValue: r.BoostValue}.Normalize(), nil
}

func (r Require) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	scored, err := r.Scored.Matcher(reader, exclude)
	if err != nil {
		return nil, err
	}
	required, err := r.Required.Matcher(reader, exclude)
	if err != nil {
		return nil, err
	}
	m := matching.NewRequire(scored, required)
	return wrapBoost(m, r.Boost()), nil
}

func (r Require) EstimateSize(reader index.Reader) uint64 { return r.Scored.EstimateSize(reader) }

func (r Require) AllTerms(ts *TermSet, phrases bool) {
	r.Scored.AllTerms(ts, phrases)
	r.Required.AllTerms(ts, phrases)
}

func (r Require) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	if err := r.Scored.ExistingTerms(reader, ts, reverse, phrases); err != nil {
		return err
	}
	return r.Required.ExistingTerms(reader, ts, reverse, phrases)
}

func (r Require) Replace(field, oldText, newText string) Query {
	return Require{
		Scored:     r.Scored.Replace(field, oldText, newText),
		Required:   r.Required.Replace(field, oldText, newText),
		BoostValue: r.BoostValue,
	}
}

func (r Require) Accept(visitor Visitor) Query {
	return visitor(Require{Scored: r.Scored.Accept(visitor), Required: r.Required.Accept(visitor), BoostValue: r.BoostValue})
}

func (r Require) Equals(other Query) bool {
	o, ok := other.(Require)
	return ok && boostEqual(r.BoostValue, o.BoostValue) && r.Scored.Equals(o.Scored) && r.Required.Equals(o.Required)
}

func (r Require) String() string {
	return withBoostSuffix(fmt.Sprintf("REQUIRE(%s, %s)", r.Scored, r.Required), r.Boost())
}

// AndMaybe matches documents the Required child matches, adding the
// Optional child's weight and score when it also matches (spec §3
// AndMaybe).
type AndMaybe struct {
	Required   Query
	Optional   Query
	BoostValue float64
}

var _ Query = AndMaybe{}

func (a AndMaybe) Boost() float64 { return effectiveBoost(a.BoostValue) }

func (a AndMaybe) Normalize() Query {
	required := a.Required.Normalize()
	optional := a.Optional.Normalize()
	if _, ok := required.(NullQuery); ok {
		return NullQuery{}
	}
	if _, ok := optional.(NullQuery); ok {
		return rewrapBoost(required, a.Boost())
	}
	return AndMaybe{Required: required, Optional: optional, BoostValue: a.BoostValue}
}

func (a AndMaybe) Simplify(reader index.Reader) (Query, error) {
	required, err := a.Required.Simplify(reader)
	if err != nil {
		return nil, err
	}
	optional, err := a.Optional.Simplify(reader)
	if err != nil {
		return nil, err
	}
	return AndMaybe{Required: required, Optional: optional, BoostValue: a.BoostValue}.Normalize(), nil
}

func (a AndMaybe) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	required, err := a.Required.Matcher(reader, exclude)
	if err != nil {
		return nil, err
	}
	optional, err := a.Optional.Matcher(reader, nil)
	if err != nil {
		return nil, err
	}
	m := matching.NewAndMaybe(required, optional)
	return wrapBoost(m, a.Boost()), nil
}

func (a AndMaybe) EstimateSize(reader index.Reader) uint64 { return a.Required.EstimateSize(reader) }

func (a AndMaybe) AllTerms(ts *TermSet, phrases bool) {
	a.Required.AllTerms(ts, phrases)
	a.Optional.AllTerms(ts, phrases)
}

func (a AndMaybe) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	if err := a.Required.ExistingTerms(reader, ts, reverse, phrases); err != nil {
		return err
	}
	return a.Optional.ExistingTerms(reader, ts, reverse, phrases)
}

func (a AndMaybe) Replace(field, oldText, newText string) Query {
	return AndMaybe{
		Required:   a.Required.Replace(field, oldText, newText),
		Optional:   a.Optional.Replace(field, oldText, newText),
		BoostValue: a.BoostValue,
	}
}

func (a AndMaybe) Accept(visitor Visitor) Query {
	return visitor(AndMaybe{Required: a.Required.Accept(visitor), Optional: a.Optional.Accept(visitor), BoostValue: a.BoostValue})
}

func (a AndMaybe) Equals(other Query) bool {
	o, ok := other.(AndMaybe)
	return ok && boostEqual(a.BoostValue, o.BoostValue) && a.Required.Equals(o.Required) && a.Optional.Equals(o.Optional)
}

func (a AndMaybe) String() string {
	return withBoostSuffix(fmt.Sprintf("%s ANDMAYBE %s", a.Required, a.Optional), a.Boost())
}

// AndNot matches documents the Positive child matches and the Negative
// child does not (spec §3 AndNot). The execution planner relies on this
// node to fold excluded documents into a docset rather than building a
// literal two-sided matcher.
type AndNot struct {
	Positive   Query
	Negative   Query
	BoostValue float64
}

var _ Query = AndNot{}

func (a AndNot) Boost() float64 { return effectiveBoost(a.BoostValue) }

func (a AndNot) Normalize() Query {
	positive := a.Positive.Normalize()
	negative := a.Negative.Normalize()
	if _, ok := positive.(NullQuery); ok {
		return NullQuery{}
	}
	if _, ok := negative.(NullQuery); ok {
		return rewrapBoost(positive, a.Boost())
	}
	return AndNot{Positive: positive, Negative: negative, BoostValue: a.BoostValue}
}

func (a AndNot) Simplify(reader index.Reader) (Query, error) {
	positive, err := a.Positive.Simplify(reader)
	if err != nil {
		return nil, err
	}
	negative, err := a.Negative.Simplify(reader)
	if err != nil {
		return nil, err
	}
	return AndNot{Positive: positive, Negative: negative, BoostValue: a.BoostValue}.Normalize(), nil
}

func (a AndNot) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	negMatcher, err := a.Negative.Matcher(reader, nil)
	if err != nil {
		return nil, err
	}
	negSet, err := docset.FromMatcher(negMatcher)
	if err != nil {
		return nil, err
	}
	merged := docset.New()
	merged.Union(exclude)
	merged.Union(negSet)
	m, err := a.Positive.Matcher(reader, merged)
	if err != nil {
		return nil, err
	}
	return wrapBoost(m, a.Boost()), nil
}

func (a AndNot) EstimateSize(reader index.Reader) uint64 { return a.Positive.EstimateSize(reader) }

func (a AndNot) AllTerms(ts *TermSet, phrases bool) {
	a.Positive.AllTerms(ts, phrases)
	a.Negative.AllTerms(ts, phrases)
}

func (a AndNot) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	if err := a.Positive.ExistingTerms(reader, ts, reverse, phrases); err != nil {
		return err
	}
	return a.Negative.ExistingTerms(reader, ts, reverse, phrases)
}

func (a AndNot) Replace(field, oldText, newText string) Query {
	return AndNot{
		Positive:   a.Positive.Replace(field, oldText, newText),
		Negative:   a.Negative.Replace(field, oldText, newText),
		BoostValue: a.BoostValue,
	}
}

func (a AndNot) Accept(visitor Visitor) Query {
	return visitor(AndNot{Positive: a.Positive.Accept(visitor), Negative: a.Negative.Accept(visitor), BoostValue: a.BoostValue})
}

func (a AndNot) Equals(other Query) bool {
	o, ok := other.(AndNot)
	return ok && boostEqual(a.BoostValue, o.BoostValue) && a.Positive.Equals(o.Positive) && a.Negative.Equals(o.Negative)
}

// String renders "positive ANDNOT negative" (an intentional departure
// from the AND/OR/ANDMAYBE naming, kept to match how query dumps already
// in the wild render this node).
func (a AndNot) String() string {
	return withBoostSuffix(fmt.Sprintf("%s ANDNOT %s", a.Positive, a.Negative), a.Boost())
}
