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

// Package query is the query-and-matching core of the search engine: the
// algebra of query expressions (this file, term.go, compound.go,
// multiterm.go, phrase_query.go, special.go, boolean.go), their
// normalization and simplification (normalize.go, simplify.go), and term
// extraction and substitution (terms.go). Each node variant builds its own
// streaming search.Matcher directly in its Matcher method; there is no
// separate planner stage beyond Simplify.
package query

import (
	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
)

// Query is implemented by every node variant of the query tree (spec §3).
// Query objects are immutable after construction; every rewrite method
// returns a new tree rather than mutating the receiver. Variants are
// plain, data-only structs (spec §9 "tagged variant"); there is no shared
// base implementation, so each variant implements every method directly.
type Query interface {
	// Boost is the scoring multiplier attached to this node. A zero-value
	// struct field is treated as the default boost of 1.
	Boost() float64

	// Normalize applies the purely syntactic rewrite rules of spec §4.6
	// until a fixed point, without consulting a reader. Idempotent.
	Normalize() Query

	// Simplify expands every multi-term node against reader into a
	// disjunction of Term leaves (spec §4.7), and splits Not children out
	// of And compounds via the AndNot rewrite.
	Simplify(reader index.Reader) (Query, error)

	// Matcher builds a streaming matcher for this (already simplified)
	// node. exclude carries the doc ids an enclosing AndNot folds in from
	// its negative side; it may be nil. Deleted docs do not travel through
	// exclude: the reader's postings, Every and Not drop them themselves.
	Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error)

	// EstimateSize estimates the number of documents this node could
	// match, used by the execution planner to order subqueries cheapest
	// first (spec §4.8).
	EstimateSize(reader index.Reader) uint64

	// AllTerms adds every (field, term) pair this node's leaves reference
	// to ts. Phrase leaves contribute their words only when phrases is
	// true; multi-term leaves contribute nothing (spec §4.5).
	AllTerms(ts *TermSet, phrases bool)

	// ExistingTerms is like AllTerms but filtered by presence in reader;
	// multi-term leaves expand via their reader-driven word iterator.
	// When reverse is true the predicate is inverted (missing terms).
	ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error

	// Replace returns a new tree with every Term leaf matching
	// (field, oldText) rewritten to (field, newText).
	Replace(field, oldText, newText string) Query

	// Accept performs a deep-copy, bottom-up traversal: visitor is called
	// on every child first, then on the (possibly rewritten) node itself.
	Accept(visitor Visitor) Query

	// Equals reports structural equality: same variant, same fields, same
	// boost. Compound children compare elementwise and positionally.
	Equals(other Query) bool

	// String renders the canonical, advisory text form (spec §6).
	String() string
}

// Visitor is applied bottom-up by Accept; it returns the (possibly
// rewritten) query to substitute at each node.
type Visitor func(Query) Query

// effectiveBoost maps the struct zero value to the default boost of 1,
// the convention every variant's Boost() method relies on.
func effectiveBoost(b float64) float64 {
	if b == 0 {
		return 1
	}
	return b
}

// boostEqual compares two boost field values under the zero-means-one
// convention.
func boostEqual(a, b float64) bool {
	return effectiveBoost(a) == effectiveBoost(b)
}
