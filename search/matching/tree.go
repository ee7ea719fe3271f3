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

package matching

import "github.com/heroiclabs/nakama-search-core/search"

// Combine builds a single matcher out of two matchers using a 2-ary
// combinator, e.g. NewIntersection or NewUnion.
type Combine func(left, right search.Matcher) search.Matcher

// MakeTree builds a left-leaning balanced binary tree of 2-ary combinators
// from matchers, recursively splitting the list in halves, keeping
// intersection/union depth at ceil(log2 n) (spec §4.9). An empty list
// yields NullMatcher; a singleton list returns its sole element unchanged.
func MakeTree(combine Combine, matchers []search.Matcher) search.Matcher {
	switch len(matchers) {
	case 0:
		return NullMatcher{}
	case 1:
		return matchers[0]
	default:
		mid := len(matchers) / 2
		left := MakeTree(combine, matchers[:mid])
		right := MakeTree(combine, matchers[mid:])
		return combine(left, right)
	}
}

// IntersectAll is a convenience MakeTree call fixed to NewIntersection.
func IntersectAll(matchers []search.Matcher) search.Matcher {
	return MakeTree(func(l, r search.Matcher) search.Matcher { return NewIntersection(l, r) }, matchers)
}

// UnionAll is a convenience MakeTree call fixed to NewUnion.
func UnionAll(matchers []search.Matcher) search.Matcher {
	return MakeTree(func(l, r search.Matcher) search.Matcher { return NewUnion(l, r) }, matchers)
}
