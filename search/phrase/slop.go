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

// Package phrase implements positional phrase verification over either
// stored postings positions or per-document term vectors (spec §4.4).
package phrase

import "sort"

// MatchesSlop reports whether there is a strictly increasing selection
// p1 < p2 < ... < pk, one position taken from each entry of positionLists
// in order, such that every adjacent pair satisfies p_{i+1}-p_i <= slop
// (spec §4.4, §8 property 11). A slop of 1 means strictly adjacent
// positions.
//
// For each starting position in the first list, extend searches every
// compatible position in each following list in turn, backtracking when a
// choice turns out to be a dead end: the nearest compatible position isn't
// always extendable, so committing to it without trying the others can
// miss a valid selection that a farther candidate would have completed.
func MatchesSlop(positionLists [][]int, slop int) bool {
	if len(positionLists) == 0 {
		return false
	}
	if len(positionLists) == 1 {
		return len(positionLists[0]) > 0
	}
	for _, p1 := range positionLists[0] {
		if extend(positionLists[1:], p1, slop) {
			return true
		}
	}
	return false
}

// extend tries to continue a window anchored at anchor through the
// remaining lists. It walks every candidate position in lists[0] that
// exceeds anchor and is within slop of it, in increasing order, and
// recurses on each until one lets the rest of the lists extend too.
func extend(lists [][]int, anchor, slop int) bool {
	if len(lists) == 0 {
		return true
	}
	list := lists[0]
	// first position > anchor
	for idx := sort.SearchInts(list, anchor+1); idx < len(list); idx++ {
		next := list[idx]
		if next-anchor > slop {
			break
		}
		if extend(lists[1:], next, slop) {
			return true
		}
	}
	return false
}
