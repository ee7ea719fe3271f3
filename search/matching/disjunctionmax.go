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

// DisjunctionMax is the n-ary disjunction-max combinator (spec §3
// DisjunctionMax, §4.3): a hit is produced whenever any child matches, and
// its score is the maximum child score plus tiebreak times the sum of the
// remaining child scores. Unlike the other combinators it is built
// directly from its full child list rather than folded into a pairwise
// binary tree, because collapsing the max/tiebreak formula through nested
// 2-way nodes would lose the flat set of sibling scores it needs.
type DisjunctionMax struct {
	children []search.Matcher
	tiebreak float64
	id       uint64
	active   bool
	onChild  []bool
}

var _ search.Matcher = (*DisjunctionMax)(nil)

// NewDisjunctionMax builds a matcher over the union of children's doc
// ids, scoring each hit by max(child scores) + tiebreak*sum(the rest).
func NewDisjunctionMax(children []search.Matcher, tiebreak float64) *DisjunctionMax {
	m := &DisjunctionMax{
		children: children,
		tiebreak: tiebreak,
		onChild:  make([]bool, len(children)),
	}
	m.resolve()
	return m
}

func (m *DisjunctionMax) resolve() {
	m.id = search.NoMoreDocs
	for _, c := range m.children {
		if c.IsActive() && c.ID() < m.id {
			m.id = c.ID()
		}
	}
	m.active = m.id != search.NoMoreDocs
	for i, c := range m.children {
		m.onChild[i] = m.active && c.IsActive() && c.ID() == m.id
	}
}

func (m *DisjunctionMax) IsActive() bool { return m.active }
func (m *DisjunctionMax) ID() uint64     { return m.id }

func (m *DisjunctionMax) Weight() float32 {
	var best float32
	first := true
	for i, on := range m.onChild {
		if !on {
			continue
		}
		w := m.children[i].Weight()
		if first || w > best {
			best = w
			first = false
		}
	}
	return best
}

func (m *DisjunctionMax) Value() []byte {
	for i, on := range m.onChild {
		if on {
			return m.children[i].Value()
		}
	}
	return nil
}

// Score implements the max + tiebreak*sum(others) formula (spec §8
// property 9).
func (m *DisjunctionMax) Score() float64 {
	if !m.active {
		return 0
	}
	var max float64
	var sum float64
	first := true
	for i, on := range m.onChild {
		if !on {
			continue
		}
		s := m.children[i].Score()
		sum += s
		if first || s > max {
			max = s
			first = false
		}
	}
	return max + m.tiebreak*(sum-max)
}

func (m *DisjunctionMax) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	for i, on := range m.onChild {
		if !on {
			continue
		}
		if _, err := m.children[i].Next(); err != nil {
			return false, err
		}
	}
	m.resolve()
	return m.active, nil
}

func (m *DisjunctionMax) SkipTo(target uint64) (bool, error) {
	if !m.active {
		return false, nil
	}
	if target <= m.id {
		return true, nil
	}
	for _, c := range m.children {
		if c.IsActive() {
			if _, err := c.SkipTo(target); err != nil {
				return false, err
			}
		}
	}
	m.resolve()
	return m.active, nil
}

func (m *DisjunctionMax) Close() error {
	var first error
	for _, c := range m.children {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
