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

// MinShouldMatch is the n-ary disjunction combinator with a minimum number
// of children required to match (Or's min_match parameter, spec §3 Or).
// Like DisjunctionMax it is built directly from its full child list:
// counting how many of n siblings are on the current candidate id needs
// the flat set, not a pairwise-folded tree.
type MinShouldMatch struct {
	children []search.Matcher
	min      int
	id       uint64
	active   bool
	onChild  []bool
}

var _ search.Matcher = (*MinShouldMatch)(nil)

// NewMinShouldMatch builds a matcher that produces a hit at doc ids
// reached by at least min of children.
func NewMinShouldMatch(children []search.Matcher, min int) *MinShouldMatch {
	m := &MinShouldMatch{
		children: children,
		min:      min,
		onChild:  make([]bool, len(children)),
	}
	m.advanceToMatch()
	return m
}

func (m *MinShouldMatch) resolve() int {
	m.id = search.NoMoreDocs
	for _, c := range m.children {
		if c.IsActive() && c.ID() < m.id {
			m.id = c.ID()
		}
	}
	m.active = m.id != search.NoMoreDocs
	count := 0
	for i, c := range m.children {
		m.onChild[i] = m.active && c.IsActive() && c.ID() == m.id
		if m.onChild[i] {
			count++
		}
	}
	return count
}

func (m *MinShouldMatch) advanceToMatch() {
	for {
		count := m.resolve()
		if !m.active || count >= m.min {
			return
		}
		for i, on := range m.onChild {
			if on {
				if _, err := m.children[i].Next(); err != nil {
					m.active = false
					return
				}
			}
		}
	}
}

func (m *MinShouldMatch) IsActive() bool { return m.active }
func (m *MinShouldMatch) ID() uint64     { return m.id }

func (m *MinShouldMatch) Weight() float32 {
	var sum float32
	for i, on := range m.onChild {
		if on {
			sum += m.children[i].Weight()
		}
	}
	return sum
}

func (m *MinShouldMatch) Value() []byte {
	for i, on := range m.onChild {
		if on {
			return m.children[i].Value()
		}
	}
	return nil
}

func (m *MinShouldMatch) Score() float64 {
	if !m.active {
		return 0
	}
	var sum float64
	for i, on := range m.onChild {
		if on {
			sum += m.children[i].Score()
		}
	}
	return sum
}

func (m *MinShouldMatch) Next() (bool, error) {
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
	m.advanceToMatch()
	return m.active, nil
}

func (m *MinShouldMatch) SkipTo(target uint64) (bool, error) {
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
	m.advanceToMatch()
	return m.active, nil
}

func (m *MinShouldMatch) Close() error {
	var first error
	for _, c := range m.children {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
