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

// Intersection is the 2-way conjunction combinator (spec §4.3): it
// advances the lagging cursor with SkipTo until both agree or either goes
// inactive, yielding the common id with summed weight.
type Intersection struct {
	left, right search.Matcher
	active      bool
}

var _ search.Matcher = (*Intersection)(nil)

// NewIntersection builds a matcher over the set intersection of left and
// right's doc ids.
func NewIntersection(left, right search.Matcher) *Intersection {
	m := &Intersection{left: left, right: right}
	m.active = m.sync()
	return m
}

// sync advances the lagging side until both matchers agree on a doc id or
// either becomes inactive.
func (m *Intersection) sync() bool {
	for m.left.IsActive() && m.right.IsActive() {
		l, r := m.left.ID(), m.right.ID()
		if l == r {
			return true
		}
		if l < r {
			if _, err := m.left.SkipTo(r); err != nil {
				return false
			}
		} else {
			if _, err := m.right.SkipTo(l); err != nil {
				return false
			}
		}
	}
	return false
}

func (m *Intersection) IsActive() bool { return m.active }
func (m *Intersection) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	return m.left.ID()
}
func (m *Intersection) Weight() float32 {
	if !m.active {
		return 0
	}
	return m.left.Weight() + m.right.Weight()
}
func (m *Intersection) Value() []byte {
	if !m.active {
		return nil
	}
	return m.left.Value()
}
func (m *Intersection) Score() float64 {
	if !m.active {
		return 0
	}
	return m.left.Score() + m.right.Score()
}

func (m *Intersection) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	if _, err := m.left.Next(); err != nil {
		return false, err
	}
	m.active = m.sync()
	return m.active, nil
}

func (m *Intersection) SkipTo(target uint64) (bool, error) {
	if !m.active {
		return false, nil
	}
	if target <= m.ID() {
		return m.active, nil
	}
	if _, err := m.left.SkipTo(target); err != nil {
		return false, err
	}
	if _, err := m.right.SkipTo(target); err != nil {
		return false, err
	}
	m.active = m.sync()
	return m.active, nil
}

func (m *Intersection) Close() error {
	err1 := m.left.Close()
	err2 := m.right.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
