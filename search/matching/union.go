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

// Union is the 2-way disjunction combinator (spec §4.3): it yields
// min(left.ID, right.ID); on equality it yields once with summed weight
// and advances both, preserving the ascending, duplicate-free invariant.
type Union struct {
	left, right   search.Matcher
	id            uint64
	onLeft, onRight bool
}

var _ search.Matcher = (*Union)(nil)

// NewUnion builds a matcher over the set union of left and right's doc
// ids.
func NewUnion(left, right search.Matcher) *Union {
	m := &Union{left: left, right: right}
	m.resolve()
	return m
}

func (m *Union) resolve() {
	switch {
	case m.left.IsActive() && m.right.IsActive():
		l, r := m.left.ID(), m.right.ID()
		switch {
		case l == r:
			m.id, m.onLeft, m.onRight = l, true, true
		case l < r:
			m.id, m.onLeft, m.onRight = l, true, false
		default:
			m.id, m.onLeft, m.onRight = r, false, true
		}
	case m.left.IsActive():
		m.id, m.onLeft, m.onRight = m.left.ID(), true, false
	case m.right.IsActive():
		m.id, m.onLeft, m.onRight = m.right.ID(), false, true
	default:
		m.onLeft, m.onRight = false, false
	}
}

func (m *Union) IsActive() bool { return m.onLeft || m.onRight }
func (m *Union) ID() uint64 {
	if !m.IsActive() {
		return search.NoMoreDocs
	}
	return m.id
}

func (m *Union) Weight() float32 {
	var w float32
	if m.onLeft {
		w += m.left.Weight()
	}
	if m.onRight {
		w += m.right.Weight()
	}
	return w
}

func (m *Union) Value() []byte {
	if m.onLeft {
		return m.left.Value()
	}
	if m.onRight {
		return m.right.Value()
	}
	return nil
}

func (m *Union) Score() float64 {
	var s float64
	if m.onLeft {
		s += m.left.Score()
	}
	if m.onRight {
		s += m.right.Score()
	}
	return s
}

func (m *Union) Next() (bool, error) {
	if !m.IsActive() {
		return false, nil
	}
	if m.onLeft {
		if _, err := m.left.Next(); err != nil {
			return false, err
		}
	}
	if m.onRight {
		if _, err := m.right.Next(); err != nil {
			return false, err
		}
	}
	m.resolve()
	return m.IsActive(), nil
}

func (m *Union) SkipTo(target uint64) (bool, error) {
	if !m.IsActive() {
		return false, nil
	}
	if target <= m.id {
		return true, nil
	}
	if m.left.IsActive() {
		if _, err := m.left.SkipTo(target); err != nil {
			return false, err
		}
	}
	if m.right.IsActive() {
		if _, err := m.right.SkipTo(target); err != nil {
			return false, err
		}
	}
	m.resolve()
	return m.IsActive(), nil
}

func (m *Union) Close() error {
	err1 := m.left.Close()
	err2 := m.right.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
