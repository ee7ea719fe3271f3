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

// Require has intersection semantics for doc-id membership, but forwards
// only the scored child's weight (spec §4.3 Require; §8 property 8:
// Require scoring isolation).
type Require struct {
	scored, required search.Matcher
	active            bool
}

var _ search.Matcher = (*Require)(nil)

// NewRequire builds a matcher over the intersection of scored and
// required's doc ids, scoring purely from scored.
func NewRequire(scored, required search.Matcher) *Require {
	m := &Require{scored: scored, required: required}
	m.active = m.sync()
	return m
}

func (m *Require) sync() bool {
	for m.scored.IsActive() && m.required.IsActive() {
		l, r := m.scored.ID(), m.required.ID()
		if l == r {
			return true
		}
		if l < r {
			if _, err := m.scored.SkipTo(r); err != nil {
				return false
			}
		} else {
			if _, err := m.required.SkipTo(l); err != nil {
				return false
			}
		}
	}
	return false
}

func (m *Require) IsActive() bool { return m.active }
func (m *Require) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	return m.scored.ID()
}
func (m *Require) Weight() float32 {
	if !m.active {
		return 0
	}
	return m.scored.Weight()
}
func (m *Require) Value() []byte {
	if !m.active {
		return nil
	}
	return m.scored.Value()
}
func (m *Require) Score() float64 {
	if !m.active {
		return 0
	}
	return m.scored.Score()
}

func (m *Require) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	if _, err := m.scored.Next(); err != nil {
		return false, err
	}
	m.active = m.sync()
	return m.active, nil
}

func (m *Require) SkipTo(target uint64) (bool, error) {
	if !m.active {
		return false, nil
	}
	if target <= m.ID() {
		return true, nil
	}
	if _, err := m.scored.SkipTo(target); err != nil {
		return false, err
	}
	if _, err := m.required.SkipTo(target); err != nil {
		return false, err
	}
	m.active = m.sync()
	return m.active, nil
}

func (m *Require) Close() error {
	err1 := m.scored.Close()
	err2 := m.required.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
