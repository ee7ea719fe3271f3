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

// Inverse yields every live doc id in [0, docCount) that child's stream
// does NOT contain (spec §4.3 Inverse; §8 property 6, Not as complement
// over live docs). missing reports whether a doc id has been deleted.
type Inverse struct {
	child    search.Matcher
	docCount uint64
	missing  func(uint64) bool
	id       uint64
	active   bool
}

var _ search.Matcher = (*Inverse)(nil)

// NewInverse builds the complement of child over [0, docCount), excluding
// doc ids for which missing returns true.
func NewInverse(child search.Matcher, docCount uint64, missing func(uint64) bool) *Inverse {
	m := &Inverse{child: child, docCount: docCount, missing: missing}
	m.id = 0
	m.active = true
	m.advance()
	return m
}

func (m *Inverse) childHas(id uint64) (bool, error) {
	for m.child.IsActive() && m.child.ID() < id {
		if _, err := m.child.Next(); err != nil {
			return false, err
		}
	}
	return m.child.IsActive() && m.child.ID() == id, nil
}

func (m *Inverse) advance() {
	for m.id < m.docCount {
		if m.missing != nil && m.missing(m.id) {
			m.id++
			continue
		}
		has, err := m.childHas(m.id)
		if err != nil || has {
			m.id++
			continue
		}
		m.active = true
		return
	}
	m.active = false
}

func (m *Inverse) IsActive() bool  { return m.active }
func (m *Inverse) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	return m.id
}
func (m *Inverse) Weight() float32 { return 1 }
func (m *Inverse) Value() []byte   { return nil }
func (m *Inverse) Score() float64  { return 1 }
func (m *Inverse) Close() error    { return m.child.Close() }

func (m *Inverse) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	m.id++
	m.advance()
	return m.active, nil
}

func (m *Inverse) SkipTo(target uint64) (bool, error) {
	if !m.active || target <= m.id {
		return m.active, nil
	}
	m.id = target
	m.advance()
	return m.active, nil
}
