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

// AndMaybe scans required and, at each doc id, probes optional with
// SkipTo; optional's weight is added in only when it coincides (spec §4.3
// AndMaybe).
type AndMaybe struct {
	required, optional search.Matcher
	optionalHits        bool
}

var _ search.Matcher = (*AndMaybe)(nil)

// NewAndMaybe builds a matcher over required's doc ids, adding optional's
// weight whenever it also matches the current doc id.
func NewAndMaybe(required, optional search.Matcher) *AndMaybe {
	m := &AndMaybe{required: required, optional: optional}
	m.probe()
	return m
}

func (m *AndMaybe) probe() {
	m.optionalHits = false
	if !m.required.IsActive() || !m.optional.IsActive() {
		return
	}
	id := m.required.ID()
	if m.optional.ID() < id {
		if _, err := m.optional.SkipTo(id); err != nil {
			return
		}
	}
	m.optionalHits = m.optional.IsActive() && m.optional.ID() == id
}

func (m *AndMaybe) IsActive() bool  { return m.required.IsActive() }
func (m *AndMaybe) ID() uint64      { return m.required.ID() }
func (m *AndMaybe) Weight() float32 {
	w := m.required.Weight()
	if m.optionalHits {
		w += m.optional.Weight()
	}
	return w
}
func (m *AndMaybe) Value() []byte { return m.required.Value() }
func (m *AndMaybe) Score() float64 {
	s := m.required.Score()
	if m.optionalHits {
		s += m.optional.Score()
	}
	return s
}

func (m *AndMaybe) Next() (bool, error) {
	if !m.required.IsActive() {
		return false, nil
	}
	if _, err := m.required.Next(); err != nil {
		return false, err
	}
	m.probe()
	return m.required.IsActive(), nil
}

func (m *AndMaybe) SkipTo(target uint64) (bool, error) {
	if !m.required.IsActive() {
		return false, nil
	}
	if _, err := m.required.SkipTo(target); err != nil {
		return false, err
	}
	m.probe()
	return m.required.IsActive(), nil
}

func (m *AndMaybe) Close() error {
	err1 := m.required.Close()
	err2 := m.optional.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
