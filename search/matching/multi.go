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

// SegmentMatcher pairs a per-segment matcher with the base offset its doc
// ids must be shifted by to land in the composite's global doc id space.
type SegmentMatcher struct {
	Matcher search.Matcher
	Base    uint64
}

// Multi adapts a composite reader by offsetting each segment's local doc
// ids by that segment's base and merging the segment streams by ascending
// global id (spec §4.3 MultiMatcher, §9 "Multi-segment offsets"). Segments
// are assumed already sorted by ascending base.
type Multi struct {
	segments []SegmentMatcher
	cur      int
	active   bool
}

var _ search.Matcher = (*Multi)(nil)

// NewMulti builds a matcher merging segments in ascending global doc id
// order. segments must already be ordered by ascending Base.
func NewMulti(segments []SegmentMatcher) *Multi {
	m := &Multi{segments: segments}
	m.findLowest()
	return m
}

// findLowest scans for the segment currently sitting on the smallest
// global id; with segments kept base-ascending and each segment's stream
// ascending, the minimum is always among the currently-active segments.
func (m *Multi) findLowest() {
	best := -1
	var bestID uint64
	for i, seg := range m.segments {
		if !seg.Matcher.IsActive() {
			continue
		}
		global := seg.Matcher.ID() + seg.Base
		if best < 0 || global < bestID {
			best = i
			bestID = global
		}
	}
	m.cur = best
	m.active = best >= 0
}

func (m *Multi) IsActive() bool { return m.active }

func (m *Multi) ID() uint64 {
	if !m.active {
		return search.NoMoreDocs
	}
	seg := m.segments[m.cur]
	return seg.Matcher.ID() + seg.Base
}

func (m *Multi) Weight() float32 {
	if !m.active {
		return 0
	}
	return m.segments[m.cur].Matcher.Weight()
}

func (m *Multi) Value() []byte {
	if !m.active {
		return nil
	}
	return m.segments[m.cur].Matcher.Value()
}

func (m *Multi) Score() float64 {
	if !m.active {
		return 0
	}
	return m.segments[m.cur].Matcher.Score()
}

func (m *Multi) Next() (bool, error) {
	if !m.active {
		return false, nil
	}
	if _, err := m.segments[m.cur].Matcher.Next(); err != nil {
		return false, err
	}
	m.findLowest()
	return m.active, nil
}

func (m *Multi) SkipTo(target uint64) (bool, error) {
	if !m.active {
		return false, nil
	}
	for i := range m.segments {
		seg := &m.segments[i]
		if !seg.Matcher.IsActive() {
			continue
		}
		if target > seg.Base+seg.Matcher.ID() {
			local := uint64(0)
			if target > seg.Base {
				local = target - seg.Base
			}
			if _, err := seg.Matcher.SkipTo(local); err != nil {
				return false, err
			}
		}
	}
	m.findLowest()
	return m.active, nil
}

func (m *Multi) Close() error {
	var first error
	for _, seg := range m.segments {
		if err := seg.Matcher.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
