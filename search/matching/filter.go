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

// Filter wraps a child, discarding doc ids that are (or, if exclude is
// false, are not) members of set (spec §4.3 Filter).
type Filter struct {
	child   search.Matcher
	member  func(uint64) bool
	exclude bool
}

var _ search.Matcher = (*Filter)(nil)

// NewFilter wraps child. When exclude is true, doc ids for which member
// returns true are skipped; when false, doc ids for which member returns
// false are skipped.
func NewFilter(child search.Matcher, member func(uint64) bool, exclude bool) *Filter {
	f := &Filter{child: child, member: member, exclude: exclude}
	f.skipRejected()
	return f
}

func (f *Filter) rejected(id uint64) bool {
	m := f.member(id)
	if f.exclude {
		return m
	}
	return !m
}

func (f *Filter) skipRejected() {
	for f.child.IsActive() && f.rejected(f.child.ID()) {
		if _, err := f.child.Next(); err != nil {
			return
		}
	}
}

func (f *Filter) IsActive() bool  { return f.child.IsActive() }
func (f *Filter) ID() uint64      { return f.child.ID() }
func (f *Filter) Weight() float32 { return f.child.Weight() }
func (f *Filter) Value() []byte   { return f.child.Value() }
func (f *Filter) Score() float64  { return f.child.Score() }
func (f *Filter) Close() error    { return f.child.Close() }

func (f *Filter) Next() (bool, error) {
	active, err := f.child.Next()
	if err != nil || !active {
		return false, err
	}
	f.skipRejected()
	return f.child.IsActive(), nil
}

func (f *Filter) SkipTo(target uint64) (bool, error) {
	active, err := f.child.SkipTo(target)
	if err != nil || !active {
		return false, err
	}
	f.skipRejected()
	return f.child.IsActive(), nil
}
