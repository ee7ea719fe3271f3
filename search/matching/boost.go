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

// Boost multiplies a child matcher's weight and score by a constant
// factor (spec §4.3 Wrapping; used by the execution planner to apply a
// query node's boost != 1).
type Boost struct {
	child  search.Matcher
	factor float64
}

var _ search.Matcher = (*Boost)(nil)

// NewBoost wraps child, scaling Weight and Score by factor. A factor of 1
// is still valid but callers should typically skip wrapping in that case.
func NewBoost(child search.Matcher, factor float64) *Boost {
	return &Boost{child: child, factor: factor}
}

func (b *Boost) IsActive() bool  { return b.child.IsActive() }
func (b *Boost) ID() uint64      { return b.child.ID() }
func (b *Boost) Weight() float32 { return b.child.Weight() * float32(b.factor) }
func (b *Boost) Value() []byte   { return b.child.Value() }
func (b *Boost) Score() float64  { return b.child.Score() * b.factor }
func (b *Boost) Close() error    { return b.child.Close() }

func (b *Boost) Next() (bool, error) { return b.child.Next() }

func (b *Boost) SkipTo(target uint64) (bool, error) { return b.child.SkipTo(target) }
