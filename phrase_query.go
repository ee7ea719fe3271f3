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

package query

import (
	"fmt"
	"strings"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
	"github.com/heroiclabs/nakama-search-core/search/matching"
	"github.com/heroiclabs/nakama-search-core/search/phrase"
)

// Phrase matches documents where Words occur, in order, within Slop
// positions of each other in Field (spec §3 Phrase, §4.4). Matcher is
// always pinned to whichever of the two phrase verification strategies
// reader.StoresPositions(Field) selects; a Phrase node is never
// simplified away, so this choice is made fresh at plan time, not cached.
type Phrase struct {
	Field      string
	Words      []string
	Slop       int
	BoostValue float64
}

var _ Query = Phrase{}

func (p Phrase) Boost() float64 { return effectiveBoost(p.BoostValue) }

func (p Phrase) Normalize() Query {
	switch len(p.Words) {
	case 0:
		return NullQuery{}
	case 1:
		return Term{Field: p.Field, Text: p.Words[0], BoostValue: p.BoostValue}
	default:
		return p
	}
}

func (p Phrase) Simplify(index.Reader) (Query, error) { return p, nil }

func (p Phrase) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	if reader.StoresPositions(p.Field) {
		words := make([]search.Matcher, 0, len(p.Words))
		for _, w := range p.Words {
			raw, err := reader.Postings(p.Field, w)
			if err == index.ErrTermNotFound {
				return matching.NullMatcher{}, nil
			}
			if err != nil {
				return nil, err
			}
			words = append(words, matching.NewPostingMatcher(raw, exclude))
		}
		m := phrase.NewPostingMatcher(words, p.Slop)
		return wrapBoost(m, p.Boost()), nil
	}

	m, err := phrase.NewVectorMatcher(reader, p.Field, p.Words, p.Slop)
	if err != nil {
		return nil, err
	}
	if exclude != nil {
		return wrapBoost(matching.NewFilter(m, exclude.Contains, true), p.Boost()), nil
	}
	return wrapBoost(m, p.Boost()), nil
}

func (p Phrase) EstimateSize(reader index.Reader) uint64 {
	var min uint64
	for i, w := range p.Words {
		size := reader.DocFrequency(p.Field, w)
		if i == 0 || size < min {
			min = size
		}
	}
	return min
}

func (p Phrase) AllTerms(ts *TermSet, phrases bool) {
	if !phrases {
		return
	}
	for _, w := range p.Words {
		ts.Add(p.Field, w)
	}
}

func (p Phrase) ExistingTerms(reader index.Reader, ts *TermSet, reverse, phrases bool) error {
	if !phrases {
		return nil
	}
	for _, w := range p.Words {
		if reader.Contains(p.Field, w) != reverse {
			ts.Add(p.Field, w)
		}
	}
	return nil
}

func (p Phrase) Replace(field, oldText, newText string) Query {
	if p.Field != field {
		return p
	}
	words := make([]string, len(p.Words))
	changed := false
	for i, w := range p.Words {
		if w == oldText {
			words[i] = newText
			changed = true
		} else {
			words[i] = w
		}
	}
	if !changed {
		return p
	}
	return Phrase{Field: field, Words: words, Slop: p.Slop, BoostValue: p.BoostValue}
}

func (p Phrase) Accept(visitor Visitor) Query { return visitor(p) }

// Equals compares Words elementwise (the plural field, not a single text
// string — a Phrase is a tuple of words, unlike every other leaf).
func (p Phrase) Equals(other Query) bool {
	o, ok := other.(Phrase)
	if !ok || p.Field != o.Field || p.Slop != o.Slop || !boostEqual(p.BoostValue, o.BoostValue) {
		return false
	}
	if len(p.Words) != len(o.Words) {
		return false
	}
	for i := range p.Words {
		if p.Words[i] != o.Words[i] {
			return false
		}
	}
	return true
}

func (p Phrase) String() string {
	s := fmt.Sprintf("%s:%q", p.Field, strings.Join(p.Words, " "))
	if p.Slop > 0 {
		s += "~" + fmt.Sprint(p.Slop)
	}
	return withBoostSuffix(s, p.Boost())
}
