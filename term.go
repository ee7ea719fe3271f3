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
	"strconv"

	"github.com/heroiclabs/nakama-search-core/index"
	"github.com/heroiclabs/nakama-search-core/index/docset"
	"github.com/heroiclabs/nakama-search-core/search"
	"github.com/heroiclabs/nakama-search-core/search/matching"
)

// Term matches a single indexed (field, text) term (spec §3 Term).
type Term struct {
	Field      string
	Text       string
	BoostValue float64
}

var _ Query = Term{}

// NewTerm returns a Term with the default boost of 1.
func NewTerm(field, text string) Term {
	return Term{Field: field, Text: text}
}

func (t Term) Boost() float64 { return effectiveBoost(t.BoostValue) }

func (t Term) Normalize() Query { return t }

func (t Term) Simplify(index.Reader) (Query, error) { return t, nil }

// Matcher builds a posting matcher for this term. Per spec §7, a
// TermNotFound here is caught locally and results in an empty matcher
// rather than propagating.
func (t Term) Matcher(reader index.Reader, exclude *docset.Set) (search.Matcher, error) {
	raw, err := reader.Postings(t.Field, t.Text)
	if err == index.ErrTermNotFound {
		return matching.NullMatcher{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := matching.NewPostingMatcher(raw, exclude)
	if t.Boost() != 1 {
		return matching.NewBoost(m, t.Boost()), nil
	}
	return m, nil
}

func (t Term) EstimateSize(reader index.Reader) uint64 {
	return reader.DocFrequency(t.Field, t.Text)
}

func (t Term) AllTerms(ts *TermSet, _ bool) {
	ts.Add(t.Field, t.Text)
}

func (t Term) ExistingTerms(reader index.Reader, ts *TermSet, reverse, _ bool) error {
	present := reader.Contains(t.Field, t.Text)
	if present != reverse {
		ts.Add(t.Field, t.Text)
	}
	return nil
}

func (t Term) Replace(field, oldText, newText string) Query {
	if t.Field == field && t.Text == oldText {
		return Term{Field: field, Text: newText, BoostValue: t.BoostValue}
	}
	return t
}

func (t Term) Accept(visitor Visitor) Query { return visitor(t) }

func (t Term) Equals(other Query) bool {
	o, ok := other.(Term)
	if !ok {
		return false
	}
	return t.Field == o.Field && t.Text == o.Text && boostEqual(t.BoostValue, o.BoostValue)
}

func (t Term) String() string {
	s := fmt.Sprintf("%s:%s", t.Field, t.Text)
	if t.Boost() != 1 {
		s += "^" + strconv.FormatFloat(t.Boost(), 'g', -1, 64)
	}
	return s
}
