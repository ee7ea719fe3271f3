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

// normalizeChildren normalizes every child independently; it does not
// flatten or deduplicate (callers do that themselves, since the rules
// differ per compound).
func normalizeChildren(children []Query) []Query {
	out := make([]Query, len(children))
	for i, c := range children {
		out[i] = c.Normalize()
	}
	return out
}

// normalizeChildrenFlatten normalizes children, drops Null members (the
// identity element for every compound covered here), and splices in the
// grandchildren of any member tryFlatten accepts.
func normalizeChildrenFlatten(children []Query, tryFlatten func(Query) ([]Query, bool)) []Query {
	normalized := normalizeChildren(children)
	out := make([]Query, 0, len(normalized))
	for _, c := range normalized {
		if _, ok := c.(NullQuery); ok {
			continue
		}
		if inner, ok := tryFlatten(c); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, c)
	}
	return dedupeTerms(out)
}

// dedupeTerms removes repeated direct Term children (spec §4.6: the
// dedupe rule applies only to Term leaves sitting directly under the
// compound, not to Terms buried inside a nested child). Relative order
// of first occurrence, and of non-Term children, is preserved.
func dedupeTerms(children []Query) []Query {
	seen := make(map[Term]bool)
	out := make([]Query, 0, len(children))
	for _, c := range children {
		if t, ok := c.(Term); ok {
			key := Term{Field: t.Field, Text: t.Text, BoostValue: t.BoostValue}
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, c)
	}
	return out
}

// normalizeConjunction implements And's normalization: null-absorbing
// (one Null child makes the whole conjunction match nothing), flattening
// nested unboosted And children, and collapsing to the sole survivor when
// only one child remains. An empty And carries no children to match
// against and normalizes to Null, same as an empty Or (spec §4.6 rule 1).
func normalizeConjunction(a And) Query {
	children := normalizeChildren(a.Children)
	flat := make([]Query, 0, len(children))
	for _, c := range children {
		if _, ok := c.(NullQuery); ok {
			return NullQuery{}
		}
		if inner, ok := c.(And); ok && inner.Boost() == 1 {
			flat = append(flat, inner.Children...)
			continue
		}
		flat = append(flat, c)
	}
	flat = dedupeTerms(flat)
	switch len(flat) {
	case 0:
		return NullQuery{}
	case 1:
		return rewrapBoost(flat[0], a.Boost())
	default:
		return And{Children: flat, BoostValue: a.BoostValue}
	}
}

// normalizeDisjunction implements Or's normalization: Null children are
// simply dropped (OR's identity element), nested plain Or children
// (min_match <= 1, unboosted) are flattened in, and an empty Or collapses
// to Null.
func normalizeDisjunction(o Or) Query {
	children := normalizeChildren(o.Children)
	flat := make([]Query, 0, len(children))
	for _, c := range children {
		if _, ok := c.(NullQuery); ok {
			continue
		}
		if inner, ok := c.(Or); ok && inner.MinMatch <= 1 && inner.Boost() == 1 && o.MinMatch <= 1 {
			flat = append(flat, inner.Children...)
			continue
		}
		flat = append(flat, c)
	}
	flat = dedupeTerms(flat)
	switch len(flat) {
	case 0:
		return NullQuery{}
	case 1:
		if o.MinMatch <= 1 {
			return rewrapBoost(flat[0], o.Boost())
		}
		return Or{Children: flat, MinMatch: o.MinMatch, BoostValue: o.BoostValue}
	default:
		return Or{Children: flat, MinMatch: o.MinMatch, BoostValue: o.BoostValue}
	}
}

// rewrapBoost folds outer into q's own boost field, used when a compound
// collapses down to its sole surviving child during Normalize. NullQuery
// has no boost of its own and passes through unchanged.
func rewrapBoost(q Query, outer float64) Query {
	if outer == 1 {
		return q
	}
	switch v := q.(type) {
	case Term:
		v.BoostValue = v.Boost() * outer
		return v
	case And:
		v.BoostValue = v.Boost() * outer
		return v
	case Or:
		v.BoostValue = v.Boost() * outer
		return v
	case DisjunctionMax:
		v.BoostValue = v.Boost() * outer
		return v
	case Not:
		v.BoostValue = v.Boost() * outer
		return v
	case Prefix:
		v.BoostValue = v.Boost() * outer
		return v
	case Wildcard:
		v.BoostValue = v.Boost() * outer
		return v
	case FuzzyTerm:
		v.BoostValue = v.Boost() * outer
		return v
	case TermRange:
		v.BoostValue = v.Boost() * outer
		return v
	case Variations:
		v.BoostValue = v.Boost() * outer
		return v
	case Phrase:
		v.BoostValue = v.Boost() * outer
		return v
	case Require:
		v.BoostValue = v.Boost() * outer
		return v
	case AndMaybe:
		v.BoostValue = v.Boost() * outer
		return v
	case AndNot:
		v.BoostValue = v.Boost() * outer
		return v
	case Every:
		v.BoostValue = v.Boost() * outer
		return v
	default:
		return q
	}
}
