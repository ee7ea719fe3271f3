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

import "github.com/heroiclabs/nakama-search-core/index"

// simplifyChildren simplifies every child against reader, rebuilds the
// compound via rebuild, and normalizes the result — multi-term children
// expand into Or([Term...]) nodes during the per-child Simplify call, so
// the rebuilt compound's Normalize pass is what flattens and dedupes them
// into their final shape (spec §4.7). self is unused by the shared
// helper; it exists so each call site reads naturally at the use site.
func simplifyChildren(self Query, children []Query, rebuild func([]Query) Query, reader index.Reader) (Query, error) {
	_ = self
	out := make([]Query, len(children))
	for i, c := range children {
		s, err := c.Simplify(reader)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return rebuild(out).Normalize(), nil
}
