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

// NewBoolean is the convenience constructor mirroring Lucene/bluge-style
// boolean queries: documents must satisfy every member of required, are
// scored up by however many of should they also satisfy, and are excluded
// if they satisfy any member of prohibited (spec §5 BooleanQuery). It is
// sugar over the primitive tree: AndNot(AndMaybe(And(required), Or(should)),
// Or(prohibited)), normalized immediately so the caller always receives a
// tree already in its canonical shape. An empty required list puts Every
// in And(required)'s place, so with no required members every live
// document not matched by prohibited is returned.
func NewBoolean(required, should, prohibited []Query) Query {
	var core Query = Every{}
	if len(required) > 0 {
		core = And{Children: required}
	}
	if len(should) > 0 {
		core = AndMaybe{Required: core, Optional: Or{Children: should}}
	}
	if len(prohibited) > 0 {
		core = AndNot{Positive: core, Negative: Or{Children: prohibited}}
	}
	return core.Normalize()
}
