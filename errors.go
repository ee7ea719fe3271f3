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

import "errors"

// ErrQuery is the sentinel for user-level construction or execution
// errors: an empty FuzzyTerm, or a phrase search against a field with
// neither positions-in-postings nor positions-in-vectors (spec §7
// QueryError). Wrap it with fmt.Errorf("%w: ...") to attach context.
var ErrQuery = errors.New("query: invalid query")
