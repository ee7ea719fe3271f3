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

// Package engine is the thin, stateful façade a caller wires the
// otherwise stateless query/matching core behind: structured logging,
// search/term-miss counters, and the handful of default knobs a boolean
// search needs (spec.md §5 "the core itself is stateless"; this is the
// seam a real embedding caller hangs logging and counters off, the way
// nakama's StorageIndex wraps bluge).
package engine

import (
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/heroiclabs/nakama-search-core"
	"github.com/heroiclabs/nakama-search-core/index"
)

// Options are the default knobs threaded through every search run,
// mirroring bluge's SearcherOptions: nothing here is mandatory for a
// caller to set, every field has a workable zero value.
type Options struct {
	// DisjunctionMaxTiebreak is used by callers that build a
	// query.DisjunctionMax without specifying their own tiebreak.
	DisjunctionMaxTiebreak float64

	// DefaultSlop is used by callers that build a query.Phrase without
	// specifying their own slop.
	DefaultSlop int
}

// DefaultOptions returns the engine's out-of-the-box defaults.
func DefaultOptions() Options {
	return Options{DisjunctionMaxTiebreak: 0.0, DefaultSlop: 0}
}

// Stats are the atomic counters a caller can sample concurrently with
// live searches, in the style of storage_index.go's EntryCount
// *atomic.Uint64.
type Stats struct {
	SearchesRun  *atomic.Uint64
	TermsMissing *atomic.Uint64
}

func newStats() *Stats {
	return &Stats{
		SearchesRun:  atomic.NewUint64(0),
		TermsMissing: atomic.NewUint64(0),
	}
}

// Engine wires a query.Query against an index.Reader with logging and
// counters. It holds no index state of its own; Reader is supplied per
// call so one Engine can serve a rotating set of readers (e.g. one per
// generation of a MultiReader).
type Engine struct {
	logger  *zap.Logger
	options Options
	stats   *Stats
}

// New builds an Engine. logger must not be nil; pass zap.NewNop() in
// tests that don't care about log output.
func New(logger *zap.Logger, options Options) *Engine {
	return &Engine{logger: logger, options: options, stats: newStats()}
}

// Options returns the engine's configured defaults.
func (e *Engine) Options() Options { return e.options }

// Stats returns the engine's counters.
func (e *Engine) Stats() *Stats { return e.stats }

// Search normalizes q and simplifies it against reader, returning the
// simplified query; the caller builds and drains its Matcher.
// A TermNotFound surfaced during Simplify is swallowed into a logged
// warning and a TermsMissing counter bump rather than failing the whole
// search (spec.md §7).
func (e *Engine) Search(reader index.Reader, q query.Query) (query.Query, error) {
	start := time.Now()
	defer func() {
		e.stats.SearchesRun.Inc()
		e.logger.Debug("search planned",
			zap.Duration("elapsed", time.Since(start)),
			zap.Uint64("searches_run", e.stats.SearchesRun.Load()),
		)
	}()

	normalized := q.Normalize()
	simplified, err := normalized.Simplify(reader)
	if err != nil {
		if err == index.ErrTermNotFound {
			e.stats.TermsMissing.Inc()
			e.logger.Warn("term not found during simplify, treating as no match")
			return query.NullQuery{}, nil
		}
		e.logger.Error("failed to simplify query", zap.Error(err))
		return nil, err
	}

	e.logger.Debug("search simplified",
		zap.String("plan", simplified.String()),
		zap.Uint64("estimated_size", simplified.EstimateSize(reader)),
	)
	return simplified, nil
}
