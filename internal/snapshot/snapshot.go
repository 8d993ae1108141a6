//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package snapshot holds the loaded fact table as an immutable snapshot.
// A refresh builds a whole new snapshot and swaps it in atomically; there
// is no incremental mutation.
package snapshot

import (
	"sort"
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// factID addresses one fact row: dimensional key plus week-ending date.
type factID struct {
	key    schema.Key
	ending time.Time
}

// Snapshot is one immutable load of the fact table with its dimension
// lookups and week dictionary.
type Snapshot struct {
	facts    []schema.Fact
	weeks    *schema.WeekDictionary
	dims     *schema.Dimensions
	loadedAt time.Time

	index map[factID]int
}

// New builds a snapshot and its fact index. Duplicate rows for the same
// key and week keep the last occurrence, matching a full re-extract
// overriding an earlier partial one: the later row replaces the earlier
// one in place, so aggregation and lookup see the same single row.
func New(facts []schema.Fact, weeks *schema.WeekDictionary, dims *schema.Dimensions) *Snapshot {
	if weeks == nil {
		weeks = schema.NewWeekDictionary()
	}
	if dims == nil {
		dims = schema.NewDimensions()
	}

	s := &Snapshot{
		facts:    make([]schema.Fact, 0, len(facts)),
		weeks:    weeks,
		dims:     dims,
		loadedAt: time.Now(),
		index:    make(map[factID]int, len(facts)),
	}
	for i := range facts {
		f := facts[i]
		s.weeks.Add(f.Week)
		id := factID{key: f.Key(), ending: f.Week.Ending}
		if j, ok := s.index[id]; ok {
			s.facts[j] = f
			continue
		}
		s.index[id] = len(s.facts)
		s.facts = append(s.facts, f)
	}
	return s
}

// Facts returns the fact rows. Callers must not mutate them.
func (s *Snapshot) Facts() []schema.Fact {
	return s.facts
}

// Weeks returns the week dictionary.
func (s *Snapshot) Weeks() *schema.WeekDictionary {
	return s.weeks
}

// Dimensions returns the dictionary lookups the snapshot was built with.
func (s *Snapshot) Dimensions() *schema.Dimensions {
	return s.dims
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Fact returns the fact for a key and week-ending date.
func (s *Snapshot) Fact(key schema.Key, ending time.Time) (*schema.Fact, bool) {
	i, ok := s.index[factID{key: key, ending: ending}]
	if !ok {
		return nil, false
	}
	return &s.facts[i], true
}

// YearAgo returns the fact exactly 52 weeks before f for the same key.
// ok is false when the snapshot has no such row; YoY metrics for f are
// then undefined unless the source row carries its own year-ago figures.
func (s *Snapshot) YearAgo(f *schema.Fact) (*schema.Fact, bool) {
	return s.Fact(f.Key(), f.Week.YearAgo())
}

// Brands returns the distinct canonical brands, sorted.
func (s *Snapshot) Brands() []string {
	return s.distinct(func(f *schema.Fact) string { return f.Brand })
}

// Products returns the distinct products, sorted.
func (s *Snapshot) Products() []string {
	return s.distinct(func(f *schema.Fact) string { return f.Product })
}

// Geographies returns the distinct geographies, sorted.
func (s *Snapshot) Geographies() []string {
	return s.distinct(func(f *schema.Fact) string { return f.Geography })
}

// Categories returns the distinct categories, sorted. Facts without a
// category dictionary entry contribute an empty string, which is dropped.
func (s *Snapshot) Categories() []string {
	return s.distinct(func(f *schema.Fact) string { return f.Category })
}

func (s *Snapshot) distinct(field func(*schema.Fact) string) []string {
	seen := make(map[string]struct{})
	for i := range s.facts {
		if v := field(&s.facts[i]); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
