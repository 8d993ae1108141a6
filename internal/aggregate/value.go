//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package aggregate computes filter-scoped metrics over a sales snapshot:
// period sums and maxes, year-over-year deltas, market shares and
// velocity. Every computation takes an explicit Scope; there is no
// ambient filter state.
package aggregate

import "encoding/json"

// Value is a metric result that may be undefined. A missing year-ago
// match or a zero denominator yields an undefined value, never zero and
// never a division by zero.
type Value struct {
	Float64 float64
	Valid   bool
}

// Defined returns a defined value.
func Defined(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// Undefined returns the undefined value.
func Undefined() Value {
	return Value{}
}

// MarshalJSON renders undefined values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float64)
}

// Ratio divides num by den, undefined when den is zero or either input
// is undefined.
func Ratio(num, den Value) Value {
	if !num.Valid || !den.Valid || den.Float64 == 0 {
		return Undefined()
	}
	return Defined(num.Float64 / den.Float64)
}

// Evolution returns (cur - yearAgo) / yearAgo, undefined when the
// year-ago value is undefined or zero.
func Evolution(cur, yearAgo Value) Value {
	if !cur.Valid || !yearAgo.Valid || yearAgo.Float64 == 0 {
		return Undefined()
	}
	return Defined((cur.Float64 - yearAgo.Float64) / yearAgo.Float64)
}
