package types

import "fmt"

// Record is one simultaneous sample from the three sensor channels.
// A zero in any field marks a sensor glitch; such records are never emitted.
type Record struct {
	C1 int64
	C2 int64
	C3 int64
}

// Channel returns the value of the given channel, 0-based.
func (r Record) Channel(i int) int64 {
	switch i {
	case 0:
		return r.C1
	case 1:
		return r.C2
	case 2:
		return r.C3
	default:
		return 0
	}
}

// Valid reports whether the record passes the glitch rule.
func (r Record) Valid() bool {
	return r.C1 != 0 && r.C2 != 0 && r.C3 != 0
}

// String renders the record in the at-rest text format (without newline).
func (r Record) String() string {
	return fmt.Sprintf("%d,%d,%d", r.C1, r.C2, r.C3)
}

// ChannelCount is the number of concurrent measurement streams in a Record.
const ChannelCount = 3

// RateEstimate summarises instantaneous rates in beats (or breaths) per minute.
// The zero value is the defined "no estimate" result.
type RateEstimate struct {
	Average float64 `json:"average" parquet:"average"`
	Minimum float64 `json:"minimum" parquet:"minimum"`
	Maximum float64 `json:"maximum" parquet:"maximum"`
}

// IsZero reports whether the estimate is the "no estimate" value.
func (e RateEstimate) IsZero() bool {
	return e.Average == 0 && e.Minimum == 0 && e.Maximum == 0
}
