package domain

import (
	"strconv"
	"time"
)

// NA is the canonical marker for a missing, unparseable or out-of-range value.
const NA = "NA"

// DateLayout is the layout used for every date written to a cleaned file
const DateLayout = "2006-01-02"

// NullDate is a calendar date that may be absent
type NullDate struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid NullDate truncated to the day
func NewDate(t time.Time) NullDate {
	return NullDate{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), Valid: true}
}

// String returns the ISO date or NA
func (d NullDate) String() string {
	if !d.Valid {
		return NA
	}
	return d.Time.Format(DateLayout)
}

// NullFloat is a float that may be absent
type NullFloat struct {
	Value float64
	Valid bool
}

// FloatOf returns a valid NullFloat
func FloatOf(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Format renders the shortest decimal representation, or missing when invalid
func (f NullFloat) Format(missing string) string {
	if !f.Valid {
		return missing
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// NullInt is an integer that may be absent
type NullInt struct {
	Value int
	Valid bool
}

// IntOf returns a valid NullInt
func IntOf(v int) NullInt {
	return NullInt{Value: v, Valid: true}
}

// Format renders the integer, or missing when invalid
func (i NullInt) Format(missing string) string {
	if !i.Valid {
		return missing
	}
	return strconv.Itoa(i.Value)
}

// NullBool is a boolean that may be absent
type NullBool struct {
	Value bool
	Valid bool
}

// Format renders true/false, or NA when invalid
func (b NullBool) Format() string {
	if !b.Valid {
		return NA
	}
	return strconv.FormatBool(b.Value)
}
