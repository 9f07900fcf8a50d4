// Package dateutil handles the DD-MM-YYYY calendar dates used for
// login-streak tracking and outfit suggestions, plus the one-decimal
// rounding applied to clothing measurements.
package dateutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

var (
	// ErrInvalidFormat indicates the string does not match DD-MM-YYYY.
	ErrInvalidFormat = errors.New("date must be in format DD-MM-YYYY")

	// ErrInvalidNumeric indicates the day/month/year fields are not integers.
	ErrInvalidNumeric = errors.New("invalid numeric values in date string")

	// ErrInvalidCalendarDate indicates a well-formed string naming a date
	// that does not exist, e.g. 30-02-2024.
	ErrInvalidCalendarDate = errors.New("invalid calendar date")
)

// Now is the wall clock used by Today. Tests swap it for a fixed clock.
var Now = time.Now

// Date is a pure calendar date with no timezone attached.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Parse accepts only the exact 10-character pattern DD-MM-YYYY with literal
// hyphens at positions 2 and 5 and validates the result against the
// proleptic Gregorian calendar.
func Parse(s string) (Date, error) {
	if len(s) != 10 || s[2] != '-' || s[5] != '-' {
		return Date{}, ErrInvalidFormat
	}

	// strconv.Atoi would accept a leading sign, so require plain digits in
	// every numeric position to keep the pattern exact.
	for _, i := range []int{0, 1, 3, 4, 6, 7, 8, 9} {
		if s[i] < '0' || s[i] > '9' {
			return Date{}, ErrInvalidNumeric
		}
	}

	day, errD := strconv.Atoi(s[0:2])
	month, errM := strconv.Atoi(s[3:5])
	year, errY := strconv.Atoi(s[6:10])
	if errD != nil || errM != nil || errY != nil {
		return Date{}, ErrInvalidNumeric
	}

	// time.Date normalizes out-of-range components, so 30-02 comes back
	// as a different day and the comparison catches it.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, ErrInvalidCalendarDate
	}

	return Date{Day: day, Month: month, Year: year}, nil
}

// Format is the inverse of Parse, always zero-padded to DD-MM-YYYY.
func Format(d Date) string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// Today returns the current local date formatted as DD-MM-YYYY.
func Today() string {
	now := Now()
	return Format(Date{Day: now.Day(), Month: int(now.Month()), Year: now.Year()})
}

// DaysBetween returns the signed day count date2 - date1, negative if date2
// precedes date1. Parse failures from either argument are propagated.
func DaysBetween(date1, date2 string) (int, error) {
	d1, err := Parse(date1)
	if err != nil {
		return 0, fmt.Errorf("failed to parse first date: %w", err)
	}
	d2, err := Parse(date2)
	if err != nil {
		return 0, fmt.Errorf("failed to parse second date: %w", err)
	}

	t1 := time.Date(d1.Year, time.Month(d1.Month), d1.Day, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(d2.Year, time.Month(d2.Month), d2.Day, 0, 0, 0, 0, time.UTC)

	// Unix seconds rather than Sub: a Duration caps at roughly 292 years,
	// which would silently truncate spans between distant 4-digit years.
	// Both instants sit on UTC midnights, so the difference is an exact
	// multiple of a day.
	return int((t2.Unix() - t1.Unix()) / 86400), nil
}

// RoundToOneDecimal rounds half away from zero at one decimal place,
// correct for negative inputs.
func RoundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
