// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Ratio is a derived metric that may be undefined.
//
// A Ratio is undefined (Valid == false) whenever its denominator was zero or
// one of its inputs was itself undefined. Undefined ratios marshal to JSON null
// and render as "N/A".
type Ratio struct {
	Value float64
	Valid bool
}

// Defined wraps a finite value. NaN and infinities produce an undefined Ratio.
func Defined(v float64) Ratio {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{}
	}
	return Ratio{Value: v, Valid: true}
}

// Undefined returns the undefined Ratio.
func Undefined() Ratio {
	return Ratio{}
}

// Divide returns num/den, or an undefined Ratio when den is zero.
func Divide(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Defined(num / den)
}

// DivideRatios divides two optional values. The result is undefined when either
// side is undefined or the denominator is zero.
func DivideRatios(num, den Ratio) Ratio {
	if !num.Valid || !den.Valid {
		return Ratio{}
	}
	return Divide(num.Value, den.Value)
}

// Float64 returns the value and whether it is defined.
func (r Ratio) Float64() (float64, bool) {
	return r.Value, r.Valid
}

// String renders the ratio with two decimals, or "N/A" when undefined.
func (r Ratio) String() string {
	if !r.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, r.Value, 'g', -1, 64), nil
}

// UnmarshalJSON accepts null or a JSON number.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ratio{}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid ratio %q: %w", data, err)
	}
	*r = Defined(v)
	return nil
}

// CompareDesc orders two ratios for descending top-N lists: defined values
// before undefined ones, larger values first. It returns a negative number when
// a sorts before b, positive when after, and zero when they tie.
func CompareDesc(a, b Ratio) int {
	switch {
	case a.Valid && !b.Valid:
		return -1
	case !a.Valid && b.Valid:
		return 1
	case !a.Valid && !b.Valid:
		return 0
	case a.Value > b.Value:
		return -1
	case a.Value < b.Value:
		return 1
	default:
		return 0
	}
}
