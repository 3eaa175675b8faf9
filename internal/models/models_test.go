// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package models

import (
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestDivide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		num, den  float64
		wantValid bool
		want      float64
	}{
		{"simple", 10, 4, true, 2.5},
		{"zero denominator", 10, 0, false, 0},
		{"zero over zero", 0, 0, false, 0},
		{"negative", -99, 100, true, -0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Divide(tt.num, tt.den)
			if got.Valid != tt.wantValid {
				t.Fatalf("Divide(%v, %v).Valid = %v, want %v", tt.num, tt.den, got.Valid, tt.wantValid)
			}
			if got.Valid && math.Abs(got.Value-tt.want) > 1e-12 {
				t.Errorf("Divide(%v, %v) = %v, want %v", tt.num, tt.den, got.Value, tt.want)
			}
		})
	}
}

func TestDefined_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if r := Defined(v); r.Valid {
			t.Errorf("Defined(%v) should be undefined", v)
		}
	}
}

func TestDivideRatios(t *testing.T) {
	t.Parallel()

	if r := DivideRatios(Defined(6), Defined(3)); !r.Valid || r.Value != 2 {
		t.Errorf("DivideRatios(6, 3) = %+v, want 2", r)
	}
	if r := DivideRatios(Undefined(), Defined(3)); r.Valid {
		t.Error("undefined numerator should give undefined result")
	}
	if r := DivideRatios(Defined(6), Undefined()); r.Valid {
		t.Error("undefined denominator should give undefined result")
	}
	if r := DivideRatios(Defined(6), Defined(0)); r.Valid {
		t.Error("zero denominator should give undefined result")
	}
}

func TestRatio_JSON(t *testing.T) {
	t.Parallel()

	row := SweepRow{WindowDays: 7, Genre: "Sci-Fi", LTVToCAC: Undefined()}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"ltv_to_cac":null`) {
		t.Errorf("undefined ratio should marshal as null, got %s", data)
	}

	row.LTVToCAC = Defined(0.5)
	data, err = json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"ltv_to_cac":0.5`) {
		t.Errorf("defined ratio should marshal as number, got %s", data)
	}

	var decoded SweepRow
	if err := json.Unmarshal([]byte(`{"window_days":3,"genre":"Comedy","ltv_to_cac":null}`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.LTVToCAC.Valid {
		t.Error("null should decode to an undefined ratio")
	}
	if err := json.Unmarshal([]byte(`{"ltv_to_cac":1.25}`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.LTVToCAC.Valid || decoded.LTVToCAC.Value != 1.25 {
		t.Errorf("decoded ratio = %+v, want 1.25", decoded.LTVToCAC)
	}
}

func TestRatio_String(t *testing.T) {
	t.Parallel()

	if got := Undefined().String(); got != "N/A" {
		t.Errorf("Undefined().String() = %q, want N/A", got)
	}
	if got := Defined(-0.99).String(); got != "-0.99" {
		t.Errorf("Defined(-0.99).String() = %q", got)
	}
}

func TestCompareDesc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Ratio
		want int
	}{
		{"larger first", Defined(2), Defined(1), -1},
		{"smaller after", Defined(1), Defined(2), 1},
		{"equal", Defined(1), Defined(1), 0},
		{"defined before undefined", Defined(-5), Undefined(), -1},
		{"undefined after defined", Undefined(), Defined(-5), 1},
		{"both undefined", Undefined(), Undefined(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CompareDesc(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareDesc() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCloneLedger_Independent(t *testing.T) {
	t.Parallel()

	in := []UserRecord{{ID: "U1", AttributedContentID: "S1"}}
	out := CloneLedger(in)
	out[0].AttributedContentID = "S2"
	if in[0].AttributedContentID != "S1" {
		t.Error("CloneLedger must not alias the input")
	}
	if CloneLedger(nil) != nil {
		t.Error("CloneLedger(nil) should be nil")
	}
	if in[0].IsOrganic() {
		t.Error("attributed user reported as organic")
	}
}
