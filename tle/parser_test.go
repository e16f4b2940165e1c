package tle

import (
	"errors"
	"math"
	"testing"
	"time"
)

// Real element sets used across the test suite.
const (
	cbersLine1 = "1 28057U 03049A   06177.78615833  .00000060  00000-0  35940-4 0  1836"
	cbersLine2 = "2 28057  98.4283 247.6961 0000884  88.1964 271.9322 14.35478080140550"

	cosmosLine1 = "1 28350U 04020A   06167.21788666  .16154492  76267-5  18678-3 0  8894"
	cosmosLine2 = "2 28350  64.9977 345.6130 0024870 260.7578  99.9590 16.47856722116490"

	// Canonical SGP4 validation case with a blank international designator.
	str3Line1 = "1 88888U          80275.98708465  .00073094  13844-3  66816-4 0    87"
	str3Line2 = "2 88888  72.8435 115.9689 0086731  52.6988 110.5714 16.05824518  1058"
)

func TestParseFields(t *testing.T) {
	el, err := Parse(cbersLine1, cbersLine2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if el.CatalogNumber != 28057 {
		t.Errorf("CatalogNumber = %d, want 28057", el.CatalogNumber)
	}
	if el.Classification != 'U' {
		t.Errorf("Classification = %c, want U", el.Classification)
	}
	if el.IntlDesignator != "03049A" {
		t.Errorf("IntlDesignator = %q, want %q", el.IntlDesignator, "03049A")
	}
	if el.ElementNumber != 183 {
		t.Errorf("ElementNumber = %d, want 183", el.ElementNumber)
	}
	if el.RevolutionNumber != 14055 {
		t.Errorf("RevolutionNumber = %d, want 14055", el.RevolutionNumber)
	}

	checks := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"inclination (deg)", el.InclinationDegrees(), 98.4283, 1e-9},
		{"right ascension (deg)", el.RightAscensionDegrees(), 247.6961, 1e-9},
		{"eccentricity", el.Eccentricity, 0.0000884, 1e-12},
		{"argument of perigee (deg)", el.ArgOfPerigeeDegrees(), 88.1964, 1e-9},
		{"mean anomaly (deg)", el.MeanAnomalyDegrees(), 271.9322, 1e-9},
		{"mean motion (rev/day)", el.MeanMotionRevsPerDay(), 14.35478080, 1e-9},
		{"ndot field", el.MeanMotionDot, 0.00000060, 1e-15},
		{"bstar", el.BStar, 0.35940e-4, 1e-15},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > c.tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestParseEpoch(t *testing.T) {
	el, err := Parse(cbersLine1, cbersLine2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Epoch 06177.78615833 = 2006, day 177.78615833 = June 26, 18:52:04 UTC.
	want := time.Date(2006, 6, 26, 18, 52, 4, 0, time.UTC)
	if d := el.Epoch.Sub(want); d < -time.Second || d > time.Second {
		t.Errorf("Epoch = %v, want %v (+-1s)", el.Epoch, want)
	}

	if math.Abs(el.EpochJulian-2453913.28615833) > 1e-6 {
		t.Errorf("EpochJulian = %.8f, want 2453913.28615833", el.EpochJulian)
	}

	// Pre-2000 pivot: 80xxx maps to 1980.
	el, err = Parse(str3Line1, str3Line2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if el.Epoch.Year() != 1980 {
		t.Errorf("epoch year = %d, want 1980", el.Epoch.Year())
	}
	if math.Abs(el.EpochJulian-2444514.48708465) > 1e-6 {
		t.Errorf("EpochJulian = %.8f, want 2444514.48708465", el.EpochJulian)
	}
}

func TestParseAssumedDecimal(t *testing.T) {
	// BSTAR and the second mean-motion derivative use the implied-decimal
	// exponent notation.
	el, err := Parse(cosmosLine1, cosmosLine2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if math.Abs(el.MeanMotionDDot-0.76267e-5) > 1e-15 {
		t.Errorf("MeanMotionDDot = %v, want 0.76267e-5", el.MeanMotionDDot)
	}
	if math.Abs(el.BStar-0.18678e-3) > 1e-15 {
		t.Errorf("BStar = %v, want 0.18678e-3", el.BStar)
	}

	// Blank international designator (analyst objects, old test sets).
	el, err = Parse(str3Line1, str3Line2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if el.IntlDesignator != "" {
		t.Errorf("IntlDesignator = %q, want empty", el.IntlDesignator)
	}
	if math.Abs(el.BStar-0.66816e-4) > 1e-15 {
		t.Errorf("BStar = %v, want 0.66816e-4", el.BStar)
	}
}

func TestParseStrict(t *testing.T) {
	if _, err := ParseStrict(cbersLine1, cbersLine2); err != nil {
		t.Fatalf("ParseStrict rejected a valid element set: %v", err)
	}
	if _, err := ParseStrict(str3Line1, str3Line2); err != nil {
		t.Fatalf("ParseStrict rejected the canonical validation set: %v", err)
	}

	// Corrupt one digit inside line 2; the checksum no longer matches.
	bad := []byte(cbersLine2)
	bad[30] = '9' // eccentricity digit
	_, err := ParseStrict(cbersLine1, string(bad))
	var ce *ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ChecksumError", err)
	}
	if ce.Line != 2 {
		t.Errorf("ChecksumError.Line = %d, want 2", ce.Line)
	}

	// Lenient Parse accepts the same corruption.
	if _, err := Parse(cbersLine1, string(bad)); err != nil {
		t.Errorf("Parse rejected a checksum-only corruption: %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		line1  string
		line2  string
		field  string
		line   int
		column int
	}{
		{
			name:  "short line 1",
			line1: "1 28057U 03049A",
			line2: cbersLine2,
			field: "line length", line: 1, column: 1,
		},
		{
			name:  "wrong line number",
			line1: "3" + cbersLine1[1:],
			line2: cbersLine2,
			field: "line number", line: 1, column: 1,
		},
		{
			name:  "catalog number mismatch",
			line1: cbersLine1,
			line2: cosmosLine2,
			field: "catalog number", line: 2, column: 3,
		},
		{
			name:  "garbage in mean motion",
			line1: cbersLine1,
			line2: cbersLine2[:52] + "14.35x78080" + cbersLine2[63:],
			field: "mean motion", line: 2, column: 53,
		},
		{
			name:  "garbage in epoch",
			line1: cbersLine1[:20] + "1x7.78615833" + cbersLine1[32:],
			line2: cbersLine2,
			field: "epoch day", line: 1, column: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line1, tt.line2)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Field != tt.field || pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("got line=%d field=%q column=%d, want line=%d field=%q column=%d",
					pe.Line, pe.Field, pe.Column, tt.line, tt.field, tt.column)
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	// Minus signs count 1, letters and spaces count 0.
	lines := []string{cbersLine1, cbersLine2, cosmosLine1, cosmosLine2, str3Line1, str3Line2}
	for _, line := range lines {
		want := int(line[68] - '0')
		if got := checksum(line); got != want {
			t.Errorf("checksum(%q) = %d, want %d", line, got, want)
		}
	}
}
