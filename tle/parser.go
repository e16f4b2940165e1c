package tle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const lineLength = 69

// Parse parses a two-line element set into normalized mean elements.
// Checksum digits are not verified: several widely used historical element
// sets predate the current checksum convention. Use ParseStrict when the
// source is expected to carry valid checksums.
func Parse(line1, line2 string) (ElementSet, error) {
	return parse(line1, line2, false)
}

// ParseStrict is Parse plus verification of the modulo-10 checksum in
// column 69 of each line.
func ParseStrict(line1, line2 string) (ElementSet, error) {
	return parse(line1, line2, true)
}

func parse(line1, line2 string, verifyChecksum bool) (ElementSet, error) {
	line1 = strings.TrimRight(line1, "\r\n")
	line2 = strings.TrimRight(line2, "\r\n")

	if len(line1) != lineLength {
		return ElementSet{}, &ParseError{Line: 1, Field: "line length", Column: 1,
			Cause: fmt.Errorf("got %d characters, want %d", len(line1), lineLength)}
	}
	if len(line2) != lineLength {
		return ElementSet{}, &ParseError{Line: 2, Field: "line length", Column: 1,
			Cause: fmt.Errorf("got %d characters, want %d", len(line2), lineLength)}
	}
	if !strings.HasPrefix(line1, "1 ") {
		return ElementSet{}, &ParseError{Line: 1, Field: "line number", Column: 1,
			Cause: fmt.Errorf("line must start with %q", "1 ")}
	}
	if !strings.HasPrefix(line2, "2 ") {
		return ElementSet{}, &ParseError{Line: 2, Field: "line number", Column: 1,
			Cause: fmt.Errorf("line must start with %q", "2 ")}
	}

	if verifyChecksum {
		for lineNo, line := range []string{line1, line2} {
			want := int(line[68] - '0')
			if want < 0 || want > 9 {
				return ElementSet{}, &ParseError{Line: lineNo + 1, Field: "checksum", Column: 69,
					Cause: fmt.Errorf("column 69 is %q, want a digit", line[68])}
			}
			if got := checksum(line); got != want {
				return ElementSet{}, &ChecksumError{Line: lineNo + 1, Want: want, Got: got}
			}
		}
	}

	el := ElementSet{
		Line1:          line1,
		Line2:          line2,
		Classification: line1[7],
		IntlDesignator: strings.TrimSpace(line1[9:17]),
	}

	catNum1, err := parseIntField(line1, 1, "catalog number", 3, 7)
	if err != nil {
		return ElementSet{}, err
	}
	catNum2, err := parseIntField(line2, 2, "catalog number", 3, 7)
	if err != nil {
		return ElementSet{}, err
	}
	if catNum1 != catNum2 {
		return ElementSet{}, &ParseError{Line: 2, Field: "catalog number", Column: 3,
			Cause: fmt.Errorf("line 1 has %d, line 2 has %d", catNum1, catNum2)}
	}
	el.CatalogNumber = catNum1

	el.Epoch, el.EpochJulian, err = parseEpoch(line1)
	if err != nil {
		return ElementSet{}, err
	}

	if el.MeanMotionDot, err = parseFloatField(line1, 1, "mean motion derivative", 34, 43); err != nil {
		return ElementSet{}, err
	}
	if el.MeanMotionDDot, err = parseAssumedDecimal(line1, 1, "mean motion second derivative", 45, 52); err != nil {
		return ElementSet{}, err
	}
	if el.BStar, err = parseAssumedDecimal(line1, 1, "BSTAR drag term", 54, 61); err != nil {
		return ElementSet{}, err
	}
	if el.ElementNumber, err = parseIntField(line1, 1, "element number", 65, 68); err != nil {
		return ElementSet{}, err
	}

	incl, err := parseFloatField(line2, 2, "inclination", 9, 16)
	if err != nil {
		return ElementSet{}, err
	}
	raan, err := parseFloatField(line2, 2, "right ascension", 18, 25)
	if err != nil {
		return ElementSet{}, err
	}
	argp, err := parseFloatField(line2, 2, "argument of perigee", 35, 42)
	if err != nil {
		return ElementSet{}, err
	}
	ma, err := parseFloatField(line2, 2, "mean anomaly", 44, 51)
	if err != nil {
		return ElementSet{}, err
	}
	mm, err := parseFloatField(line2, 2, "mean motion", 53, 63)
	if err != nil {
		return ElementSet{}, err
	}
	if el.RevolutionNumber, err = parseIntField(line2, 2, "revolution number", 64, 68); err != nil {
		return ElementSet{}, err
	}

	// Eccentricity is printed without its leading "0." (columns 27-33).
	eccStr := strings.TrimSpace(line2[26:33])
	ecc, err := strconv.ParseFloat("0."+eccStr, 64)
	if err != nil {
		return ElementSet{}, &ParseError{Line: 2, Field: "eccentricity", Column: 27, Cause: err}
	}

	el.Inclination = incl * deg2rad
	el.RightAscension = raan * deg2rad
	el.Eccentricity = ecc
	el.ArgOfPerigee = argp * deg2rad
	el.MeanAnomaly = ma * deg2rad
	el.MeanMotion = mm * twoPi / minutesPerDay

	return el, nil
}

// checksum computes the modulo-10 checksum of columns 1-68: digits count
// their value, minus signs count 1, everything else counts 0.
func checksum(line string) int {
	sum := 0
	for _, c := range line[:68] {
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// parseEpoch parses the line 1 epoch field (columns 19-32, YYDDD.DDDDDDDD).
// Two-digit years 57-99 map to the 1900s, 00-56 to the 2000s.
// Returns both the UTC time and the Julian date of the epoch.
func parseEpoch(line1 string) (time.Time, float64, error) {
	year2, err := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	if err != nil {
		return time.Time{}, 0, &ParseError{Line: 1, Field: "epoch year", Column: 19, Cause: err}
	}
	dayOfYear, err := strconv.ParseFloat(strings.TrimSpace(line1[20:32]), 64)
	if err != nil {
		return time.Time{}, 0, &ParseError{Line: 1, Field: "epoch day", Column: 21, Cause: err}
	}
	if dayOfYear < 1 || dayOfYear >= 367 {
		return time.Time{}, 0, &ParseError{Line: 1, Field: "epoch day", Column: 21,
			Cause: fmt.Errorf("day of year %v out of range", dayOfYear)}
	}

	year := year2 + 2000
	if year2 >= 57 {
		year = year2 + 1900
	}

	// Day 1.0 is January 1, 00:00 UTC.
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration((dayOfYear - 1) * float64(24*time.Hour)))

	return t, julianDateOfYear(year) + dayOfYear, nil
}

// julianDateOfYear returns the Julian date of day 0.0 of the given year.
// Meeus, Astronomical Formulae for Calculators, pp. 23-25.
func julianDateOfYear(year int) float64 {
	prev := int64(year - 1)
	a := prev / 100
	b := 2 - a + a/4
	days := int64(math.Floor(365.25*float64(prev))) + 428
	return float64(days+b) + 1720994.5
}

func parseIntField(line string, lineNo int, field string, colLo, colHi int) (int, error) {
	s := strings.TrimSpace(line[colLo-1 : colHi])
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Line: lineNo, Field: field, Column: colLo, Cause: err}
	}
	return v, nil
}

func parseFloatField(line string, lineNo int, field string, colLo, colHi int) (float64, error) {
	s := strings.TrimSpace(line[colLo-1 : colHi])
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Line: lineNo, Field: field, Column: colLo, Cause: err}
	}
	return v, nil
}

// parseAssumedDecimal parses a field in the TLE exponent notation where the
// decimal point and base-10 marker are implied: " 66816-4" means 0.66816e-4.
func parseAssumedDecimal(line string, lineNo int, field string, colLo, colHi int) (float64, error) {
	s := strings.TrimSpace(line[colLo-1 : colHi])
	if s == "" {
		return 0, nil
	}

	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1.0
		s = s[1:]
	case '+':
		s = s[1:]
	}

	// The exponent is the trailing sign+digit pair, when present.
	mantissa := s
	exponent := 0
	if i := strings.LastIndexAny(s, "+-"); i > 0 {
		e, err := strconv.Atoi(s[i:])
		if err != nil {
			return 0, &ParseError{Line: lineNo, Field: field, Column: colLo, Cause: err}
		}
		exponent = e
		mantissa = s[:i]
	}

	m, err := strconv.ParseFloat("0."+mantissa, 64)
	if err != nil {
		return 0, &ParseError{Line: lineNo, Field: field, Column: colLo, Cause: err}
	}
	return sign * m * math.Pow(10, float64(exponent)), nil
}
