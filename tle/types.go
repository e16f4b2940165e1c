package tle

import (
	"math"
	"time"
)

const (
	deg2rad       = math.Pi / 180.0
	rad2deg       = 180.0 / math.Pi
	twoPi         = 2 * math.Pi
	minutesPerDay = 1440.0
)

// ElementSet holds one satellite's parsed two-line element set with angles
// normalized to radians and mean motion to radians per minute.
type ElementSet struct {
	CatalogNumber    int
	Classification   byte   // 'U', 'C' or 'S'
	IntlDesignator   string // launch year, number and piece, e.g. "03049A"
	ElementNumber    int
	RevolutionNumber int

	Epoch       time.Time // UTC
	EpochJulian float64   // Julian date of the epoch

	// Informational drag fields from line 1. The propagation theory only
	// consumes BStar; the mean-motion derivatives are carried for callers
	// that inspect them.
	MeanMotionDot  float64 // rev/day^2 (half the raw first derivative)
	MeanMotionDDot float64 // rev/day^3 (sixth of the raw second derivative)
	BStar          float64 // 1/earth radii

	Inclination    float64 // rad
	RightAscension float64 // rad
	Eccentricity   float64
	ArgOfPerigee   float64 // rad
	MeanAnomaly    float64 // rad
	MeanMotion     float64 // rad/min

	// Original lines, as given to Parse.
	Line1 string
	Line2 string
}

// MeanMotionRevsPerDay returns the mean motion in the units printed in the
// element set.
func (e ElementSet) MeanMotionRevsPerDay() float64 {
	return e.MeanMotion * minutesPerDay / twoPi
}

// InclinationDegrees returns the inclination in degrees.
func (e ElementSet) InclinationDegrees() float64 {
	return e.Inclination * rad2deg
}

// RightAscensionDegrees returns the right ascension of the ascending node
// in degrees.
func (e ElementSet) RightAscensionDegrees() float64 {
	return e.RightAscension * rad2deg
}

// ArgOfPerigeeDegrees returns the argument of perigee in degrees.
func (e ElementSet) ArgOfPerigeeDegrees() float64 {
	return e.ArgOfPerigee * rad2deg
}

// MeanAnomalyDegrees returns the mean anomaly in degrees.
func (e ElementSet) MeanAnomalyDegrees() float64 {
	return e.MeanAnomaly * rad2deg
}
