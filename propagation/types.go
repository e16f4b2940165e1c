package propagation

import "math"

const (
	twoPi         = 2 * math.Pi
	minutesPerDay = 1440.0
)

// Method selects which perturbation branch a propagator runs.
type Method int

const (
	// NearEarth is the SGP4 branch, used for orbital periods under
	// 225 minutes.
	NearEarth Method = iota
	// DeepSpace is the SDP4 branch, which adds lunar/solar and resonance
	// perturbations for periods of 225 minutes and above.
	DeepSpace
)

func (m Method) String() string {
	switch m {
	case NearEarth:
		return "near-earth"
	case DeepSpace:
		return "deep-space"
	default:
		return "unknown"
	}
}

// StateVector is a satellite state in the True Equator Mean Equinox (TEME)
// frame of the propagation epoch. Position is km, velocity km/s.
type StateVector struct {
	Position [3]float64
	Velocity [3]float64
}

// meanState carries the secularly and periodically updated mean elements a
// branch hands to the shared Kepler/short-periodics pipeline.
type meanState struct {
	a    float64 // semi-major axis, earth radii
	e    float64 // eccentricity
	incl float64 // inclination, rad
	node float64 // right ascension of ascending node, rad
	argp float64 // argument of perigee, rad
	xl   float64 // mean longitude (M + argp + node), rad
}

// clampEccentricity keeps a drag-decayed eccentricity inside the open
// interval the periodics and Kepler solver require.
func clampEccentricity(e float64) float64 {
	if e < 1.0e-6 {
		return 1.0e-6
	}
	if e > 1.0-1.0e-6 {
		return 1.0 - 1.0e-6
	}
	return e
}

func mod2Pi(x float64) float64 {
	x = math.Mod(x, twoPi)
	if x < 0 {
		x += twoPi
	}
	return x
}
