package propagation

import "math"

// GravityModel is the immutable table of geophysical constants the
// propagation theory is evaluated against. A model is copied into each
// propagator at construction and never mutated afterward, so the package
// level models can be shared freely across goroutines.
//
// Distances inside the theory are expressed in Earth radii and times in
// minutes; the derived fields below are precomputed in those units.
type GravityModel struct {
	Name     string
	RadiusKm float64 // equatorial radius, km
	Mu       float64 // gravitational parameter, km^3/s^2
	J2       float64
	J3       float64
	J4       float64

	// Derived, in internal units.
	XKE    float64 // sqrt(mu), (earth radii)^1.5 / min
	CK2    float64 // J2 / 2
	CK4    float64 // -3 J4 / 8
	S      float64 // density function altitude parameter, earth radii
	QOMS2T float64 // ((120 - 78) km / radius)^4
	A3OVK2 float64 // -J3 / CK2
}

func newGravityModel(name string, radiusKm, mu, j2, j3, j4 float64) GravityModel {
	g := GravityModel{
		Name:     name,
		RadiusKm: radiusKm,
		Mu:       mu,
		J2:       j2,
		J3:       j3,
		J4:       j4,
	}
	g.XKE = 60.0 / math.Sqrt(radiusKm*radiusKm*radiusKm/mu)
	g.CK2 = 0.5 * j2
	g.CK4 = -0.375 * j4
	g.S = 1.0 + 78.0/radiusKm
	g.QOMS2T = math.Pow((120.0-78.0)/radiusKm, 4)
	g.A3OVK2 = -j3 / g.CK2
	return g
}

// WGS72 is the default gravity model. All published SGP4 validation vectors
// assume it; use it unless interoperating with a system that fixed WGS-84.
var WGS72 = newGravityModel("WGS-72", 6378.135, 398600.8,
	0.001082616, -0.00000253881, -0.00000165597)

// WGS84 carries the EGM-96 associated constants.
var WGS84 = newGravityModel("WGS-84", 6378.137, 398600.5,
	0.00108262998905, -0.00000253215306, -0.00000161098761)
