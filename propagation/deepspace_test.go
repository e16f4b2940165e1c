package propagation

import (
	"math"
	"testing"
	"time"

	"github.com/star/orbitgo/tle"
)

// molniyaElements is the SPACETRACK Report #3 deep-space test satellite:
// a 12-hour highly eccentric orbit perturbed by the moon and sun.
func molniyaElements() tle.ElementSet {
	const deg2rad = math.Pi / 180.0
	return tle.ElementSet{
		CatalogNumber:  11801,
		Epoch:          time.Date(1980, 8, 17, 7, 6, 40, 0, time.UTC),
		EpochJulian:    2444468.79629788,
		BStar:          0.014311,
		Inclination:    46.7916 * deg2rad,
		RightAscension: 230.4354 * deg2rad,
		Eccentricity:   0.7318036,
		ArgOfPerigee:   47.4722 * deg2rad,
		MeanAnomaly:    10.4117 * deg2rad,
		MeanMotion:     2.28537848 * twoPi / minutesPerDay,
	}
}

// geoElements is a synthetic geosynchronous satellite inside the
// synchronous resonance band, inclined enough to exercise the lunar/solar
// node terms but below the Lyddane cutoff.
func geoElements() tle.ElementSet {
	const deg2rad = math.Pi / 180.0
	return tle.ElementSet{
		CatalogNumber:  90001,
		Epoch:          synthEpoch,
		EpochJulian:    synthEpochJulian,
		Inclination:    10.0 * deg2rad,
		RightAscension: 80.0 * deg2rad,
		Eccentricity:   0.0003,
		ArgOfPerigee:   120.0 * deg2rad,
		MeanAnomaly:    30.0 * deg2rad,
		MeanMotion:     1.0027 * twoPi / minutesPerDay,
	}
}

// halfDayElements is a synthetic Molniya-class satellite inside the 12-hour
// resonance band.
func halfDayElements() tle.ElementSet {
	const deg2rad = math.Pi / 180.0
	return tle.ElementSet{
		CatalogNumber:  90002,
		Epoch:          synthEpoch,
		EpochJulian:    synthEpochJulian,
		Inclination:    63.4 * deg2rad,
		RightAscension: 40.0 * deg2rad,
		Eccentricity:   0.7,
		ArgOfPerigee:   270.0 * deg2rad,
		MeanAnomaly:    10.0 * deg2rad,
		MeanMotion:     2.0056 * twoPi / minutesPerDay,
	}
}

// TestDeepSpaceEccentric propagates the eccentric deep-space test satellite
// across several revolutions and checks the state stays inside the orbit's
// geometric bounds.
func TestDeepSpaceEccentric(t *testing.T) {
	p, err := NewPropagator(molniyaElements(), WGS72)
	if err != nil {
		t.Fatalf("NewPropagator failed: %v", err)
	}
	if p.Method() != DeepSpace {
		t.Fatalf("Method() = %v, want DeepSpace", p.Method())
	}

	for _, tsince := range []float64{0, 180, 360, 720, 1440, 2880, -720} {
		state, err := p.Propagate(tsince)
		if err != nil {
			t.Fatalf("Propagate(%v) failed: %v", tsince, err)
		}

		// Perigee is near 6530 km, apogee near 42200 km.
		r := radius(state)
		if r < 6400 || r > 43500 {
			t.Errorf("t=%v: radius = %.1f km outside orbit bounds", tsince, r)
		}
		v := speed(state)
		if v < 0.5 || v > 11.0 {
			t.Errorf("t=%v: speed = %.3f km/s outside orbit bounds", tsince, v)
		}
	}
}

// TestSynchronousResonance verifies a geosynchronous orbit takes the
// synchronous resonance path and stays near its nominal radius.
func TestSynchronousResonance(t *testing.T) {
	p, err := NewPropagator(geoElements(), WGS72)
	if err != nil {
		t.Fatalf("NewPropagator failed: %v", err)
	}
	if p.Method() != DeepSpace {
		t.Fatalf("Method() = %v, want DeepSpace", p.Method())
	}
	if !p.deep.resonance || !p.deep.synchronous {
		t.Fatalf("resonance=%v synchronous=%v, want both true",
			p.deep.resonance, p.deep.synchronous)
	}

	for _, tsince := range []float64{0, 360, 720, 1440, 4320, 14400} {
		state, err := p.Propagate(tsince)
		if err != nil {
			t.Fatalf("Propagate(%v) failed: %v", tsince, err)
		}
		r := radius(state)
		if r < 41500 || r > 42900 {
			t.Errorf("t=%v: radius = %.1f km, want ~42160 km", tsince, r)
		}
		v := speed(state)
		if v < 2.5 || v > 3.6 {
			t.Errorf("t=%v: speed = %.3f km/s, want ~3.07 km/s", tsince, v)
		}
	}
}

// TestHalfDayResonance verifies an eccentric 12-hour orbit takes the
// half-day resonance path.
func TestHalfDayResonance(t *testing.T) {
	p, err := NewPropagator(halfDayElements(), WGS72)
	if err != nil {
		t.Fatalf("NewPropagator failed: %v", err)
	}
	if !p.deep.resonance || p.deep.synchronous {
		t.Fatalf("resonance=%v synchronous=%v, want resonance without synchronous",
			p.deep.resonance, p.deep.synchronous)
	}

	for _, tsince := range []float64{0, 360, 718, 1440, 2160} {
		state, err := p.Propagate(tsince)
		if err != nil {
			t.Fatalf("Propagate(%v) failed: %v", tsince, err)
		}
		r := radius(state)
		if r < 6400 || r > 48000 {
			t.Errorf("t=%v: radius = %.1f km outside orbit bounds", tsince, r)
		}
	}
}

// TestDeepSpaceDeterministic verifies deep-space propagation carries no
// state between calls, including across the resonance integrator.
func TestDeepSpaceDeterministic(t *testing.T) {
	p, err := NewPropagator(geoElements(), WGS72)
	if err != nil {
		t.Fatalf("NewPropagator failed: %v", err)
	}

	first, err := p.Propagate(5000)
	if err != nil {
		t.Fatalf("Propagate failed: %v", err)
	}
	// Intermediate calls at other offsets must not disturb the next result.
	for _, tsince := range []float64{-1440, 100, 9999} {
		if _, err := p.Propagate(tsince); err != nil {
			t.Fatalf("Propagate(%v) failed: %v", tsince, err)
		}
	}
	second, err := p.Propagate(5000)
	if err != nil {
		t.Fatalf("Propagate failed: %v", err)
	}

	if first != second {
		t.Errorf("repeated Propagate(5000) differs: %+v vs %+v", first, second)
	}
}

// TestNonResonantDeepSpace verifies an orbit outside both resonance bands
// skips the resonance integrator.
func TestNonResonantDeepSpace(t *testing.T) {
	p, err := NewPropagator(molniyaElements(), WGS72)
	if err != nil {
		t.Fatalf("NewPropagator failed: %v", err)
	}
	// 2.285 rev/day falls outside the half-day band.
	if p.deep.resonance {
		t.Error("resonance = true, want false for a 2.285 rev/day orbit")
	}
}
