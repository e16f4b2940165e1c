package propagation

import (
	"math"
	"time"
)

// Propagate computes the satellite state at tsince minutes relative to the
// element set epoch. Negative offsets propagate backwards. The returned
// position and velocity are in the TEME frame of epoch, km and km/s.
func (p *Propagator) Propagate(tsince float64) (StateVector, error) {
	var (
		st  meanState
		err error
	)
	if p.method == DeepSpace {
		st, err = p.secularDeepSpace(tsince)
	} else {
		st, err = p.secularNearEarth(tsince)
	}
	if err != nil {
		return StateVector{}, err
	}
	return p.complete(tsince, st)
}

// At computes the satellite state at an absolute time.
func (p *Propagator) At(t time.Time) (StateVector, error) {
	return p.Propagate(t.Sub(p.el.Epoch).Minutes())
}

// complete runs the branch-independent tail of the theory: long-period
// periodics, the Kepler equation, short-period periodics and the rotation
// to inertial coordinates.
func (p *Propagator) complete(tsince float64, st meanState) (StateVector, error) {
	xn := p.grav.XKE / math.Pow(st.a, 1.5)

	// Long period periodics.
	axn := st.e * math.Cos(st.argp)
	temp := 1.0 / (st.a * (1.0 - st.e*st.e))
	xll := temp * p.xlcof * axn
	aynl := temp * p.aycof
	xlt := st.xl + xll
	ayn := st.e*math.Sin(st.argp) + aynl

	elsq := axn*axn + ayn*ayn
	if elsq >= 1.0 {
		return StateVector{}, &PropagationError{
			Kind:    KindPerturbedEccentricityOutOfRange,
			Minutes: tsince,
			Value:   math.Sqrt(elsq),
		}
	}

	// Solve Kepler's equation for the eccentric longitude by capped
	// Newton iteration.
	capu := mod2Pi(xlt - st.node)
	epw := capu
	var sinepw, cosepw, ecose, esine, f float64
	maxStep := 1.25 * math.Sqrt(elsq)
	for i := 0; i < 10; i++ {
		sinepw = math.Sin(epw)
		cosepw = math.Cos(epw)
		ecose = axn*cosepw + ayn*sinepw
		esine = axn*sinepw - ayn*cosepw
		f = capu - epw + esine
		if math.Abs(f) < 1.0e-12 {
			break
		}
		df := 1.0 - ecose
		delta := f / df
		if i == 0 {
			if delta > maxStep {
				delta = maxStep
			} else if delta < -maxStep {
				delta = -maxStep
			}
		}
		epw += delta
	}
	if math.IsNaN(epw) || math.Abs(f) > 1.0e-6 {
		return StateVector{}, &PropagationError{
			Kind:    KindKeplerNotConverged,
			Minutes: tsince,
			Value:   f,
		}
	}

	// Short period preliminary quantities.
	temp = 1.0 - elsq
	pl := st.a * temp
	if pl < 0 {
		return StateVector{}, &PropagationError{
			Kind:    KindSemiLatusRectumNegative,
			Minutes: tsince,
			Value:   pl,
		}
	}
	r := st.a * (1.0 - ecose)
	temp1 := 1.0 / r
	rdot := p.grav.XKE * math.Sqrt(st.a) * esine * temp1
	rfdot := p.grav.XKE * math.Sqrt(pl) * temp1
	temp2 := st.a * temp1
	betal := math.Sqrt(temp)
	temp3 := 1.0 / (1.0 + betal)
	cosu := temp2 * (cosepw - axn + ayn*esine*temp3)
	sinu := temp2 * (sinepw - ayn - axn*esine*temp3)
	u := math.Atan2(sinu, cosu)
	sin2u := 2.0 * sinu * cosu
	cos2u := 2.0*cosu*cosu - 1.0

	temp = 1.0 / pl
	temp1 = p.grav.CK2 * temp
	temp2 = temp1 * temp

	// Short period periodics use the epoch inclination functions.
	rk := r*(1.0-1.5*temp2*betal*p.x3thm1) + 0.5*temp1*p.x1mth2*cos2u
	uk := u - 0.25*temp2*sin2u*p.x7thm1
	xnodek := st.node + 1.5*temp2*p.cosio*sin2u
	xinck := st.incl + 1.5*temp2*p.cosio*p.sinio*cos2u
	rdotk := rdot - xn*temp1*p.x1mth2*sin2u
	rfdotk := rfdot + xn*temp1*(p.x1mth2*cos2u+1.5*p.x3thm1)

	if rk < 1.0 {
		return StateVector{}, &PropagationError{
			Kind:    KindSatelliteDecayed,
			Minutes: tsince,
			Value:   (rk - 1.0) * p.grav.RadiusKm,
		}
	}

	// Orientation vectors and rotation to inertial coordinates.
	sinuk := math.Sin(uk)
	cosuk := math.Cos(uk)
	sinik := math.Sin(xinck)
	cosik := math.Cos(xinck)
	sinnok := math.Sin(xnodek)
	cosnok := math.Cos(xnodek)
	xmx := -sinnok * cosik
	xmy := cosnok * cosik
	ux := xmx*sinuk + cosnok*cosuk
	uy := xmy*sinuk + sinnok*cosuk
	uz := sinik * sinuk
	vx := xmx*cosuk - cosnok*sinuk
	vy := xmy*cosuk - sinnok*sinuk
	vz := sinik * cosuk

	// Scale to km and km/s.
	kmPerER := p.grav.RadiusKm
	velScale := kmPerER / 60.0
	return StateVector{
		Position: [3]float64{rk * ux * kmPerER, rk * uy * kmPerER, rk * uz * kmPerER},
		Velocity: [3]float64{
			(rdotk*ux + rfdotk*vx) * velScale,
			(rdotk*uy + rfdotk*vy) * velScale,
			(rdotk*uz + rfdotk*vz) * velScale,
		},
	}, nil
}
