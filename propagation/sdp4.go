package propagation

import "math"

// secularDeepSpace advances the mean elements by tsince minutes for the
// deep-space branch, including lunar/solar secular drift, geopotential
// resonance and the lunar/solar periodic corrections.
func (p *Propagator) secularDeepSpace(tsince float64) (meanState, error) {
	el := p.el
	d := p.deep

	xmdf := el.MeanAnomaly + p.xmdot*tsince
	tsq := tsince * tsince
	templ := p.t2cof * tsq
	xll := xmdf + p.xnodp*templ
	omgadf := el.ArgOfPerigee + p.omgdot*tsince
	xnoddf := el.RightAscension + p.xnodot*tsince
	xnode := xnoddf + p.xnodcf*tsq
	tempa := 1.0 - p.c1*tsince
	tempe := el.BStar * p.c4 * tsince
	xn := p.xnodp

	// Lunar/solar secular drift.
	xll += d.ssl * tsince
	omgadf += d.ssg * tsince
	xnode += d.ssh * tsince
	em := el.Eccentricity + d.sse*tsince
	xinc := el.Inclination + d.ssi*tsince
	if xinc < 0 {
		xinc = -xinc
		xnode += math.Pi
		omgadf -= math.Pi
	}

	if d.resonance {
		xnRes, xlRes := d.integrateResonance(tsince, p.omgdot)
		xn = xnRes
		temp := -xnode + d.thgr + tsince*thdt
		if d.synchronous {
			xll = xlRes - omgadf + temp
		} else {
			xll = xlRes + temp + temp
		}
	}

	a := math.Pow(p.grav.XKE/xn, 2.0/3.0) * tempa * tempa
	em -= tempe
	if em <= -0.001 {
		return meanState{}, &PropagationError{
			Kind:    KindMeanEccentricityOutOfRange,
			Minutes: tsince,
			Value:   em,
		}
	}
	em = clampEccentricity(em)

	em, xinc, omgadf, xnode, xll = d.periodics(tsince, em, xinc, omgadf, xnode, xll)
	if em <= -0.001 {
		return meanState{}, &PropagationError{
			Kind:    KindPerturbedEccentricityOutOfRange,
			Minutes: tsince,
			Value:   em,
		}
	}
	em = clampEccentricity(em)

	xl := xll + omgadf + xnode
	return meanState{a: a, e: em, incl: xinc, node: xnode, argp: omgadf, xl: xl}, nil
}
