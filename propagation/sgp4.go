package propagation

import "math"

// secularNearEarth applies the secular gravity and drag updates of the
// near-earth branch at tsince minutes from epoch and returns the mean
// elements for the shared periodics/Kepler pipeline.
func (p *Propagator) secularNearEarth(tsince float64) (meanState, error) {
	el := p.el

	xmdf := el.MeanAnomaly + p.xmdot*tsince
	omgadf := el.ArgOfPerigee + p.omgdot*tsince
	xnoddf := el.RightAscension + p.xnodot*tsince

	omega := omgadf
	xmp := xmdf

	tsq := tsince * tsince
	xnode := xnoddf + p.xnodcf*tsq
	tempa := 1.0 - p.c1*tsince
	tempe := el.BStar * p.c4 * tsince
	templ := p.t2cof * tsq

	if !p.simple {
		delomg := p.omgcof * tsince
		var delm float64
		if p.eta != 0.0 {
			delm = p.xmcof * (math.Pow(1.0+p.eta*math.Cos(xmdf), 3.0) - p.delmo)
		}

		temp := delomg + delm
		xmp += temp
		omega -= temp

		tcube := tsq * tsince
		tfour := tsince * tcube
		tempa = tempa - p.d2*tsq - p.d3*tcube - p.d4*tfour
		tempe += el.BStar * p.c5 * (math.Sin(xmp) - p.sinmo)
		templ += p.t3cof*tcube + tfour*(p.t4cof+tsince*p.t5cof)
	}

	a := p.aodp * tempa * tempa
	e := el.Eccentricity - tempe
	xl := xmp + omega + xnode + p.xnodp*templ

	if e <= -0.001 {
		return meanState{}, &PropagationError{
			Kind: KindMeanEccentricityOutOfRange, Minutes: tsince, Value: e}
	}
	e = clampEccentricity(e)

	return meanState{
		a:    a,
		e:    e,
		incl: el.Inclination,
		node: xnode,
		argp: omega,
		xl:   xl,
	}, nil
}
