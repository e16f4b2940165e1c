package propagation

import "math"

// Lunar/solar perturbation and geopotential resonance constants of the
// deep-space theory.
const (
	zns    = 1.19459e-5
	zes    = 1.675e-2
	znl    = 1.5835218e-4
	zel    = 5.490e-2
	c1ss   = 2.9864797e-6
	c1l    = 4.7968065e-7
	zcosgs = 1.945905e-1
	zsings = -9.8088458e-1
	zcosis = 9.1744867e-1
	zsinis = 3.9785416e-1
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9
	thdt   = 4.3752691e-3 // Earth rotation rate, rad/min
	q22    = 1.7891679e-6
	q31    = 2.1460748e-6
	q33    = 2.2123015e-7
	g22    = 5.7686396
	g32    = 9.5240898e-1
	g44    = 1.8014998
	g52    = 1.0508330
	g54    = 4.4108898
	fasx2  = 0.13130908
	fasx4  = 2.8843198
	fasx6  = 0.37448087
	stepp  = 720.0    // resonance integrator step, minutes
	step2  = 259200.0 // stepp^2 / 2
)

// deepSpace holds the constants of the deep-space branch derived once at
// initialization. Like the rest of Propagator it is immutable afterward;
// the resonance integration runs from the epoch on every call instead of
// keeping integrator state between calls.
type deepSpace struct {
	thgr   float64 // sidereal time at epoch, rad
	xnq    float64 // recovered mean motion, rad/min
	xqncl  float64 // epoch inclination, rad
	omegaq float64 // epoch argument of perigee, rad
	xmao   float64 // epoch mean anomaly, rad
	eq     float64 // epoch eccentricity
	zmol   float64 // lunar mean anomaly at epoch, rad
	zmos   float64 // solar mean anomaly at epoch, rad

	sinio, cosio float64

	// Combined lunar and solar secular rates.
	sse, ssi, ssl, ssg, ssh float64

	// Solar periodic coefficients.
	se2, si2, sl2, sgh2, sh2 float64
	se3, si3, sl3, sgh3, sh3 float64
	sl4, sgh4                float64

	// Lunar periodic coefficients.
	ee2, e3, xi2, xi3          float64
	xl2, xl3, xl4              float64
	xgh2, xgh3, xgh4, xh2, xh3 float64

	resonance   bool
	synchronous bool

	// Half-day resonance coefficients.
	d2201, d2211, d3210, d3222 float64
	d4410, d4422, d5220, d5232 float64
	d5421, d5433               float64

	// Synchronous resonance coefficients.
	del1, del2, del3 float64

	xlamo, xfact float64
}

// perturberTerms holds the secular contributions and periodic coefficients
// of one perturbing body (sun or moon).
type perturberTerms struct {
	se, si, sl, sgh, sh   float64
	e2, e3, i2, i3        float64
	l2, l3, l4            float64
	gh2, gh3, gh4, h2, h3 float64
}

func newDeepSpace(p *Propagator) *deepSpace {
	el := p.el
	d := &deepSpace{
		xnq:    p.xnodp,
		xqncl:  el.Inclination,
		omegaq: el.ArgOfPerigee,
		xmao:   el.MeanAnomaly,
		eq:     el.Eccentricity,
		sinio:  p.sinio,
		cosio:  p.cosio,
	}

	// Sidereal time at epoch. Astronomical Almanac 1992, page B6; days
	// measured from 1950 Jan 0.0 UT.
	ds50 := el.EpochJulian - 2433281.5
	d.thgr = mod2Pi(6.3003880987*ds50 + 1.72944494)

	aqnv := 1.0 / p.aodp
	xpidot := p.omgdot + p.xnodot
	sinq := math.Sin(el.RightAscension)
	cosq := math.Cos(el.RightAscension)

	// Lunar orbit orientation at epoch; day count from 1900 Jan 0.5.
	day := ds50 + 18261.5
	xnodce := 4.5236020 - 9.2422029e-4*day
	stem := math.Sin(xnodce)
	ctem := math.Cos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1.0 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1.0 - zsinhl*zsinhl)
	c := 4.7199672 + 0.22997150*day
	gam := 5.8351514 + 0.0019443680*day
	d.zmol = mod2Pi(c - gam)
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = math.Atan2(zx, zy)
	zx = gam + zx - xnodce
	zcosgl := math.Cos(zx)
	zsingl := math.Sin(zx)
	d.zmos = mod2Pi(6.2565837 + 0.017201977*day)

	solar := d.perturber(p, zcosgs, zsings, zcosis, zsinis, cosq, sinq, c1ss, zns, zes)
	lunar := d.perturber(p, zcosgl, zsingl, zcosil, zsinil,
		zcoshl*cosq+zsinhl*sinq, sinq*zcoshl-cosq*zsinhl, c1l, znl, zel)

	d.sse = solar.se + lunar.se
	d.ssi = solar.si + lunar.si
	d.ssl = solar.sl + lunar.sl
	d.ssh = (solar.sh + lunar.sh) / p.sinio
	d.ssg = solar.sgh + lunar.sgh - p.cosio*d.ssh

	d.se2, d.se3 = solar.e2, solar.e3
	d.si2, d.si3 = solar.i2, solar.i3
	d.sl2, d.sl3, d.sl4 = solar.l2, solar.l3, solar.l4
	d.sgh2, d.sgh3, d.sgh4 = solar.gh2, solar.gh3, solar.gh4
	d.sh2, d.sh3 = solar.h2, solar.h3

	d.ee2, d.e3 = lunar.e2, lunar.e3
	d.xi2, d.xi3 = lunar.i2, lunar.i3
	d.xl2, d.xl3, d.xl4 = lunar.l2, lunar.l3, lunar.l4
	d.xgh2, d.xgh3, d.xgh4 = lunar.gh2, lunar.gh3, lunar.gh4
	d.xh2, d.xh3 = lunar.h2, lunar.h3

	d.initResonance(p, aqnv, xpidot)
	return d
}

// perturber evaluates the secular contribution and periodic coefficients of
// one perturbing body from its orbit-plane orientation (zcosg..zsinh), its
// perturbation coefficient cc, mean motion zn and eccentricity ze.
func (d *deepSpace) perturber(p *Propagator, zcosg, zsing, zcosi, zsini, zcosh, zsinh, cc, zn, ze float64) perturberTerms {
	sing := math.Sin(p.el.ArgOfPerigee)
	cosg := math.Cos(p.el.ArgOfPerigee)

	a1 := zcosg*zcosh + zsing*zcosi*zsinh
	a3 := -zsing*zcosh + zcosg*zcosi*zsinh
	a7 := -zcosg*zsinh + zsing*zcosi*zcosh
	a8 := zsing * zsini
	a9 := zsing*zsinh + zcosg*zcosi*zcosh
	a10 := zcosg * zsini
	a2 := p.cosio*a7 + p.sinio*a8
	a4 := p.cosio*a9 + p.sinio*a10
	a5 := -p.sinio*a7 + p.cosio*a8
	a6 := -p.sinio*a9 + p.cosio*a10

	x1 := a1*cosg + a2*sing
	x2 := a3*cosg + a4*sing
	x3 := -a1*sing + a2*cosg
	x4 := -a3*sing + a4*cosg
	x5 := a5 * sing
	x6 := a6 * sing
	x7 := a5 * cosg
	x8 := a6 * cosg

	z31 := 12.0*x1*x1 - 3.0*x3*x3
	z32 := 24.0*x1*x2 - 6.0*x3*x4
	z33 := 12.0*x2*x2 - 3.0*x4*x4
	z1 := 3.0*(a1*a1+a2*a2) + z31*p.eosq
	z2 := 6.0*(a1*a3+a2*a4) + z32*p.eosq
	z3 := 3.0*(a3*a3+a4*a4) + z33*p.eosq
	z11 := -6.0*a1*a5 + p.eosq*(-24.0*x1*x7-6.0*x3*x5)
	z12 := -6.0*(a1*a6+a3*a5) + p.eosq*(-24.0*(x2*x7+x1*x8)-6.0*(x3*x6+x4*x5))
	z13 := -6.0*a3*a6 + p.eosq*(-24.0*x2*x8-6.0*x4*x6)
	z21 := 6.0*a2*a5 + p.eosq*(24.0*x1*x5-6.0*x3*x7)
	z22 := 6.0*(a4*a5+a2*a6) + p.eosq*(24.0*(x2*x5+x1*x6)-6.0*(x4*x7+x3*x8))
	z23 := 6.0*a4*a6 + p.eosq*(24.0*x2*x6-6.0*x4*x8)
	z1 = z1 + z1 + p.betao2*z31
	z2 = z2 + z2 + p.betao2*z32
	z3 = z3 + z3 + p.betao2*z33

	s3 := cc / d.xnq
	s2 := -0.5 * s3 / p.betao
	s4 := s3 * p.betao
	s1 := -15.0 * d.eq * s4
	s5 := x1*x3 + x2*x4
	s6 := x2*x3 + x1*x4
	s7 := x2*x4 - x1*x3

	t := perturberTerms{
		se:  s1 * zn * s5,
		si:  s2 * zn * (z11 + z13),
		sl:  -zn * s3 * (z1 + z3 - 14.0 - 6.0*p.eosq),
		sgh: s4 * zn * (z31 + z33 - 6.0),
		sh:  -zn * s2 * (z21 + z23),
	}
	// The node rate is meaningless for near-equatorial orbits.
	if d.xqncl < 5.2359877e-2 {
		t.sh = 0
	}

	t.e2 = 2.0 * s1 * s6
	t.e3 = 2.0 * s1 * s7
	t.i2 = 2.0 * s2 * z12
	t.i3 = 2.0 * s2 * (z13 - z11)
	t.l2 = -2.0 * s3 * z2
	t.l3 = -2.0 * s3 * (z3 - z1)
	t.l4 = -2.0 * s3 * (-21.0 - 9.0*p.eosq) * ze
	t.gh2 = 2.0 * s4 * z32
	t.gh3 = 2.0 * s4 * (z33 - z31)
	t.gh4 = -18.0 * s4 * ze
	t.h2 = -2.0 * s2 * z22
	t.h3 = -2.0 * s2 * (z23 - z21)
	return t
}

// initResonance classifies the orbit into the synchronous (24 h) or half-day
// (12 h) geopotential resonance bands and derives the integrator
// coefficients. Orbits outside both bands carry no resonance terms.
func (d *deepSpace) initResonance(p *Propagator, aqnv, xpidot float64) {
	if d.xnq > 0.0034906585 && d.xnq < 0.0052359877 {
		// Synchronous resonance.
		d.resonance = true
		d.synchronous = true

		g200 := 1.0 + p.eosq*(-2.5+0.8125*p.eosq)
		g310 := 1.0 + 2.0*p.eosq
		g300 := 1.0 + p.eosq*(-6.0+6.60937*p.eosq)
		f220 := 0.75 * (1.0 + p.cosio) * (1.0 + p.cosio)
		f311 := 0.9375*p.sinio*p.sinio*(1.0+3.0*p.cosio) - 0.75*(1.0+p.cosio)
		f330 := 1.0 + p.cosio
		f330 = 1.875 * f330 * f330 * f330
		d.del1 = 3.0 * d.xnq * d.xnq * aqnv * aqnv
		d.del2 = 2.0 * d.del1 * f220 * g200 * q22
		d.del3 = 3.0 * d.del1 * f330 * g300 * q33 * aqnv
		d.del1 = d.del1 * f311 * g310 * q31 * aqnv
		d.xlamo = d.xmao + p.el.RightAscension + p.el.ArgOfPerigee - d.thgr
		bfact := p.xmdot + xpidot - thdt
		bfact += d.ssl + d.ssg + d.ssh
		d.xfact = bfact - d.xnq
		return
	}

	if d.xnq < 0.00826 || d.xnq > 0.00924 || d.eq < 0.5 {
		return
	}

	// Half-day resonance, significant only for eccentric (Molniya-class)
	// orbits.
	d.resonance = true
	eoc := d.eq * p.eosq

	g201 := -0.306 - (d.eq-0.64)*0.440
	var g211, g310, g322, g410, g422, g520 float64
	if d.eq <= 0.65 {
		g211 = 3.616 - 13.247*d.eq + 16.290*p.eosq
		g310 = -19.302 + 117.390*d.eq - 228.419*p.eosq + 156.591*eoc
		g322 = -18.9068 + 109.7927*d.eq - 214.6334*p.eosq + 146.5816*eoc
		g410 = -41.122 + 242.694*d.eq - 471.094*p.eosq + 313.953*eoc
		g422 = -146.407 + 841.880*d.eq - 1629.014*p.eosq + 1083.435*eoc
		g520 = -532.114 + 3017.977*d.eq - 5740.0*p.eosq + 3708.276*eoc
	} else {
		g211 = -72.099 + 331.819*d.eq - 508.738*p.eosq + 266.724*eoc
		g310 = -346.844 + 1582.851*d.eq - 2415.925*p.eosq + 1246.113*eoc
		g322 = -342.585 + 1554.908*d.eq - 2366.899*p.eosq + 1215.972*eoc
		g410 = -1052.797 + 4758.686*d.eq - 7193.992*p.eosq + 3651.957*eoc
		g422 = -3581.69 + 16178.11*d.eq - 24462.77*p.eosq + 12422.52*eoc
		if d.eq <= 0.715 {
			g520 = 1464.74 - 4664.75*d.eq + 3763.64*p.eosq
		} else {
			g520 = -5149.66 + 29936.92*d.eq - 54087.36*p.eosq + 31324.56*eoc
		}
	}

	var g533, g521, g532 float64
	if d.eq < 0.7 {
		g533 = -919.2277 + 4988.61*d.eq - 9064.77*p.eosq + 5542.21*eoc
		g521 = -822.71072 + 4568.6173*d.eq - 8491.4146*p.eosq + 5337.524*eoc
		g532 = -853.666 + 4690.25*d.eq - 8624.77*p.eosq + 5341.4*eoc
	} else {
		g533 = -37995.78 + 161616.52*d.eq - 229838.2*p.eosq + 109377.94*eoc
		g521 = -51752.104 + 218913.95*d.eq - 309468.16*p.eosq + 146349.42*eoc
		g532 = -40023.88 + 170470.89*d.eq - 242699.48*p.eosq + 115605.82*eoc
	}

	sini2 := p.sinio * p.sinio
	f220 := 0.75 * (1.0 + 2.0*p.cosio + p.theta2)
	f221 := 1.5 * sini2
	f321 := 1.875 * p.sinio * (1.0 - 2.0*p.cosio - 3.0*p.theta2)
	f322 := -1.875 * p.sinio * (1.0 + 2.0*p.cosio - 3.0*p.theta2)
	f441 := 35.0 * sini2 * f220
	f442 := 39.3750 * sini2 * sini2
	f522 := 9.84375 * p.sinio * (sini2*(1.0-2.0*p.cosio-5.0*p.theta2) +
		0.33333333*(-2.0+4.0*p.cosio+6.0*p.theta2))
	f523 := p.sinio * (4.92187512*sini2*(-2.0-4.0*p.cosio+10.0*p.theta2) +
		6.56250012*(1.0+2.0*p.cosio-3.0*p.theta2))
	f542 := 29.53125 * p.sinio * (2.0 - 8.0*p.cosio +
		p.theta2*(-12.0+8.0*p.cosio+10.0*p.theta2))
	f543 := 29.53125 * p.sinio * (-2.0 - 8.0*p.cosio +
		p.theta2*(12.0+8.0*p.cosio-10.0*p.theta2))

	xno2 := d.xnq * d.xnq
	ainv2 := aqnv * aqnv
	temp1 := 3.0 * xno2 * ainv2
	temp := temp1 * root22
	d.d2201 = temp * f220 * g201
	d.d2211 = temp * f221 * g211
	temp1 *= aqnv
	temp = temp1 * root32
	d.d3210 = temp * f321 * g310
	d.d3222 = temp * f322 * g322
	temp1 *= aqnv
	temp = 2.0 * temp1 * root44
	d.d4410 = temp * f441 * g410
	d.d4422 = temp * f442 * g422
	temp1 *= aqnv
	temp = temp1 * root52
	d.d5220 = temp * f522 * g520
	d.d5232 = temp * f523 * g532
	temp = 2.0 * temp1 * root54
	d.d5421 = temp * f542 * g521
	d.d5433 = temp * f543 * g533

	d.xlamo = d.xmao + 2.0*p.el.RightAscension - 2.0*d.thgr
	bfact := p.xmdot + 2.0*p.xnodot - 2.0*thdt
	bfact += d.ssl + 2.0*d.ssh
	d.xfact = bfact - d.xnq
}

// integrateResonance integrates the resonance equations from the epoch to
// offset t in fixed 720-minute steps and returns the resonant mean motion
// and mean longitude. The integration restarts at the epoch every call, so
// the propagator carries no mutable state between calls.
func (d *deepSpace) integrateResonance(t, omgdot float64) (xn, xl float64) {
	xli := d.xlamo
	xni := d.xnq
	atime := 0.0
	delt := stepp
	if t < 0 {
		delt = -stepp
	}

	for {
		var xndot, xnddt float64
		if d.synchronous {
			xndot = d.del1*math.Sin(xli-fasx2) +
				d.del2*math.Sin(2.0*(xli-fasx4)) +
				d.del3*math.Sin(3.0*(xli-fasx6))
			xnddt = d.del1*math.Cos(xli-fasx2) +
				2.0*d.del2*math.Cos(2.0*(xli-fasx4)) +
				3.0*d.del3*math.Cos(3.0*(xli-fasx6))
		} else {
			xomi := d.omegaq + omgdot*atime
			x2omi := xomi + xomi
			x2li := xli + xli
			xndot = d.d2201*math.Sin(x2omi+xli-g22) +
				d.d2211*math.Sin(xli-g22) +
				d.d3210*math.Sin(xomi+xli-g32) +
				d.d3222*math.Sin(-xomi+xli-g32) +
				d.d4410*math.Sin(x2omi+x2li-g44) +
				d.d4422*math.Sin(x2li-g44) +
				d.d5220*math.Sin(xomi+xli-g52) +
				d.d5232*math.Sin(-xomi+xli-g52) +
				d.d5421*math.Sin(xomi+x2li-g54) +
				d.d5433*math.Sin(-xomi+x2li-g54)
			xnddt = d.d2201*math.Cos(x2omi+xli-g22) +
				d.d2211*math.Cos(xli-g22) +
				d.d3210*math.Cos(xomi+xli-g32) +
				d.d3222*math.Cos(-xomi+xli-g32) +
				d.d5220*math.Cos(xomi+xli-g52) +
				d.d5232*math.Cos(-xomi+xli-g52) +
				2.0*(d.d4410*math.Cos(x2omi+x2li-g44)+
					d.d4422*math.Cos(x2li-g44)+
					d.d5421*math.Cos(xomi+x2li-g54)+
					d.d5433*math.Cos(-xomi+x2li-g54))
		}

		xldot := xni + d.xfact
		xnddt *= xldot

		if math.Abs(t-atime) < stepp {
			ft := t - atime
			xn = xni + xndot*ft + xnddt*ft*ft*0.5
			xl = xli + xldot*ft + xndot*ft*ft*0.5
			return xn, xl
		}

		xli += xldot*delt + xndot*step2
		xni += xndot*delt + xnddt*step2
		atime += delt
	}
}

// periodics applies the lunar and solar periodic corrections at offset t,
// switching to the Lyddane alternative element update for inclinations
// under 0.2 rad.
func (d *deepSpace) periodics(t, em, xinc, omgadf, xnode, xll float64) (float64, float64, float64, float64, float64) {
	sinis := math.Sin(xinc)
	cosis := math.Cos(xinc)

	// Solar periodics.
	zm := d.zmos + zns*t
	zf := zm + 2.0*zes*math.Sin(zm)
	sinzf := math.Sin(zf)
	f2 := 0.5*sinzf*sinzf - 0.25
	f3 := -0.5 * sinzf * math.Cos(zf)
	ses := d.se2*f2 + d.se3*f3
	sis := d.si2*f2 + d.si3*f3
	sls := d.sl2*f2 + d.sl3*f3 + d.sl4*sinzf
	sghs := d.sgh2*f2 + d.sgh3*f3 + d.sgh4*sinzf
	shs := d.sh2*f2 + d.sh3*f3

	// Lunar periodics.
	zm = d.zmol + znl*t
	zf = zm + 2.0*zel*math.Sin(zm)
	sinzf = math.Sin(zf)
	f2 = 0.5*sinzf*sinzf - 0.25
	f3 = -0.5 * sinzf * math.Cos(zf)
	sel := d.ee2*f2 + d.e3*f3
	sil := d.xi2*f2 + d.xi3*f3
	sll := d.xl2*f2 + d.xl3*f3 + d.xl4*sinzf
	sghl := d.xgh2*f2 + d.xgh3*f3 + d.xgh4*sinzf
	shl := d.xh2*f2 + d.xh3*f3

	pe := ses + sel
	pinc := sis + sil
	pl := sls + sll
	pgh := sghs + sghl
	ph := shs + shl

	xinc += pinc
	em += pe

	if d.xqncl >= 0.2 {
		// Apply periodics directly.
		ph /= d.sinio
		pgh -= d.cosio * ph
		omgadf += pgh
		xnode += ph
		xll += pl
		return em, xinc, omgadf, xnode, xll
	}

	// Lyddane alternative element update for low inclinations.
	sinok := math.Sin(xnode)
	cosok := math.Cos(xnode)
	alfdp := sinis*sinok + ph*cosok + pinc*cosis*sinok
	betdp := sinis*cosok - ph*sinok + pinc*cosis*cosok
	xnode = mod2Pi(xnode)
	xls := xll + omgadf + cosis*xnode
	xls += pl + pgh - pinc*xnode*sinis
	xnoh := xnode
	xnode = math.Atan2(alfdp, betdp)

	// Keep the recomputed node on the same 2-pi branch as the input.
	if math.Abs(xnoh-xnode) > math.Pi {
		if xnode < xnoh {
			xnode += twoPi
		} else {
			xnode -= twoPi
		}
	}

	xll += pl
	omgadf = xls - xll - math.Cos(xinc)*xnode
	return em, xinc, omgadf, xnode, xll
}
