package propagation

import (
	"math"
	"time"

	"github.com/star/orbitgo/tle"
)

// Orbital periods of 225 minutes and above take the deep-space branch.
// Fixed by the reference theory; validation vectors only reproduce at this
// exact cutoff.
const deepSpacePeriodMin = 225.0

// Perigee heights below this switch the near-earth branch to the truncated
// drag model. Fixed by the reference theory, like the period cutoff.
const simpleModelPerigeeKm = 220.0

// Propagator holds the propagation constants derived once from an element
// set. It is immutable after NewPropagator returns and safe for concurrent
// use; every Propagate call works on its own stack.
type Propagator struct {
	el     tle.ElementSet
	grav   GravityModel
	method Method

	// Brouwer mean motion (rad/min) and semi-major axis (earth radii)
	// recovered from the Kozai values in the element set.
	xnodp float64
	aodp  float64

	perigeeKm float64
	simple    bool // truncated drag model (perigee < 220 km)

	// Trigonometry of the epoch inclination and derived inclination
	// functions, shared by both branches.
	cosio, sinio           float64
	theta2                 float64
	x3thm1, x1mth2, x7thm1 float64
	eosq, betao, betao2    float64

	// Secular rates and drag coefficients.
	xmdot, omgdot, xnodot float64
	xnodcf                float64
	c1, c4, c5            float64
	t2cof                 float64
	d2, d3, d4            float64
	t3cof, t4cof, t5cof   float64

	// Long-period periodic coefficients.
	xlcof, aycof float64

	// Near-earth drag resonance terms.
	eta, omgcof, xmcof float64
	delmo, sinmo       float64

	deep *deepSpace // nil for the near-earth branch
}

// NewPropagator validates the element set and derives the propagation
// constants for it, selecting the near-earth or deep-space branch by
// orbital period.
func NewPropagator(el tle.ElementSet, grav GravityModel) (*Propagator, error) {
	if err := validateElements(el); err != nil {
		return nil, err
	}

	p := &Propagator{el: el, grav: grav}

	// Recover the Brouwer mean motion and semi-major axis from the Kozai
	// mean motion in the element set.
	a1 := math.Pow(grav.XKE/el.MeanMotion, 2.0/3.0)
	p.cosio = math.Cos(el.Inclination)
	p.sinio = math.Sin(el.Inclination)
	p.theta2 = p.cosio * p.cosio
	p.x3thm1 = 3.0*p.theta2 - 1.0
	p.x1mth2 = 1.0 - p.theta2
	p.x7thm1 = 7.0*p.theta2 - 1.0

	p.eosq = el.Eccentricity * el.Eccentricity
	p.betao2 = 1.0 - p.eosq
	p.betao = math.Sqrt(p.betao2)

	del := 1.5 * grav.CK2 * p.x3thm1 / (p.betao * p.betao2)
	del1 := del / (a1 * a1)
	a0 := a1 * (1.0 - del1*(1.0/3.0+del1*(1.0+del1*134.0/81.0)))
	del0 := del / (a0 * a0)
	p.xnodp = el.MeanMotion / (1.0 + del0)
	p.aodp = a0 / (1.0 - del0)

	if twoPi/p.xnodp >= deepSpacePeriodMin {
		p.method = DeepSpace
	} else {
		p.method = NearEarth
	}

	p.perigeeKm = (p.aodp*(1.0-el.Eccentricity) - 1.0) * grav.RadiusKm
	if p.perigeeKm < 0 {
		return nil, &InvalidElementsError{Field: "perigee height", Value: p.perigeeKm,
			Reason: "orbit is sub-orbital at epoch"}
	}
	p.simple = p.method == NearEarth && p.perigeeKm < simpleModelPerigeeKm

	// For perigee below 156 km, the values of s and (q0-s)^4 are altered.
	s4 := grav.S
	qoms24 := grav.QOMS2T
	if p.perigeeKm < 156.0 {
		s4 = p.perigeeKm - 78.0
		if p.perigeeKm < 98.0 {
			s4 = 20.0
		}
		qoms24 = math.Pow((120.0-s4)/grav.RadiusKm, 4.0)
		s4 = s4/grav.RadiusKm + 1.0
	}

	pinvsq := 1.0 / (p.aodp * p.aodp * p.betao2 * p.betao2)
	tsi := 1.0 / (p.aodp - s4)
	p.eta = p.aodp * el.Eccentricity * tsi
	etasq := p.eta * p.eta
	eeta := el.Eccentricity * p.eta
	psisq := math.Abs(1.0 - etasq)
	coef := qoms24 * math.Pow(tsi, 4.0)
	coef1 := coef / math.Pow(psisq, 3.5)

	c2 := coef1 * p.xnodp * (p.aodp*(1.0+1.5*etasq+eeta*(4.0+etasq)) +
		0.75*grav.CK2*tsi/psisq*p.x3thm1*(8.0+3.0*etasq*(8.0+etasq)))
	p.c1 = el.BStar * c2

	p.c4 = 2.0 * p.xnodp * coef1 * p.aodp * p.betao2 *
		(p.eta*(2.0+0.5*etasq) + el.Eccentricity*(0.5+2.0*etasq) -
			2.0*grav.CK2*tsi/(p.aodp*psisq)*
				(-3.0*p.x3thm1*(1.0-2.0*eeta+etasq*(1.5-0.5*eeta))+
					0.75*p.x1mth2*(2.0*etasq-eeta*(1.0+etasq))*math.Cos(2.0*el.ArgOfPerigee)))

	theta4 := p.theta2 * p.theta2
	temp1 := 3.0 * grav.CK2 * pinvsq * p.xnodp
	temp2 := temp1 * grav.CK2 * pinvsq
	temp3 := 1.25 * grav.CK4 * pinvsq * pinvsq * p.xnodp

	p.xmdot = p.xnodp + 0.5*temp1*p.betao*p.x3thm1 +
		0.0625*temp2*p.betao*(13.0-78.0*p.theta2+137.0*theta4)

	x1m5th := 1.0 - 5.0*p.theta2
	p.omgdot = -0.5*temp1*x1m5th +
		0.0625*temp2*(7.0-114.0*p.theta2+395.0*theta4) +
		temp3*(3.0-36.0*p.theta2+49.0*theta4)

	xhdot1 := -temp1 * p.cosio
	p.xnodot = xhdot1 + (0.5*temp2*(4.0-19.0*p.theta2)+
		2.0*temp3*(3.0-7.0*p.theta2))*p.cosio

	p.xnodcf = 3.5 * p.betao2 * xhdot1 * p.c1
	p.t2cof = 1.5 * p.c1

	// Long-period coefficients use the epoch inclination. The divisor goes
	// to zero for exactly retrograde equatorial orbits; pin it as the
	// reference formulation does.
	if math.Abs(p.cosio+1.0) > 1.5e-12 {
		p.xlcof = 0.125 * grav.A3OVK2 * p.sinio * (3.0 + 5.0*p.cosio) / (1.0 + p.cosio)
	} else {
		p.xlcof = 0.125 * grav.A3OVK2 * p.sinio * (3.0 + 5.0*p.cosio) / 1.5e-12
	}
	p.aycof = 0.25 * grav.A3OVK2 * p.sinio

	if p.method == DeepSpace {
		p.deep = newDeepSpace(p)
		return p, nil
	}

	// Near-earth drag series.
	var c3 float64
	if el.Eccentricity > 1.0e-4 {
		c3 = coef * tsi * grav.A3OVK2 * p.xnodp * p.sinio / el.Eccentricity
	}
	p.c5 = 2.0 * coef1 * p.aodp * p.betao2 * (1.0 + 2.75*(etasq+eeta) + eeta*etasq)
	p.omgcof = el.BStar * c3 * math.Cos(el.ArgOfPerigee)
	if el.Eccentricity > 1.0e-4 {
		p.xmcof = -2.0 / 3.0 * coef * el.BStar / eeta
	}
	p.delmo = math.Pow(1.0+p.eta*math.Cos(el.MeanAnomaly), 3.0)
	p.sinmo = math.Sin(el.MeanAnomaly)

	if !p.simple {
		c1sq := p.c1 * p.c1
		p.d2 = 4.0 * p.aodp * tsi * c1sq
		dtemp := p.d2 * tsi * p.c1 / 3.0
		p.d3 = (17.0*p.aodp + s4) * dtemp
		p.d4 = 0.5 * dtemp * p.aodp * tsi * (221.0*p.aodp + 31.0*s4) * p.c1
		p.t3cof = p.d2 + 2.0*c1sq
		p.t4cof = 0.25 * (3.0*p.d3 + p.c1*(12.0*p.d2+10.0*c1sq))
		p.t5cof = 0.2 * (3.0*p.d4 + 12.0*p.c1*p.d3 + 6.0*p.d2*p.d2 +
			15.0*c1sq*(2.0*p.d2+c1sq))
	}

	return p, nil
}

func validateElements(el tle.ElementSet) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"eccentricity", el.Eccentricity},
		{"inclination", el.Inclination},
		{"mean motion", el.MeanMotion},
		{"right ascension", el.RightAscension},
		{"argument of perigee", el.ArgOfPerigee},
		{"mean anomaly", el.MeanAnomaly},
		{"bstar", el.BStar},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidElementsError{Field: f.name, Value: f.value, Reason: "not finite"}
		}
	}

	if el.Eccentricity < 0 || el.Eccentricity >= 1 {
		return &InvalidElementsError{Field: "eccentricity", Value: el.Eccentricity,
			Reason: "must be in [0, 1)"}
	}
	if el.MeanMotion <= 0 {
		return &InvalidElementsError{Field: "mean motion", Value: el.MeanMotion,
			Reason: "must be positive"}
	}
	if el.Inclination < 0 || el.Inclination > math.Pi {
		return &InvalidElementsError{Field: "inclination", Value: el.Inclination,
			Reason: "must be in [0, pi] radians"}
	}
	return nil
}

// Method reports which perturbation branch this propagator runs.
func (p *Propagator) Method() Method { return p.method }

// Elements returns the element set the propagator was built from.
func (p *Propagator) Elements() tle.ElementSet { return p.el }

// Epoch returns the element set epoch.
func (p *Propagator) Epoch() time.Time { return p.el.Epoch }

// CatalogNumber returns the satellite catalog number from the element set.
func (p *Propagator) CatalogNumber() int { return p.el.CatalogNumber }

// SemiMajorAxisKm returns the recovered semi-major axis in km.
func (p *Propagator) SemiMajorAxisKm() float64 { return p.aodp * p.grav.RadiusKm }

// PeriodMinutes returns the orbital period from the recovered mean motion.
func (p *Propagator) PeriodMinutes() float64 { return twoPi / p.xnodp }

// MeanMotionRevsPerDay returns the recovered (Brouwer) mean motion in
// revolutions per day.
func (p *Propagator) MeanMotionRevsPerDay() float64 { return p.xnodp * minutesPerDay / twoPi }

// PerigeeKm returns the perigee height above the model's Earth radius in km.
func (p *Propagator) PerigeeKm() float64 { return p.perigeeKm }
