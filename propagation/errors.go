package propagation

import "fmt"

// ErrorKind identifies the condition that ended a propagation. The values
// double as metric labels, so they are stable strings rather than iota
// constants.
type ErrorKind string

const (
	// KindMeanEccentricityOutOfRange: the secular drag update drove the
	// mean eccentricity below the model's valid range. The satellite has
	// effectively decayed by the requested time.
	KindMeanEccentricityOutOfRange ErrorKind = "mean_eccentricity_out_of_range"

	// KindPerturbedEccentricityOutOfRange: the long-period periodic terms
	// produced a perturbed eccentricity vector of magnitude >= 1.
	KindPerturbedEccentricityOutOfRange ErrorKind = "perturbed_eccentricity_out_of_range"

	// KindSemiLatusRectumNegative: the perturbed orbit's semi-latus rectum
	// went negative; the elements left the theory's domain.
	KindSemiLatusRectumNegative ErrorKind = "semi_latus_rectum_negative"

	// KindKeplerNotConverged: the bounded Newton iteration for the
	// eccentric anomaly failed to converge.
	KindKeplerNotConverged ErrorKind = "kepler_not_converged"

	// KindSatelliteDecayed: the corrected radius dropped below one Earth
	// radius.
	KindSatelliteDecayed ErrorKind = "satellite_decayed"
)

// PropagationError reports that the model left its domain of validity at the
// requested offset. Batch callers are expected to skip the satellite and
// continue.
type PropagationError struct {
	Kind    ErrorKind
	Minutes float64 // offset from epoch at which the condition was hit
	Value   float64 // the offending quantity
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("propagation failed at %.2f min from epoch: %s (value %.6e)",
		e.Minutes, e.Kind, e.Value)
}

// InvalidElementsError reports an element set that cannot initialize a
// propagator.
type InvalidElementsError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidElementsError) Error() string {
	return fmt.Sprintf("invalid elements: %s = %v: %s", e.Field, e.Value, e.Reason)
}
