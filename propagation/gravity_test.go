package propagation

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// TestDerivedGravityConstants checks the constants derived from the WGS72
// primitives against their published values.
func TestDerivedGravityConstants(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"xke", WGS72.XKE, 0.0743669161},
		{"ck2", WGS72.CK2, 5.413080e-4},
		{"ck4", WGS72.CK4, 0.62098875e-6},
		{"s", WGS72.S, 1.0122292801892716},
		{"qoms2t", WGS72.QOMS2T, 1.8802791590152709e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !scalar.EqualWithinAbsOrRel(tt.got, tt.want, 1e-12, 1e-8) {
				t.Errorf("WGS72 %s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestGravityModelNames(t *testing.T) {
	if WGS72.Name != "WGS-72" {
		t.Errorf("WGS72.Name = %q", WGS72.Name)
	}
	if WGS84.Name != "WGS-84" {
		t.Errorf("WGS84.Name = %q", WGS84.Name)
	}
}
