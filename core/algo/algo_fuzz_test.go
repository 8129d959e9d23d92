package algo

import (
	"math"
	"testing"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// FuzzInterpolate checks that interpolated parameters never leave the envelope of the table.
func FuzzInterpolate(f *testing.F) {
	f.Add(0.0)
	f.Add(1.5)
	f.Add(6.0)
	f.Add(1e9)

	f.Fuzz(func(t *testing.T, x float64) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return
		}
		p, err := Interpolate(x, testTable)
		if x < 0 {
			if err == nil {
				t.Fatalf("expected error for negative query %v", x)
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", x, err)
		}
		lo, hi := testTable[0].M, testTable[len(testTable)-1].M
		if p.M < lo || p.M > hi {
			t.Fatalf("M=%v outside [%v, %v] for x=%v", p.M, lo, hi, x)
		}
	})
}

// FuzzPercentileFromZ checks range and symmetry of the CDF approximation.
func FuzzPercentileFromZ(f *testing.F) {
	f.Add(0.0)
	f.Add(-1.88)
	f.Add(3.5)

	f.Fuzz(func(t *testing.T, z float64) {
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return
		}
		p := PercentileFromZ(z)
		if p < 0 || p > 100 {
			t.Fatalf("percentile %v out of range for z=%v", p, z)
		}
		if math.Abs(p+PercentileFromZ(-z)-100) > 0.01 {
			t.Fatalf("asymmetric percentile for z=%v", z)
		}
	})
}

// FuzzConvertHeight checks that conversions never return negative values.
func FuzzConvertHeight(f *testing.F) {
	f.Add(100.0)
	f.Add(-1.0)

	f.Fuzz(func(t *testing.T, v float64) {
		got, err := ConvertHeight(v, schema.Inches, schema.Centimeters)
		if err != nil {
			return
		}
		if got < 0 {
			t.Fatalf("negative conversion %v for %v", got, v)
		}
	})
}
