package algo

import (
	"fmt"
	"math"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// Abramowitz and Stegun 7.1.26 coefficients for erf.
const (
	asA1 = 0.254829592
	asA2 = -0.284496736
	asA3 = 1.421413741
	asA4 = -1.453152027
	asA5 = 1.061405429
	asP  = 0.3275911
)

// fixedZ holds the standard normal quantiles of the chart percentiles.
var fixedZ = map[int]float64{
	3:  -1.8807936081512509,
	10: -1.2815515655446004,
	25: -0.6744897501960817,
	50: 0,
	75: 0.6744897501960817,
	90: 1.2815515655446004,
	97: 1.8807936081512509,
}

// ZScore applies the LMS transform to a measurement.
func ZScore(measurement, l, m, s float64) (float64, error) {
	if measurement <= 0 || m <= 0 || s <= 0 {
		return 0, fmt.Errorf("%w: measurement, M and S must be positive (got %v, %v, %v)",
			schema.ErrInvalidInput, measurement, m, s)
	}
	if l != 0 {
		return (math.Pow(measurement/m, l) - 1) / (l * s), nil
	}
	return math.Log(measurement/m) / s, nil
}

// ZScoreAt is ZScore with the parameters taken from a table point.
func ZScoreAt(measurement float64, p schema.LMSPoint) (float64, error) {
	return ZScore(measurement, p.L, p.M, p.S)
}

// PercentileFromZ converts a Z-score to a percentile in [0, 100].
func PercentileFromZ(z float64) float64 {
	sign := 1.0
	if z < 0 {
		sign = -1.0
	}
	x := math.Abs(z) / math.Sqrt2

	t := 1.0 / (1.0 + asP*x)
	y := 1.0 - (((((asA5*t+asA4)*t)+asA3)*t+asA2)*t+asA1)*t*math.Exp(-x*x)
	result := 0.5 * (1 + sign*y)

	return math.Max(0, math.Min(1, result)) * 100
}

// ZForPercentile returns the Z-score of a chart percentile. Percentiles outside
// the supported set resolve to the nearest supported one.
func ZForPercentile(percentile int) float64 {
	if z, ok := fixedZ[percentile]; ok {
		return z
	}
	nearest := 50
	for _, p := range schema.StandardPercentiles {
		if absInt(p-percentile) < absInt(nearest-percentile) {
			nearest = p
		}
	}
	return fixedZ[nearest]
}

// MeasurementForZ inverts the LMS transform, returning the measurement that
// sits at z for the given parameters.
func MeasurementForZ(z, l, m, s float64) (float64, error) {
	if m <= 0 || s <= 0 {
		return 0, fmt.Errorf("%w: M and S must be positive (got %v, %v)", schema.ErrInvalidInput, m, s)
	}
	if l == 0 {
		return m * math.Exp(s*z), nil
	}
	base := 1 + l*s*z
	if base <= 0 {
		return 0, fmt.Errorf("%w: z=%v is outside the LMS domain for L=%v S=%v", schema.ErrInvalidInput, z, l, s)
	}
	return m * math.Pow(base, 1/l), nil
}

// MeasurementForZAt is MeasurementForZ with the parameters taken from a table point.
func MeasurementForZAt(z float64, p schema.LMSPoint) (float64, error) {
	return MeasurementForZ(z, p.L, p.M, p.S)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
