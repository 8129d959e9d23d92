package algo

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// Interpolate resolves (L, M, S) at x from a reference table.
//
// An exact match on X returns the stored point unmodified. Queries outside the
// table clamp to the nearest endpoint rather than extrapolating. Inside the table
// L, M and S are interpolated linearly and independently, and the result carries
// X set to the query. The table is never mutated.
func Interpolate(x float64, table schema.LMSTable) (schema.LMSPoint, error) {
	if len(table) == 0 {
		return schema.LMSPoint{}, schema.ErrEmptyTable
	}
	if x < 0 {
		return schema.LMSPoint{}, fmt.Errorf("%w: %v", schema.ErrNegativeQuery, x)
	}

	for _, p := range table {
		if p.X == x {
			return p, nil
		}
	}

	sorted := table
	if !slices.IsSortedFunc(table, byX) {
		sorted = slices.SortedStableFunc(slices.Values(table), byX)
	}

	first, last := sorted[0], sorted[len(sorted)-1]
	if x < first.X {
		return first, nil
	}
	if x > last.X {
		return last, nil
	}

	for i := 0; i < len(sorted)-1; i++ {
		lower, upper := sorted[i], sorted[i+1]
		if lower.X <= x && x <= upper.X {
			dx := upper.X - lower.X
			if dx == 0 {
				return lower, nil
			}
			ratio := (x - lower.X) / dx
			return schema.LMSPoint{
				X: x,
				L: lower.L + (upper.L-lower.L)*ratio,
				M: lower.M + (upper.M-lower.M)*ratio,
				S: lower.S + (upper.S-lower.S)*ratio,
			}, nil
		}
	}

	// Only reachable with NaN queries.
	return schema.LMSPoint{}, fmt.Errorf("%w: cannot place %v in table", schema.ErrInvalidInput, x)
}

func byX(a, b schema.LMSPoint) int {
	return cmp.Compare(a.X, b.X)
}
