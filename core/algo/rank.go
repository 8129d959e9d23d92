package algo

import (
	"math"
	"sort"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// RankBySeverity sorts results by distance from the reference median, largest
// first, and returns the top 'limit' results. If limit is greater than the
// number of results, all results are returned in sorted order.
func RankBySeverity(results []schema.GrowthResult, limit int) []schema.GrowthResult {
	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].ZScore) > math.Abs(results[j].ZScore)
	})
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
