// Package ranker orders points of interest by great-circle distance to a query point.
// Everything here is pure: no I/O, no shared state, safe for concurrent callers.
package ranker

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/UnknownOlympus/kiez/internal/models"
)

// Ranking is the outcome of a single Rank call.
type Ranking struct {
	Results  []models.RankedResult // Nearest candidates, closest first.
	Excluded int                   // Candidates skipped for a missing or invalid coordinate.
}

// Rank returns the k candidates nearest to query, sorted ascending by distance rounded to
// two decimals. Candidates at equal rounded distance keep their input order. Candidates
// without a usable coordinate are skipped and counted in Ranking.Excluded.
//
// The candidates slice is only read, so a shared snapshot may be passed in directly.
func Rank(query models.GeoPoint, candidates []models.Candidate, k int) (Ranking, error) {
	if k <= 0 {
		return Ranking{}, &Error{Kind: InvalidArgumentKind, Msg: fmt.Sprintf("k must be positive, got %d", k)}
	}
	if !query.Valid() {
		return Ranking{}, &Error{Kind: InvalidQueryKind, Msg: fmt.Sprintf("coordinate %s is out of range", query)}
	}

	results := make([]models.RankedResult, 0, len(candidates))
	excluded := 0
	for _, candidate := range candidates {
		if !candidate.Locatable() {
			excluded++
			continue
		}
		results = append(results, models.RankedResult{
			Candidate:  candidate,
			DistanceKm: Round2(Haversine(query, *candidate.Location)),
		})
	}

	slices.SortStableFunc(results, func(a, b models.RankedResult) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	if len(results) > k {
		results = slices.Clip(results[:k])
	}

	return Ranking{Results: results, Excluded: excluded}, nil
}
