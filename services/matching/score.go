package matching

import (
	"sort"
	"strings"

	"keazy/models"
)

// Ranking weights. The values are empirically tuned for compatibility with
// the historical ranking and are kept in one place so they can be adjusted
// without touching the scoring logic.
const (
	verifiedBonus       = 20.0
	unverifiedBaseline  = 10.0
	ratingWeight        = 5.0
	experienceCap       = 20
	availableNowBonus   = 10.0
	responseTimeCapMin  = 60
	responseTimeDivisor = 6.0
	areaMatchBonus      = 5.0
	geoProximityCeiling = 15.0 // km; zero credit beyond this
)

// score computes the additive ranking score for one provider. requestArea is
// the requester's area hint; geo reports whether distances are present.
func score(p *models.Provider, requestArea string, geo bool) float64 {
	s := unverifiedBaseline
	if p.Verified {
		s = verifiedBonus
	}

	s += p.Rating * ratingWeight

	jobs := p.JobsCompleted30d
	if jobs > experienceCap {
		jobs = experienceCap
	}
	s += float64(jobs)

	if p.AvailableNow {
		s += availableNowBonus
	}

	rt := p.ResponseTimeMin
	if rt > responseTimeCapMin {
		rt = responseTimeCapMin
	}
	s -= float64(rt) / responseTimeDivisor

	if requestArea != "" && strings.EqualFold(requestArea, p.Location.Area) {
		s += areaMatchBonus
	}

	if geo {
		if km := p.DistanceKm(); km != nil && *km < geoProximityCeiling {
			s += geoProximityCeiling - *km
		}
	}

	return s
}

// rank sorts providers by descending score (stable, so equal scores keep
// store order) and truncates to limit.
func rank(providers []models.Provider, requestArea string, geo bool, limit int) []models.Provider {
	type scored struct {
		provider models.Provider
		score    float64
	}
	entries := make([]scored, len(providers))
	for i := range providers {
		entries[i] = scored{provider: providers[i], score: score(&providers[i], requestArea, geo)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	ranked := make([]models.Provider, len(entries))
	for i, e := range entries {
		ranked[i] = e.provider
	}
	return ranked
}
