package matching

import (
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
)

var freshnessWeights = map[string]float64{
	domain.FreshnessFreshlyCooked: 30,
	domain.FreshnessStored4Hrs:    25,
	domain.FreshnessStored8Hrs:    20,
	domain.FreshnessStored12Hrs:   15,
	domain.FreshnessOther:         10,
}

// FreshnessWeight returns the scoring weight for a freshness level. Unknown
// levels fall back to the "other" weight.
func FreshnessWeight(freshness string) float64 {
	if w, ok := freshnessWeights[freshness]; ok {
		return w
	}
	return freshnessWeights[domain.FreshnessOther]
}

// Score computes the match score for a donation at the given distance from
// the requester. Components: distance (0-40, zero beyond 10 km), freshness
// (10-30), quantity (0-20), health score (0-10), plus a flat urgency bonus
// of 10 when the donation expires within two hours. The total is not
// clamped.
func Score(d *entities.Donation, distanceKm float64, now time.Time) float64 {
	score := 0.0

	distanceScore := 40 * (1 - distanceKm/10)
	if distanceScore < 0 {
		distanceScore = 0
	}
	score += distanceScore

	score += FreshnessWeight(d.Freshness)

	quantityScore := float64(d.Quantity) / 5
	if quantityScore > 20 {
		quantityScore = 20
	}
	score += quantityScore

	score += (float64(d.FoodHealthScore) / 10) * 10

	if d.ExpiryTime.Sub(now).Hours() < 2 {
		score += 10
	}

	return score
}
