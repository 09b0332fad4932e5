package matching

import (
	"testing"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/stretchr/testify/assert"
)

func TestScore_AllComponentsMaxed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := &entities.Donation{
		Freshness:       domain.FreshnessFreshlyCooked,
		Quantity:        100,
		FoodHealthScore: 10,
		ExpiryTime:      now.Add(1 * time.Hour),
	}

	// 40 distance + 30 freshness + 20 quantity + 10 health + 10 urgency
	assert.Equal(t, 110.0, Score(d, 0, now))
}

func TestScore_DistanceBeyondTenKmScoresZero(t *testing.T) {
	now := time.Now()
	d := &entities.Donation{
		Freshness:       domain.FreshnessOther,
		Quantity:        5,
		FoodHealthScore: 0,
		ExpiryTime:      now.Add(24 * time.Hour),
	}

	// 0 distance + 10 freshness + 1 quantity + 0 health, no urgency
	assert.Equal(t, 11.0, Score(d, 15, now))
}

func TestScore_QuantityCappedAtTwenty(t *testing.T) {
	now := time.Now()
	d := &entities.Donation{
		Freshness:       domain.FreshnessStored12Hrs,
		Quantity:        1000,
		FoodHealthScore: 5,
		ExpiryTime:      now.Add(24 * time.Hour),
	}

	// 40 + 15 + 20 (capped) + 5
	assert.Equal(t, 80.0, Score(d, 0, now))
}

func TestScore_UrgencyBonusWithinTwoHours(t *testing.T) {
	now := time.Now()
	base := &entities.Donation{
		Freshness:       domain.FreshnessFreshlyCooked,
		Quantity:        10,
		FoodHealthScore: 10,
	}

	soon := *base
	soon.ExpiryTime = now.Add(90 * time.Minute)
	later := *base
	later.ExpiryTime = now.Add(3 * time.Hour)

	assert.Equal(t, Score(&later, 5, now)+10, Score(&soon, 5, now))
}

func TestFreshnessWeight_UnknownFallsBackToOther(t *testing.T) {
	assert.Equal(t, 10.0, FreshnessWeight("mystery"))
	assert.Equal(t, 30.0, FreshnessWeight(domain.FreshnessFreshlyCooked))
}
