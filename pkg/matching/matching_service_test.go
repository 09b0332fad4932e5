package matching

import (
	"context"
	"testing"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/Denyusha/Food-Donation-updated/pkg/donation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDonationRepo struct {
	donation.DonationRepository
	open       []*entities.Donation
	unassigned []*entities.Donation
}

func (f *fakeDonationRepo) GetOpenDonations(ctx context.Context, now time.Time) ([]*entities.Donation, error) {
	return f.open, nil
}

func (f *fakeDonationRepo) GetUnassignedDonations(ctx context.Context) ([]*entities.Donation, error) {
	return f.unassigned, nil
}

func openDonation(lat, lng float64, quantity int) *entities.Donation {
	return &entities.Donation{
		ID:              uuid.New(),
		DonorID:         uuid.New(),
		Latitude:        lat,
		Longitude:       lng,
		Quantity:        quantity,
		FoodHealthScore: 10,
		Freshness:       domain.FreshnessFreshlyCooked,
		Status:          domain.StatusPending,
		ExpiryTime:      time.Now().Add(6 * time.Hour),
	}
}

func TestGetMatches_RanksByScoreDescending(t *testing.T) {
	near := openDonation(-6.2000, 106.8000, 100)
	far := openDonation(-6.9175, 107.6191, 100)

	repo := &fakeDonationRepo{open: []*entities.Donation{far, near}}
	svc := NewMatchingService(repo)

	matches, err := svc.GetMatches(context.Background(), domain.GetMatchesRequest{
		Latitude:  -6.2000,
		Longitude: 106.8000,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, near.ID.String(), matches[0].Donation.ID)
	assert.Equal(t, far.ID.String(), matches[1].Donation.ID)
	assert.Greater(t, matches[0].MatchScore, matches[1].MatchScore)
	assert.Equal(t, 0.0, matches[0].DistanceKm)
}

func TestGetMatches_CapsAtTen(t *testing.T) {
	var open []*entities.Donation
	for i := 0; i < 15; i++ {
		open = append(open, openDonation(-6.2, 106.8, 10+i))
	}

	svc := NewMatchingService(&fakeDonationRepo{open: open})

	matches, err := svc.GetMatches(context.Background(), domain.GetMatchesRequest{
		Latitude:  -6.2,
		Longitude: 106.8,
	})
	require.NoError(t, err)
	assert.Len(t, matches, 10)
}

func TestGetAvailablePickups_FiltersByDistanceAndSortsNearestFirst(t *testing.T) {
	near := openDonation(-6.2010, 106.8010, 20)
	mid := openDonation(-6.2500, 106.8500, 20)
	far := openDonation(-6.9175, 107.6191, 20)

	repo := &fakeDonationRepo{unassigned: []*entities.Donation{mid, far, near}}
	svc := NewMatchingService(repo)

	pickups, err := svc.GetAvailablePickups(context.Background(), domain.GetAvailablePickupsRequest{
		Latitude:  -6.2000,
		Longitude: 106.8000,
	})
	require.NoError(t, err)

	// The far donation is well beyond the default 10 km radius.
	require.Len(t, pickups, 2)
	assert.Equal(t, near.ID.String(), pickups[0].Donation.ID)
	assert.Equal(t, mid.ID.String(), pickups[1].Donation.ID)
	assert.Less(t, pickups[0].DistanceKm, pickups[1].DistanceKm)
}

func TestGetAvailablePickups_CustomRadius(t *testing.T) {
	near := openDonation(-6.2010, 106.8010, 20)
	mid := openDonation(-6.2500, 106.8500, 20)

	repo := &fakeDonationRepo{unassigned: []*entities.Donation{near, mid}}
	svc := NewMatchingService(repo)

	pickups, err := svc.GetAvailablePickups(context.Background(), domain.GetAvailablePickupsRequest{
		Latitude:    -6.2000,
		Longitude:   106.8000,
		MaxDistance: 1,
	})
	require.NoError(t, err)

	require.Len(t, pickups, 1)
	assert.Equal(t, near.ID.String(), pickups[0].Donation.ID)
}
