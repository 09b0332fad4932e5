package matching

import (
	"context"
	"sort"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/utils"
	"github.com/Denyusha/Food-Donation-updated/pkg/donation"
)

const (
	maxMatches      = 10
	defaultPickupKm = 10.0
)

type (
	MatchingService interface {
		GetMatches(ctx context.Context, req domain.GetMatchesRequest) ([]*domain.RankedDonation, error)
		GetAvailablePickups(ctx context.Context, req domain.GetAvailablePickupsRequest) ([]*domain.PickupCandidate, error)
	}

	matchingService struct {
		donationRepository donation.DonationRepository
		now                func() time.Time
	}
)

func NewMatchingService(donationRepository donation.DonationRepository) MatchingService {
	return &matchingService{
		donationRepository: donationRepository,
		now:                time.Now,
	}
}

// GetMatches ranks open donations for a receiver at the given location and
// returns the top ten by score. Ties keep the repository's recency order.
func (s *matchingService) GetMatches(ctx context.Context, req domain.GetMatchesRequest) ([]*domain.RankedDonation, error) {
	now := s.now()
	donations, err := s.donationRepository.GetOpenDonations(ctx, now)
	if err != nil {
		return nil, err
	}

	ranked := make([]*domain.RankedDonation, 0, len(donations))
	for _, d := range donations {
		distance := utils.HaversineKm(req.Latitude, req.Longitude, d.Latitude, d.Longitude)
		ranked = append(ranked, &domain.RankedDonation{
			Donation:   donation.ToDomain(d),
			DistanceKm: utils.RoundTo2(distance),
			MatchScore: utils.RoundTo2(Score(d, distance, now)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	if len(ranked) > maxMatches {
		ranked = ranked[:maxMatches]
	}

	return ranked, nil
}

// GetAvailablePickups lists unassigned donations within the volunteer's
// radius, nearest first. The radius defaults to ten kilometers.
func (s *matchingService) GetAvailablePickups(ctx context.Context, req domain.GetAvailablePickupsRequest) ([]*domain.PickupCandidate, error) {
	maxDistance := req.MaxDistance
	if maxDistance <= 0 {
		maxDistance = defaultPickupKm
	}

	donations, err := s.donationRepository.GetUnassignedDonations(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.PickupCandidate, 0, len(donations))
	for _, d := range donations {
		distance := utils.HaversineKm(req.Latitude, req.Longitude, d.Latitude, d.Longitude)
		if distance > maxDistance {
			continue
		}
		candidates = append(candidates, &domain.PickupCandidate{
			Donation:   donation.ToDomain(d),
			DistanceKm: utils.RoundTo2(distance),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	return candidates, nil
}
