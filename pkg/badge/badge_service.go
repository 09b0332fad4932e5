package badge

import (
	"context"
	"time"

	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/google/uuid"
)

const (
	BadgeFirstDonation = "First Donation"
	BadgeMilestone100  = "100 Meals Milestone"
	BadgeMilestone500  = "500 Meals Milestone"
	BadgeHungerHero    = "Hunger Hero"
	BadgeZeroWasteStar = "Zero Waste Star"
)

type (
	// DonationHistory is the slice of the donation store the engine needs:
	// the donor's completed-donation count and cumulative meal quantity.
	DonationHistory interface {
		CountCompletedByDonor(ctx context.Context, donorID string) (int64, error)
		SumCompletedQuantityByDonor(ctx context.Context, donorID string) (int64, error)
	}

	BadgeStore interface {
		GetUserBadges(ctx context.Context, userID string) ([]*entities.Badge, error)
		AddBadge(ctx context.Context, badge *entities.Badge) error
	}

	BadgeService interface {
		EvaluateDonor(ctx context.Context, donorID string) ([]string, error)
	}

	badgeService struct {
		donationHistory DonationHistory
		badgeStore      BadgeStore
		now             func() time.Time
	}
)

func NewBadgeService(donationHistory DonationHistory, badgeStore BadgeStore) BadgeService {
	return &badgeService{
		donationHistory: donationHistory,
		badgeStore:      badgeStore,
		now:             time.Now,
	}
}

// EvaluateDonor re-derives the donor's milestone badges from their full
// completed-donation history and awards any that are newly earned. Awards
// are idempotent set-additions, so evaluating twice never duplicates a
// badge, and a badge once earned is never removed.
func (s *badgeService) EvaluateDonor(ctx context.Context, donorID string) ([]string, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, err
	}

	existing, err := s.badgeStore.GetUserBadges(ctx, donorID)
	if err != nil {
		return nil, err
	}
	has := make(map[string]bool, len(existing))
	for _, b := range existing {
		has[b.Name] = true
	}

	completedCount, err := s.donationHistory.CountCompletedByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	totalMeals, err := s.donationHistory.SumCompletedQuantityByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	var toAward []string

	if len(existing) == 0 && completedCount >= 1 {
		toAward = append(toAward, BadgeFirstDonation)
	}
	if totalMeals >= 100 && !has[BadgeMilestone100] {
		toAward = append(toAward, BadgeMilestone100)
	}
	if totalMeals >= 500 && !has[BadgeMilestone500] {
		toAward = append(toAward, BadgeMilestone500)
	}
	if completedCount >= 10 && !has[BadgeHungerHero] {
		toAward = append(toAward, BadgeHungerHero)
	}
	if completedCount >= 50 && !has[BadgeZeroWasteStar] {
		toAward = append(toAward, BadgeZeroWasteStar)
	}

	awarded := make([]string, 0, len(toAward))
	for _, name := range toAward {
		badge := &entities.Badge{
			ID:       uuid.New(),
			UserID:   donorUUID,
			Name:     name,
			EarnedAt: s.now(),
		}
		if err := s.badgeStore.AddBadge(ctx, badge); err != nil {
			return awarded, err
		}
		awarded = append(awarded, name)
	}

	return awarded, nil
}
