package badge

import (
	"context"
	"testing"

	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	completed int64
	meals     int64
}

func (f *fakeHistory) CountCompletedByDonor(ctx context.Context, donorID string) (int64, error) {
	return f.completed, nil
}

func (f *fakeHistory) SumCompletedQuantityByDonor(ctx context.Context, donorID string) (int64, error) {
	return f.meals, nil
}

type fakeStore struct {
	badges []*entities.Badge
}

func (f *fakeStore) GetUserBadges(ctx context.Context, userID string) ([]*entities.Badge, error) {
	return f.badges, nil
}

func (f *fakeStore) AddBadge(ctx context.Context, badge *entities.Badge) error {
	f.badges = append(f.badges, badge)
	return nil
}

func TestEvaluateDonor_FirstDonation(t *testing.T) {
	store := &fakeStore{}
	svc := NewBadgeService(&fakeHistory{completed: 1, meals: 20}, store)

	awarded, err := svc.EvaluateDonor(context.Background(), uuid.New().String())
	require.NoError(t, err)

	assert.Equal(t, []string{BadgeFirstDonation}, awarded)
	require.Len(t, store.badges, 1)
	assert.Equal(t, BadgeFirstDonation, store.badges[0].Name)
}

func TestEvaluateDonor_MilestoneAndHeroTogether(t *testing.T) {
	store := &fakeStore{}
	svc := NewBadgeService(&fakeHistory{completed: 10, meals: 150}, store)

	awarded, err := svc.EvaluateDonor(context.Background(), uuid.New().String())
	require.NoError(t, err)

	assert.Contains(t, awarded, BadgeFirstDonation)
	assert.Contains(t, awarded, BadgeMilestone100)
	assert.Contains(t, awarded, BadgeHungerHero)
	assert.NotContains(t, awarded, BadgeMilestone500)
}

func TestEvaluateDonor_Idempotent(t *testing.T) {
	donorID := uuid.New().String()
	store := &fakeStore{}
	svc := NewBadgeService(&fakeHistory{completed: 10, meals: 150}, store)

	first, err := svc.EvaluateDonor(context.Background(), donorID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.EvaluateDonor(context.Background(), donorID)
	require.NoError(t, err)

	assert.Empty(t, second)
	assert.Len(t, store.badges, len(first))
}

func TestEvaluateDonor_NothingEarnedYet(t *testing.T) {
	store := &fakeStore{}
	svc := NewBadgeService(&fakeHistory{completed: 0, meals: 0}, store)

	awarded, err := svc.EvaluateDonor(context.Background(), uuid.New().String())
	require.NoError(t, err)

	assert.Empty(t, awarded)
	assert.Empty(t, store.badges)
}
