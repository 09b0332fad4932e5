package donation

import (
	"context"
	"testing"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/Denyusha/Food-Donation-updated/internal/utils"
	"github.com/Denyusha/Food-Donation-updated/pkg/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDonationRepo struct {
	DonationRepository
	donations       map[string]*entities.Donation
	feedbacks       map[string]*entities.Feedback
	expired         []string
	deletedFeedback []string
	linkFails       bool
	lastFilter      ListFilter
}

func newFakeDonationRepo(donations ...*entities.Donation) *fakeDonationRepo {
	repo := &fakeDonationRepo{
		donations: map[string]*entities.Donation{},
		feedbacks: map[string]*entities.Feedback{},
	}
	for _, d := range donations {
		repo.donations[d.ID.String()] = d
	}
	return repo
}

func (f *fakeDonationRepo) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	d, ok := f.donations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeDonationRepo) CreateDonation(ctx context.Context, d *entities.Donation) error {
	f.donations[d.ID.String()] = d
	return nil
}

func (f *fakeDonationRepo) ListDonations(ctx context.Context, filter ListFilter, page, limit int) ([]*entities.Donation, int64, error) {
	f.lastFilter = filter
	var result []*entities.Donation
	for _, d := range f.donations {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		result = append(result, d)
	}
	return result, int64(len(result)), nil
}

func (f *fakeDonationRepo) AcceptDonation(ctx context.Context, id string, receiverID uuid.UUID, at time.Time) (bool, error) {
	d, ok := f.donations[id]
	if !ok || d.Status != domain.StatusPending || !d.ExpiryTime.After(at) {
		return false, nil
	}
	d.Status = domain.StatusAccepted
	d.ReceiverID = &receiverID
	d.AcceptedAt = &at
	return true, nil
}

func (f *fakeDonationRepo) CompleteDonation(ctx context.Context, id string, at time.Time) (bool, error) {
	d, ok := f.donations[id]
	if !ok || d.Status == domain.StatusCompleted {
		return false, nil
	}
	d.Status = domain.StatusCompleted
	d.CompletedAt = &at
	return true, nil
}

func (f *fakeDonationRepo) CancelDonation(ctx context.Context, id string, reason string, at time.Time) (bool, error) {
	d, ok := f.donations[id]
	if !ok || (d.Status != domain.StatusPending && d.Status != domain.StatusAccepted) {
		return false, nil
	}
	d.Status = domain.StatusCancelled
	d.CancellationReason = reason
	d.CancelledAt = &at
	return true, nil
}

func (f *fakeDonationRepo) MarkExpired(ctx context.Context, id string) (bool, error) {
	f.expired = append(f.expired, id)
	d, ok := f.donations[id]
	if !ok || d.Status != domain.StatusPending {
		return false, nil
	}
	d.Status = domain.StatusExpired
	return true, nil
}

func (f *fakeDonationRepo) CreateFeedback(ctx context.Context, fb *entities.Feedback) error {
	f.feedbacks[fb.ID.String()] = fb
	return nil
}

func (f *fakeDonationRepo) LinkFeedback(ctx context.Context, donationID string, feedbackID uuid.UUID, freshnessScore int) (bool, error) {
	d, ok := f.donations[donationID]
	if !ok || d.FeedbackID != nil || f.linkFails {
		return false, nil
	}
	d.FeedbackID = &feedbackID
	d.FoodHealthScore = freshnessScore
	return true, nil
}

func (f *fakeDonationRepo) DeleteFeedback(ctx context.Context, id string) error {
	f.deletedFeedback = append(f.deletedFeedback, id)
	delete(f.feedbacks, id)
	return nil
}

type fakeUserRepo struct {
	user.UserRepository
	points     map[string]int
	users      map[string]*entities.User
	volunteers []*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		points: map[string]int{},
		users:  map[string]*entities.User{},
	}
}

func (f *fakeUserRepo) AddPoints(ctx context.Context, id string, points int) error {
	f.points[id] += points
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetActiveVolunteers(ctx context.Context) ([]*entities.User, error) {
	return f.volunteers, nil
}

type fakeBadgeService struct {
	evaluated []string
}

func (f *fakeBadgeService) EvaluateDonor(ctx context.Context, donorID string) ([]string, error) {
	f.evaluated = append(f.evaluated, donorID)
	return nil, nil
}

type notifyCall struct {
	userID    string
	notifType string
}

type fakeNotificationService struct {
	calls   []notifyCall
	fanOuts [][]string
}

func (f *fakeNotificationService) Notify(ctx context.Context, userID, notifType, title, message string, payload map[string]any) error {
	f.calls = append(f.calls, notifyCall{userID: userID, notifType: notifType})
	return nil
}

func (f *fakeNotificationService) NotifyAll(ctx context.Context, userIDs []string, notifType, title, message string, payload map[string]any) {
	f.fanOuts = append(f.fanOuts, userIDs)
	for _, id := range userIDs {
		f.calls = append(f.calls, notifyCall{userID: id, notifType: notifType})
	}
}

func (f *fakeNotificationService) GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return nil
}

type fixture struct {
	repo   *fakeDonationRepo
	users  *fakeUserRepo
	badges *fakeBadgeService
	notifs *fakeNotificationService
	svc    *donationService
	now    time.Time
}

func newFixture(t *testing.T, donations ...*entities.Donation) *fixture {
	t.Helper()
	f := &fixture{
		repo:   newFakeDonationRepo(donations...),
		users:  newFakeUserRepo(),
		badges: &fakeBadgeService{},
		notifs: &fakeNotificationService{},
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	svc := NewDonationService(f.repo, f.users, f.badges, f.notifs, nil).(*donationService)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func pendingDonation(now time.Time) *entities.Donation {
	return &entities.Donation{
		ID:              uuid.New(),
		DonorID:         uuid.New(),
		FoodName:        "Nasi Kotak",
		FoodType:        "non-vegetarian",
		Quantity:        40,
		Unit:            "servings",
		Status:          domain.StatusPending,
		FoodHealthScore: 8,
		Freshness:       domain.FreshnessFreshlyCooked,
		ExpiryTime:      now.Add(6 * time.Hour),
	}
}

func TestAcceptDonation_Success(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	receiverID := uuid.New().String()
	result, err := f.svc.AcceptDonation(context.Background(), d.ID.String(), receiverID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, result.Status)
	assert.Equal(t, receiverID, result.ReceiverID)
	assert.Equal(t, domain.PointsAcceptDonation, f.users.points[receiverID])

	require.NotEmpty(t, f.notifs.calls)
	assert.Equal(t, d.DonorID.String(), f.notifs.calls[0].userID)
	assert.Equal(t, domain.NotificationDonationAccepted, f.notifs.calls[0].notifType)
}

func TestAcceptDonation_FansOutToVolunteers(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	v1 := &entities.User{ID: uuid.New(), Role: domain.RoleVolunteer, IsActive: true}
	v2 := &entities.User{ID: uuid.New(), Role: domain.RoleVolunteer, IsActive: true}
	f.users.volunteers = []*entities.User{v1, v2}

	_, err := f.svc.AcceptDonation(context.Background(), d.ID.String(), uuid.New().String())
	require.NoError(t, err)

	require.Len(t, f.notifs.fanOuts, 1)
	assert.ElementsMatch(t, []string{v1.ID.String(), v2.ID.String()}, f.notifs.fanOuts[0])
}

func TestAcceptDonation_AlreadyAccepted(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	d.Status = domain.StatusAccepted
	f.repo.donations[d.ID.String()] = d

	_, err := f.svc.AcceptDonation(context.Background(), d.ID.String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrInvalidDonationState)
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
}

func TestAcceptDonation_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AcceptDonation(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestCompleteDonation_AwardsPointsBadgesAndNotifies(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	volunteerID := uuid.New()
	d.Status = domain.StatusPicked
	d.ReceiverID = &receiverID
	d.VolunteerID = &volunteerID
	f.repo.donations[d.ID.String()] = d

	result, err := f.svc.CompleteDonation(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Equal(t, domain.PointsCompleteDonation, f.users.points[d.DonorID.String()])
	assert.Equal(t, []string{d.DonorID.String()}, f.badges.evaluated)

	// Donor, receiver and volunteer each get a completion notification.
	require.Len(t, f.notifs.calls, 3)
	for _, call := range f.notifs.calls {
		assert.Equal(t, domain.NotificationDonationCompleted, call.notifType)
	}
}

func TestCompleteDonation_UnrelatedCallerForbidden(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	d.Status = domain.StatusPicked
	d.ReceiverID = &receiverID
	f.repo.donations[d.ID.String()] = d

	_, err := f.svc.CompleteDonation(context.Background(), d.ID.String(), uuid.New().String(), domain.RoleReceiver)
	assert.ErrorIs(t, err, domain.ErrDonationNotAuthorized)
}

func TestCancelDonation_DefaultReason(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	err := f.svc.CancelDonation(context.Background(), d.ID.String(), d.DonorID.String(), domain.RoleDonor, "")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, d.Status)
	assert.Equal(t, domain.DefaultCancellationReason, d.CancellationReason)
}

func TestCancelDonation_NotifiesReceiver(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	d.Status = domain.StatusAccepted
	d.ReceiverID = &receiverID
	f.repo.donations[d.ID.String()] = d

	err := f.svc.CancelDonation(context.Background(), d.ID.String(), d.DonorID.String(), domain.RoleDonor, "no longer available")
	require.NoError(t, err)

	require.Len(t, f.notifs.calls, 1)
	assert.Equal(t, receiverID.String(), f.notifs.calls[0].userID)
	assert.Equal(t, domain.NotificationDonationCancelled, f.notifs.calls[0].notifType)
}

func TestCancelDonation_AfterPickupFails(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	d.Status = domain.StatusPicked
	f.repo.donations[d.ID.String()] = d

	err := f.svc.CancelDonation(context.Background(), d.ID.String(), d.DonorID.String(), domain.RoleDonor, "")
	assert.ErrorIs(t, err, domain.ErrDonationAlreadyPicked)
}

func TestCancelDonation_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	err := f.svc.CancelDonation(context.Background(), d.ID.String(), uuid.New().String(), domain.RoleDonor, "")
	assert.ErrorIs(t, err, domain.ErrDonationNotAuthorized)
}

func feedbackRequest() domain.FeedbackRequest {
	score := 7
	return domain.FeedbackRequest{
		Rating:           5,
		FreshnessScore:   &score,
		Quality:          "good",
		WouldAcceptAgain: true,
	}
}

func TestSubmitFeedback_LinksAndOverwritesHealthScore(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	d.Status = domain.StatusCompleted
	d.ReceiverID = &receiverID
	f.repo.donations[d.ID.String()] = d

	result, err := f.svc.SubmitFeedback(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver, feedbackRequest())
	require.NoError(t, err)

	assert.Equal(t, 7, result.FreshnessScore)
	assert.Equal(t, 7, d.FoodHealthScore)
	require.NotNil(t, d.FeedbackID)
	assert.Equal(t, result.ID, d.FeedbackID.String())
}

func TestSubmitFeedback_NotCompleted(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	d.Status = domain.StatusPicked
	d.ReceiverID = &receiverID
	f.repo.donations[d.ID.String()] = d

	_, err := f.svc.SubmitFeedback(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver, feedbackRequest())
	assert.ErrorIs(t, err, domain.ErrDonationNotCompleted)
}

func TestSubmitFeedback_SecondSubmissionRejected(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	existing := uuid.New()
	d.Status = domain.StatusCompleted
	d.ReceiverID = &receiverID
	d.FeedbackID = &existing
	f.repo.donations[d.ID.String()] = d

	_, err := f.svc.SubmitFeedback(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver, feedbackRequest())
	assert.ErrorIs(t, err, domain.ErrFeedbackAlreadyGiven)
}

func TestSubmitFeedback_LinkRaceLoserCleansUp(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	d.Status = domain.StatusCompleted
	d.ReceiverID = &receiverID
	f.repo.donations[d.ID.String()] = d
	f.repo.linkFails = true

	_, err := f.svc.SubmitFeedback(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver, feedbackRequest())
	assert.ErrorIs(t, err, domain.ErrFeedbackAlreadyGiven)
	assert.Len(t, f.repo.deletedFeedback, 1)
}

func TestGetTracking_PendingShowsOnlyCreation(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	view, err := f.svc.GetTracking(context.Background(), d.ID.String(), d.DonorID.String(), domain.RoleDonor)
	require.NoError(t, err)

	require.Len(t, view.Timeline, 1)
	assert.Equal(t, "created", view.Timeline[0].Step)
}

func TestGetTracking_CompletedShowsFullTimeline(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	volunteerID := uuid.New()
	accepted := f.now.Add(-3 * time.Hour)
	picked := f.now.Add(-2 * time.Hour)
	completed := f.now.Add(-1 * time.Hour)
	d.Status = domain.StatusCompleted
	d.ReceiverID = &receiverID
	d.VolunteerID = &volunteerID
	d.AcceptedAt = &accepted
	d.PickedAt = &picked
	d.CompletedAt = &completed
	f.repo.donations[d.ID.String()] = d

	view, err := f.svc.GetTracking(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver)
	require.NoError(t, err)

	require.Len(t, view.Timeline, 7)
	assert.Equal(t, "created", view.Timeline[0].Step)
	assert.Equal(t, "completed", view.Timeline[6].Step)
	assert.Equal(t, &completed, view.Timeline[6].At)
}

func TestGetTracking_AcceptedShowsThreeSteps(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	accepted := f.now.Add(-1 * time.Hour)
	d.Status = domain.StatusAccepted
	d.ReceiverID = &receiverID
	d.AcceptedAt = &accepted
	f.repo.donations[d.ID.String()] = d

	view, err := f.svc.GetTracking(context.Background(), d.ID.String(), receiverID.String(), domain.RoleReceiver)
	require.NoError(t, err)

	require.Len(t, view.Timeline, 3)
	assert.Equal(t, "volunteer_notified", view.Timeline[2].Step)
}

func TestGetTracking_StrangerForbidden(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	_, err := f.svc.GetTracking(context.Background(), d.ID.String(), uuid.New().String(), domain.RoleReceiver)
	assert.ErrorIs(t, err, domain.ErrDonationNotAuthorized)
}

func TestGetDonationByID_LazyExpiresPastPending(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	d.ExpiryTime = f.now.Add(-1 * time.Minute)
	f.repo.donations[d.ID.String()] = d

	result, err := f.svc.GetDonationByID(context.Background(), d.ID.String())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExpired, result.Status)
	assert.Equal(t, []string{d.ID.String()}, f.repo.expired)
}

func TestCreateDonation_AwardsCreationPoints(t *testing.T) {
	f := newFixture(t)
	donorID := uuid.New().String()

	req := domain.CreateDonationRequest{
		FoodName: "Sayur Lodeh",
		FoodType: "vegetarian",
		Quantity: 25,
		Location: domain.LocationRequest{
			Address:     "Jl. Sudirman 1",
			Coordinates: domain.Coordinates{Lat: -6.2, Lng: 106.8},
		},
		ExpiryTime: f.now.Add(8 * time.Hour).Format(time.RFC3339),
		AvailableTimeSlot: domain.TimeSlotRequest{
			Start: f.now.Add(1 * time.Hour).Format(time.RFC3339),
			End:   f.now.Add(4 * time.Hour).Format(time.RFC3339),
		},
	}

	result, err := f.svc.CreateDonation(context.Background(), req, donorID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Equal(t, "servings", result.Unit)
	assert.Equal(t, domain.FreshnessFreshlyCooked, result.Freshness)
	assert.Equal(t, 10, result.FoodHealthScore)
	assert.Equal(t, domain.PointsCreateDonation, f.users.points[donorID])
}

func TestUpdateDonation_RejectedOnceAccepted(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	receiverID := uuid.New()
	d.Status = domain.StatusAccepted
	d.ReceiverID = &receiverID
	f.repo.donations[d.ID.String()] = d

	_, err := f.svc.UpdateDonation(context.Background(), d.ID.String(), domain.UpdateDonationRequest{FoodName: "Other"}, d.DonorID.String(), domain.RoleDonor)
	assert.ErrorIs(t, err, domain.ErrDonationNotEditable)
}

func TestListDonations_GeoFilterDefaultsRadiusAndAnnotatesDistance(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	d.Latitude = -6.2088
	d.Longitude = 106.8456
	f.repo.donations[d.ID.String()] = d

	lat, lng := -6.2, 106.8
	result, count, err := f.svc.ListDonations(context.Background(), domain.ListDonationsRequest{
		Latitude:  &lat,
		Longitude: &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, result, 1)

	require.NotNil(t, f.repo.lastFilter.Latitude)
	assert.Equal(t, lat, *f.repo.lastFilter.Latitude)
	assert.Equal(t, lng, *f.repo.lastFilter.Longitude)
	assert.Equal(t, 10.0, f.repo.lastFilter.MaxDistanceKm)

	require.NotNil(t, result[0].DistanceKm)
	want := utils.RoundTo2(utils.HaversineKm(lat, lng, d.Latitude, d.Longitude))
	assert.Equal(t, want, *result[0].DistanceKm)
}

func TestListDonations_CustomRadiusReachesFilter(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	lat, lng := -6.2, 106.8
	_, _, err := f.svc.ListDonations(context.Background(), domain.ListDonationsRequest{
		Latitude:    &lat,
		Longitude:   &lng,
		MaxDistance: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, f.repo.lastFilter.MaxDistanceKm)
}

func TestListDonations_WithoutCoordinatesSkipsGeoFilter(t *testing.T) {
	f := newFixture(t)
	d := pendingDonation(f.now)
	f.repo.donations[d.ID.String()] = d

	result, _, err := f.svc.ListDonations(context.Background(), domain.ListDonationsRequest{})
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Nil(t, f.repo.lastFilter.Latitude)
	assert.Zero(t, f.repo.lastFilter.MaxDistanceKm)
	assert.Nil(t, result[0].DistanceKm)
}
