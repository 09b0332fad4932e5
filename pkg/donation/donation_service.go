package donation

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/Denyusha/Food-Donation-updated/internal/utils"
	"github.com/Denyusha/Food-Donation-updated/internal/utils/storage"
	"github.com/Denyusha/Food-Donation-updated/pkg/badge"
	"github.com/Denyusha/Food-Donation-updated/pkg/notification"
	"github.com/Denyusha/Food-Donation-updated/pkg/user"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListRadiusKm = 10.0

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, donorID string) (*domain.Donation, error)
		AddDonationImage(ctx context.Context, donationID, userID, role string, image *multipart.FileHeader) (string, error)
		ListDonations(ctx context.Context, req domain.ListDonationsRequest) ([]*domain.Donation, int64, error)
		GetDonationByID(ctx context.Context, id string) (*domain.Donation, error)
		GetMyDonations(ctx context.Context, donorID string, page, limit int) ([]*domain.Donation, int64, error)
		UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, callerID, role string) (*domain.Donation, error)
		AcceptDonation(ctx context.Context, id, receiverID string) (*domain.Donation, error)
		CompleteDonation(ctx context.Context, id, callerID, role string) (*domain.Donation, error)
		CancelDonation(ctx context.Context, id, callerID, role, reason string) error
		SubmitFeedback(ctx context.Context, id, callerID, role string, req domain.FeedbackRequest) (*domain.Feedback, error)
		GetTracking(ctx context.Context, id, callerID, role string) (*domain.TrackingView, error)
		GetDonorStatistics(ctx context.Context, donorID string) (*domain.DonationStatistics, error)
		AdminPatchDonation(ctx context.Context, id string, req domain.AdminPatchDonationRequest) (*domain.Donation, error)
	}

	donationService struct {
		donationRepository  DonationRepository
		userRepository      user.UserRepository
		badgeService        badge.BadgeService
		notificationService notification.NotificationService
		s3                  storage.AwsS3
		now                 func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	userRepository user.UserRepository,
	badgeService badge.BadgeService,
	notificationService notification.NotificationService,
	s3 storage.AwsS3,
) DonationService {
	return &donationService{
		donationRepository:  donationRepository,
		userRepository:      userRepository,
		badgeService:        badgeService,
		notificationService: notificationService,
		s3:                  s3,
		now:                 time.Now,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, donorID string) (*domain.Donation, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	expiryTime, err := time.Parse(time.RFC3339, req.ExpiryTime)
	if err != nil {
		return nil, err
	}
	pickupStart, err := time.Parse(time.RFC3339, req.AvailableTimeSlot.Start)
	if err != nil {
		return nil, err
	}
	pickupEnd, err := time.Parse(time.RFC3339, req.AvailableTimeSlot.End)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = "servings"
	}
	freshness := req.Freshness
	if freshness == "" {
		freshness = domain.FreshnessFreshlyCooked
	}
	healthScore := 10
	if req.FoodHealthScore != nil {
		healthScore = *req.FoodHealthScore
	}

	donation := &entities.Donation{
		ID:              uuid.New(),
		DonorID:         donorUUID,
		FoodName:        req.FoodName,
		FoodType:        req.FoodType,
		Quantity:        req.Quantity,
		Unit:            unit,
		Description:     req.Description,
		Address:         req.Location.Address,
		Latitude:        req.Location.Coordinates.Lat,
		Longitude:       req.Location.Coordinates.Lng,
		ExpiryTime:      expiryTime,
		PickupStart:     pickupStart,
		PickupEnd:       pickupEnd,
		Freshness:       freshness,
		FoodHealthScore: healthScore,
		IsEmergency:     req.IsEmergency,
		Status:          domain.StatusPending,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	if err := s.userRepository.AddPoints(ctx, donorID, domain.PointsCreateDonation); err != nil {
		log.Warnf("award create points to donor %s failed: %v", donorID, err)
	}

	created, err := s.donationRepository.GetDonationByID(ctx, donation.ID.String())
	if err != nil {
		return ToDomain(donation), nil
	}
	return ToDomain(created), nil
}

func (s *donationService) AddDonationImage(ctx context.Context, donationID, userID, role string, image *multipart.FileHeader) (string, error) {
	donation, err := s.loadDonation(ctx, donationID)
	if err != nil {
		return "", err
	}

	if donation.DonorID.String() != userID && role != domain.RoleAdmin {
		return "", domain.ErrDonationNotAuthorized
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("donation-%s-%d", donationID, len(donation.Images)),
		image,
		"donations",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}
	url := s.s3.GetPublicLinkKey(objectKey)

	donationImage := &entities.DonationImage{
		ID:         uuid.New(),
		DonationID: donation.ID,
		URL:        url,
		Position:   len(donation.Images),
	}
	if err := s.donationRepository.AddDonationImage(ctx, donationImage); err != nil {
		return "", err
	}

	return url, nil
}

func (s *donationService) ListDonations(ctx context.Context, req domain.ListDonationsRequest) ([]*domain.Donation, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}

	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}

	filter := ListFilter{
		Status:      status,
		FoodType:    req.FoodType,
		MinQuantity: req.MinQuantity,
		IsEmergency: req.IsEmergency,
	}

	hasGeo := req.Latitude != nil && req.Longitude != nil
	if hasGeo {
		filter.Latitude = req.Latitude
		filter.Longitude = req.Longitude
		filter.MaxDistanceKm = req.MaxDistance
		if filter.MaxDistanceKm <= 0 {
			filter.MaxDistanceKm = defaultListRadiusKm
		}
	}

	donations, count, err := s.donationRepository.ListDonations(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		s.lazyExpire(ctx, d)
		view := ToDomain(d)
		if hasGeo {
			distance := utils.RoundTo2(utils.HaversineKm(*req.Latitude, *req.Longitude, d.Latitude, d.Longitude))
			view.DistanceKm = &distance
		}
		result = append(result, view)
	}

	return result, count, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string) (*domain.Donation, error) {
	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomain(donation), nil
}

func (s *donationService) GetMyDonations(ctx context.Context, donorID string, page, limit int) ([]*domain.Donation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	donations, count, err := s.donationRepository.GetDonationsByDonor(ctx, donorID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		s.lazyExpire(ctx, d)
		result = append(result, ToDomain(d))
	}

	return result, count, nil
}

func (s *donationService) UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, callerID, role string) (*domain.Donation, error) {
	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	if donation.DonorID.String() != callerID && role != domain.RoleAdmin {
		return nil, domain.ErrDonationNotAuthorized
	}

	if donation.Status == domain.StatusAccepted || donation.Status == domain.StatusPicked {
		return nil, domain.ErrDonationNotEditable
	}

	updates := map[string]interface{}{}
	if req.FoodName != "" {
		updates["food_name"] = req.FoodName
	}
	if req.FoodType != "" {
		updates["food_type"] = req.FoodType
	}
	if req.Quantity > 0 {
		updates["quantity"] = req.Quantity
	}
	if req.Unit != "" {
		updates["unit"] = req.Unit
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ExpiryTime != "" {
		expiryTime, err := time.Parse(time.RFC3339, req.ExpiryTime)
		if err != nil {
			return nil, err
		}
		updates["expiry_time"] = expiryTime
	}
	if req.Freshness != "" {
		updates["freshness"] = req.Freshness
	}
	if req.FoodHealthScore != nil {
		updates["food_health_score"] = *req.FoodHealthScore
	}
	if req.IsEmergency != nil {
		updates["is_emergency"] = *req.IsEmergency
	}

	if len(updates) > 0 {
		if err := s.donationRepository.UpdateDonationFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.GetDonationByID(ctx, id)
}

// AcceptDonation moves a pending, unexpired donation to accepted for the
// acting receiver. The transition is exclusive: with two concurrent
// receivers, the conditional update lets exactly one through.
func (s *donationService) AcceptDonation(ctx context.Context, id, receiverID string) (*domain.Donation, error) {
	receiverUUID, err := uuid.Parse(receiverID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.Status != domain.StatusPending {
		return nil, domain.ErrDonationNotAvailable
	}

	now := s.now()
	ok, err := s.donationRepository.AcceptDonation(ctx, id, receiverUUID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrDonationNotAvailable
	}

	if err := s.userRepository.AddPoints(ctx, receiverID, domain.PointsAcceptDonation); err != nil {
		log.Warnf("award accept points to receiver %s failed: %v", receiverID, err)
	}

	receiver, _ := s.userRepository.GetUserByID(ctx, receiverID)
	receiverName := "A receiver"
	if receiver != nil {
		receiverName = receiver.Name
	}

	payload := map[string]any{"donation_id": id, "receiver_id": receiverID}
	_ = s.notificationService.Notify(ctx, donation.DonorID.String(),
		domain.NotificationDonationAccepted,
		"Donation Accepted",
		fmt.Sprintf("%s has accepted your donation %q", receiverName, donation.FoodName),
		payload,
	)

	s.notifyVolunteers(ctx, donation, receiverID)

	return s.GetDonationByID(ctx, id)
}

// notifyVolunteers fans the donation_available event out to every active
// volunteer. Failures are per-recipient and never surface.
func (s *donationService) notifyVolunteers(ctx context.Context, donation *entities.Donation, receiverID string) {
	volunteers, err := s.userRepository.GetActiveVolunteers(ctx)
	if err != nil {
		log.Warnf("enumerate active volunteers failed: %v", err)
		return
	}
	if len(volunteers) == 0 {
		return
	}

	userIDs := make([]string, 0, len(volunteers))
	for _, v := range volunteers {
		userIDs = append(userIDs, v.ID.String())
	}

	s.notificationService.NotifyAll(ctx, userIDs,
		domain.NotificationDonationAvailable,
		"New Donation Needs Pickup",
		fmt.Sprintf("A donation %q has been accepted and needs pickup.", donation.FoodName),
		map[string]any{
			"donation_id": donation.ID.String(),
			"donor_id":    donation.DonorID.String(),
			"receiver_id": receiverID,
			"food_name":   donation.FoodName,
			"quantity":    donation.Quantity,
			"unit":        donation.Unit,
			"address":     donation.Address,
		},
	)
}

// CompleteDonation marks the donation delivered. The receiver on the
// donation, the assigned volunteer, or an admin may complete it; the donor
// earns completion points and has their badge milestones re-evaluated.
func (s *donationService) CompleteDonation(ctx context.Context, id, callerID, role string) (*domain.Donation, error) {
	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	isReceiver := donation.ReceiverID != nil && donation.ReceiverID.String() == callerID
	isVolunteer := donation.VolunteerID != nil && donation.VolunteerID.String() == callerID
	if !isReceiver && !isVolunteer && role != domain.RoleAdmin {
		return nil, domain.ErrDonationNotAuthorized
	}

	ok, err := s.donationRepository.CompleteDonation(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidDonationState
	}

	donorID := donation.DonorID.String()
	if err := s.userRepository.AddPoints(ctx, donorID, domain.PointsCompleteDonation); err != nil {
		log.Warnf("award completion points to donor %s failed: %v", donorID, err)
	}
	if _, err := s.badgeService.EvaluateDonor(ctx, donorID); err != nil {
		log.Warnf("badge evaluation for donor %s failed: %v", donorID, err)
	}

	payload := map[string]any{"donation_id": id}
	_ = s.notificationService.Notify(ctx, donorID,
		domain.NotificationDonationCompleted,
		"Donation Completed",
		fmt.Sprintf("Your donation %q has been successfully delivered", donation.FoodName),
		payload,
	)
	if donation.ReceiverID != nil {
		_ = s.notificationService.Notify(ctx, donation.ReceiverID.String(),
			domain.NotificationDonationCompleted,
			"Donation Delivered",
			fmt.Sprintf("The donation %q has been successfully delivered to you", donation.FoodName),
			payload,
		)
	}
	if donation.VolunteerID != nil {
		_ = s.notificationService.Notify(ctx, donation.VolunteerID.String(),
			domain.NotificationDonationCompleted,
			"Delivery Completed",
			fmt.Sprintf("You have successfully delivered %q", donation.FoodName),
			payload,
		)
	}

	return s.GetDonationByID(ctx, id)
}

// CancelDonation cancels a donation that has not been picked up yet. Only
// the owning donor or an admin may cancel.
func (s *donationService) CancelDonation(ctx context.Context, id, callerID, role, reason string) error {
	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return err
	}

	if donation.DonorID.String() != callerID && role != domain.RoleAdmin {
		return domain.ErrDonationNotAuthorized
	}

	if donation.Status == domain.StatusPicked || donation.Status == domain.StatusCompleted {
		return domain.ErrDonationAlreadyPicked
	}

	if reason == "" {
		reason = domain.DefaultCancellationReason
	}

	ok, err := s.donationRepository.CancelDonation(ctx, id, reason, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidDonationState
	}

	if donation.ReceiverID != nil {
		_ = s.notificationService.Notify(ctx, donation.ReceiverID.String(),
			domain.NotificationDonationCancelled,
			"Donation Cancelled",
			fmt.Sprintf("The donation %q has been cancelled", donation.FoodName),
			map[string]any{"donation_id": id},
		)
	}

	return nil
}

// SubmitFeedback records the receiver's one-time feedback on a completed
// donation and overwrites the donation's health score with the submitted
// freshness score.
func (s *donationService) SubmitFeedback(ctx context.Context, id, callerID, role string, req domain.FeedbackRequest) (*domain.Feedback, error) {
	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	isReceiver := donation.ReceiverID != nil && donation.ReceiverID.String() == callerID
	if !isReceiver && role != domain.RoleAdmin {
		return nil, domain.ErrDonationNotAuthorized
	}

	if donation.Status != domain.StatusCompleted {
		return nil, domain.ErrDonationNotCompleted
	}
	if donation.FeedbackID != nil {
		return nil, domain.ErrFeedbackAlreadyGiven
	}

	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	feedback := &entities.Feedback{
		ID:               uuid.New(),
		DonationID:       donation.ID,
		ReceiverID:       callerUUID,
		DonorID:          donation.DonorID,
		Rating:           req.Rating,
		FreshnessScore:   *req.FreshnessScore,
		Quality:          req.Quality,
		Comments:         req.Comments,
		WouldAcceptAgain: req.WouldAcceptAgain,
	}

	if err := s.donationRepository.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	ok, err := s.donationRepository.LinkFeedback(ctx, id, feedback.ID, feedback.FreshnessScore)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to another submission; drop the orphan row.
		if derr := s.donationRepository.DeleteFeedback(ctx, feedback.ID.String()); derr != nil {
			log.Warnf("delete orphan feedback %s failed: %v", feedback.ID, derr)
		}
		return nil, domain.ErrFeedbackAlreadyGiven
	}

	return toDomainFeedback(feedback), nil
}

// GetTracking derives the delivery timeline for the donation. Visible to
// the three parties on the donation and to admins.
func (s *donationService) GetTracking(ctx context.Context, id, callerID, role string) (*domain.TrackingView, error) {
	donation, err := s.loadDonation(ctx, id)
	if err != nil {
		return nil, err
	}

	isDonor := donation.DonorID.String() == callerID
	isReceiver := donation.ReceiverID != nil && donation.ReceiverID.String() == callerID
	isVolunteer := donation.VolunteerID != nil && donation.VolunteerID.String() == callerID
	if !isDonor && !isReceiver && !isVolunteer && role != domain.RoleAdmin {
		return nil, domain.ErrDonationNotAuthorized
	}

	return buildTrackingView(donation, s.now()), nil
}

func (s *donationService) GetDonorStatistics(ctx context.Context, donorID string) (*domain.DonationStatistics, error) {
	stats, err := s.donationRepository.GetDonationStatistics(ctx, donorID)
	if err != nil {
		return nil, err
	}

	totalMeals := int(stats["total_meals_donated"].(int64))
	estimatedMeals := int(float64(totalMeals) * 0.8)

	return &domain.DonationStatistics{
		TotalDonations:       int(stats["total_donations"].(int64)),
		CompletedDonations:   int(stats["completed_donations"].(int64)),
		PendingDonations:     int(stats["pending_donations"].(int64)),
		TotalMealsDonated:    totalMeals,
		EstimatedMealsServed: estimatedMeals,
		EstimatedImpact:      fmt.Sprintf("You've helped provide approximately %d meals to those in need.", estimatedMeals),
	}, nil
}

// AdminPatchDonation replaces fields directly, bypassing the lifecycle
// guards. Restricted to the enumerated field set in the request type.
func (s *donationService) AdminPatchDonation(ctx context.Context, id string, req domain.AdminPatchDonationRequest) (*domain.Donation, error) {
	if _, err := s.loadDonation(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.ReceiverID != "" {
		receiverUUID, err := uuid.Parse(req.ReceiverID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		updates["receiver_id"] = receiverUUID
	}
	if req.VolunteerID != "" {
		volunteerUUID, err := uuid.Parse(req.VolunteerID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		updates["volunteer_id"] = volunteerUUID
	}
	if req.FoodHealthScore != nil {
		updates["food_health_score"] = *req.FoodHealthScore
	}
	if req.IsEmergency != nil {
		updates["is_emergency"] = *req.IsEmergency
	}
	if req.CancellationReason != "" {
		updates["cancellation_reason"] = req.CancellationReason
	}

	if len(updates) > 0 {
		if err := s.donationRepository.UpdateDonationFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomain(donation), nil
}

// loadDonation fetches a donation and applies the lazy expiry rule: a
// pending donation past its expiry time is reported (and best-effort
// persisted) as expired.
func (s *donationService) loadDonation(ctx context.Context, id string) (*entities.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	s.lazyExpire(ctx, donation)
	return donation, nil
}

func (s *donationService) lazyExpire(ctx context.Context, donation *entities.Donation) {
	if donation.Status != domain.StatusPending || !donation.ExpiryTime.Before(s.now()) {
		return
	}
	if _, err := s.donationRepository.MarkExpired(ctx, donation.ID.String()); err != nil {
		log.Warnf("mark donation %s expired failed: %v", donation.ID, err)
	}
	donation.Status = domain.StatusExpired
}
