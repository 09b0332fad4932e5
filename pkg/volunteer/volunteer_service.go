package volunteer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/pkg/donation"
	"github.com/Denyusha/Food-Donation-updated/pkg/notification"
	"github.com/Denyusha/Food-Donation-updated/pkg/user"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	VolunteerService interface {
		ClaimDonation(ctx context.Context, donationID, volunteerID string) (*domain.Donation, error)
		GetMyAssignments(ctx context.Context, volunteerID string) ([]*domain.Donation, error)
		UpdateLocation(ctx context.Context, donationID, volunteerID string, req domain.VolunteerLocationRequest) error
	}

	volunteerService struct {
		donationRepository  donation.DonationRepository
		userRepository      user.UserRepository
		notificationService notification.NotificationService
		now                 func() time.Time
	}
)

func NewVolunteerService(
	donationRepository donation.DonationRepository,
	userRepository user.UserRepository,
	notificationService notification.NotificationService,
) VolunteerService {
	return &volunteerService{
		donationRepository:  donationRepository,
		userRepository:      userRepository,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// ClaimDonation assigns the volunteer to an accepted donation and moves it
// to picked. The assignment is exclusive: when several volunteers claim at
// once, the conditional update lets exactly one through and the rest learn
// whether they lost the race or the donation was never claimable.
func (s *volunteerService) ClaimDonation(ctx context.Context, donationID, volunteerID string) (*domain.Donation, error) {
	volunteerUUID, err := uuid.Parse(volunteerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	current, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	ok, err := s.donationRepository.AssignVolunteer(ctx, donationID, volunteerUUID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		refreshed, rerr := s.donationRepository.GetDonationByID(ctx, donationID)
		if rerr == nil && refreshed.VolunteerID != nil {
			return nil, domain.ErrVolunteerAlreadyAssigned
		}
		return nil, domain.ErrDonationNotForPickup
	}

	if err := s.userRepository.AddPoints(ctx, volunteerID, domain.PointsVolunteerPickup); err != nil {
		log.Warnf("award pickup points to volunteer %s failed: %v", volunteerID, err)
	}

	volunteer, _ := s.userRepository.GetUserByID(ctx, volunteerID)
	volunteerName := "A volunteer"
	if volunteer != nil {
		volunteerName = volunteer.Name
	}

	payload := map[string]any{"donation_id": donationID, "volunteer_id": volunteerID}
	_ = s.notificationService.Notify(ctx, current.DonorID.String(),
		domain.NotificationDonationPicked,
		"Donation Picked Up",
		fmt.Sprintf("%s has picked up your donation %q", volunteerName, current.FoodName),
		payload,
	)
	if current.ReceiverID != nil {
		_ = s.notificationService.Notify(ctx, current.ReceiverID.String(),
			domain.NotificationDonationPicked,
			"Donation On Its Way",
			fmt.Sprintf("%s has picked up %q and is on the way to you", volunteerName, current.FoodName),
			payload,
		)
	}

	updated, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	return donation.ToDomain(updated), nil
}

func (s *volunteerService) GetMyAssignments(ctx context.Context, volunteerID string) ([]*domain.Donation, error) {
	donations, err := s.donationRepository.GetDonationsByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, donation.ToDomain(d))
	}
	return result, nil
}

// UpdateLocation records the volunteer's live position on the donation they
// are assigned to. Only the assigned volunteer may report a position, and
// only while the delivery is in progress.
func (s *volunteerService) UpdateLocation(ctx context.Context, donationID, volunteerID string, req domain.VolunteerLocationRequest) error {
	volunteerUUID, err := uuid.Parse(volunteerID)
	if err != nil {
		return domain.ErrParseUUID
	}

	current, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}
	if current.VolunteerID == nil || *current.VolunteerID != volunteerUUID {
		return domain.ErrDonationNotAuthorized
	}

	ok, err := s.donationRepository.SetVolunteerLocation(ctx, donationID, volunteerUUID, req.Lat, req.Lng, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidDonationState
	}
	return nil
}
