package donation

import (
	"context"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ListFilter narrows the public listing. The geo fields are applied
	// together: rows farther than MaxDistanceKm from (Latitude, Longitude)
	// are excluded, and the count respects the restriction.
	ListFilter struct {
		Status        string
		FoodType      string
		MinQuantity   int
		IsEmergency   bool
		Latitude      *float64
		Longitude     *float64
		MaxDistanceKm float64
	}

	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		AddDonationImage(ctx context.Context, image *entities.DonationImage) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		ListDonations(ctx context.Context, filter ListFilter, page, limit int) ([]*entities.Donation, int64, error)
		GetOpenDonations(ctx context.Context, now time.Time) ([]*entities.Donation, error)
		GetUnassignedDonations(ctx context.Context) ([]*entities.Donation, error)
		GetDonationsByDonor(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error)
		GetDonationsByVolunteer(ctx context.Context, volunteerID string) ([]*entities.Donation, error)

		UpdateDonationFields(ctx context.Context, id string, updates map[string]interface{}) error

		// Conditional transitions. Each issues a single UPDATE guarded on the
		// current status (and nullness of the exclusive column) so at most one
		// concurrent caller wins; the bool reports whether the row was taken.
		AcceptDonation(ctx context.Context, id string, receiverID uuid.UUID, at time.Time) (bool, error)
		AssignVolunteer(ctx context.Context, id string, volunteerID uuid.UUID, at time.Time) (bool, error)
		CompleteDonation(ctx context.Context, id string, at time.Time) (bool, error)
		CancelDonation(ctx context.Context, id string, reason string, at time.Time) (bool, error)
		MarkExpired(ctx context.Context, id string) (bool, error)
		SetVolunteerLocation(ctx context.Context, id string, volunteerID uuid.UUID, lat, lng float64, at time.Time) (bool, error)

		CreateFeedback(ctx context.Context, feedback *entities.Feedback) error
		LinkFeedback(ctx context.Context, donationID string, feedbackID uuid.UUID, freshnessScore int) (bool, error)
		DeleteFeedback(ctx context.Context, id string) error

		CountCompletedByDonor(ctx context.Context, donorID string) (int64, error)
		SumCompletedQuantityByDonor(ctx context.Context, donorID string) (int64, error)
		GetDonationStatistics(ctx context.Context, donorID string) (map[string]interface{}, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) AddDonationImage(ctx context.Context, image *entities.DonationImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Receiver").
		Preload("Volunteer").
		Preload("Feedback").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) ListDonations(ctx context.Context, filter ListFilter, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Donation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FoodType != "" {
		query = query.Where("food_type = ?", filter.FoodType)
	}
	if filter.MinQuantity > 0 {
		query = query.Where("quantity >= ?", filter.MinQuantity)
	}
	if filter.IsEmergency {
		query = query.Where("is_emergency = ?", true)
	}
	if filter.Latitude != nil && filter.Longitude != nil && filter.MaxDistanceKm > 0 {
		query = query.Where(
			"earth_distance(ll_to_earth(latitude, longitude), ll_to_earth(?, ?)) <= ?",
			*filter.Latitude, *filter.Longitude, filter.MaxDistanceKm*1000,
		)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Donor").
		Preload("Images").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetOpenDonations(ctx context.Context, now time.Time) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ? AND expiry_time > ?", domain.StatusPending, now).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetUnassignedDonations(ctx context.Context) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Receiver").
		Where("status IN ? AND volunteer_id IS NULL", []string{domain.StatusPending, domain.StatusAccepted}).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetDonationsByDonor(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ?", donorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Receiver").
		Preload("Volunteer").
		Preload("Images").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetDonationsByVolunteer(ctx context.Context, volunteerID string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Receiver").
		Where("volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) UpdateDonationFields(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *donationRepository) AcceptDonation(ctx context.Context, id string, receiverID uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ? AND expiry_time > ?", id, domain.StatusPending, at).
		Updates(map[string]interface{}{
			"status":      domain.StatusAccepted,
			"receiver_id": receiverID,
			"accepted_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) AssignVolunteer(ctx context.Context, id string, volunteerID uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ? AND volunteer_id IS NULL", id, domain.StatusAccepted).
		Updates(map[string]interface{}{
			"status":       domain.StatusPicked,
			"volunteer_id": volunteerID,
			"picked_at":    at,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) CompleteDonation(ctx context.Context, id string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status <> ?", id, domain.StatusCompleted).
		Updates(map[string]interface{}{
			"status":       domain.StatusCompleted,
			"completed_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) CancelDonation(ctx context.Context, id string, reason string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status IN ?", id, []string{domain.StatusPending, domain.StatusAccepted}).
		Updates(map[string]interface{}{
			"status":              domain.StatusCancelled,
			"cancelled_at":        at,
			"cancellation_reason": reason,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) MarkExpired(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Update("status", domain.StatusExpired)
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) SetVolunteerLocation(ctx context.Context, id string, volunteerID uuid.UUID, lat, lng float64, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND volunteer_id = ? AND status IN ?", id, volunteerID,
			[]string{domain.StatusAccepted, domain.StatusPicked}).
		Updates(map[string]interface{}{
			"volunteer_lat":            lat,
			"volunteer_lng":            lng,
			"volunteer_loc_updated_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) CreateFeedback(ctx context.Context, feedback *entities.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *donationRepository) LinkFeedback(ctx context.Context, donationID string, feedbackID uuid.UUID, freshnessScore int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND feedback_id IS NULL", donationID).
		Updates(map[string]interface{}{
			"feedback_id":       feedbackID,
			"food_health_score": freshnessScore,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *donationRepository) DeleteFeedback(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Feedback{}, "id = ?", id).Error
}

func (r *donationRepository) CountCompletedByDonor(ctx context.Context, donorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, domain.StatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *donationRepository) SumCompletedQuantityByDonor(ctx context.Context, donorID string) (int64, error) {
	var result struct {
		TotalMeals int64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select("COALESCE(SUM(quantity), 0) as total_meals").
		Where("donor_id = ? AND status = ?", donorID, domain.StatusCompleted).
		Scan(&result).Error
	return result.TotalMeals, err
}

func (r *donationRepository) GetDonationStatistics(ctx context.Context, donorID string) (map[string]interface{}, error) {
	var totalDonations, completedDonations, pendingDonations, totalMeals int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ?", donorID).
		Count(&totalDonations).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, domain.StatusCompleted).
		Count(&completedDonations).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, domain.StatusPending).
		Count(&pendingDonations).Error; err != nil {
		return nil, err
	}

	var err error
	totalMeals, err = r.SumCompletedQuantityByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_donations":     totalDonations,
		"completed_donations": completedDonations,
		"pending_donations":   pendingDonations,
		"total_meals_donated": totalMeals,
	}, nil
}
