package donation

import (
	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
)

// ToDomain converts a donation entity (with whatever associations were
// preloaded) into its API representation.
func ToDomain(d *entities.Donation) *domain.Donation {
	images := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, img.URL)
	}

	result := &domain.Donation{
		ID:          d.ID.String(),
		DonorID:     d.DonorID.String(),
		Donor:       partySummary(d.Donor),
		Receiver:    partySummary(d.Receiver),
		Volunteer:   partySummary(d.Volunteer),
		FoodName:    d.FoodName,
		FoodType:    d.FoodType,
		Quantity:    d.Quantity,
		Unit:        d.Unit,
		Description: d.Description,
		Images:      images,
		Location: domain.Location{
			Address: d.Address,
			Coordinates: domain.Coordinates{
				Lat: d.Latitude,
				Lng: d.Longitude,
			},
		},
		ExpiryTime: d.ExpiryTime,
		AvailableTimeSlot: domain.TimeSlot{
			Start: d.PickupStart,
			End:   d.PickupEnd,
		},
		Freshness:          d.Freshness,
		FoodHealthScore:    d.FoodHealthScore,
		IsEmergency:        d.IsEmergency,
		Status:             d.Status,
		AcceptedAt:         d.AcceptedAt,
		PickedAt:           d.PickedAt,
		CompletedAt:        d.CompletedAt,
		CancelledAt:        d.CancelledAt,
		CancellationReason: d.CancellationReason,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}

	if d.ReceiverID != nil {
		result.ReceiverID = d.ReceiverID.String()
	}
	if d.VolunteerID != nil {
		result.VolunteerID = d.VolunteerID.String()
	}
	if d.FeedbackID != nil {
		result.FeedbackID = d.FeedbackID.String()
	}
	if d.VolunteerLat != nil && d.VolunteerLng != nil && d.VolunteerLocUpdatedAt != nil {
		result.VolunteerLocation = &domain.VolunteerLocation{
			Lat:       *d.VolunteerLat,
			Lng:       *d.VolunteerLng,
			UpdatedAt: *d.VolunteerLocUpdatedAt,
		}
	}

	return result
}

func partySummary(u *entities.User) *domain.PartySummary {
	if u == nil {
		return nil
	}
	return &domain.PartySummary{
		ID:               u.ID.String(),
		Name:             u.Name,
		Phone:            u.Phone,
		OrganizationName: u.OrganizationName,
	}
}

func toDomainFeedback(f *entities.Feedback) *domain.Feedback {
	return &domain.Feedback{
		ID:               f.ID.String(),
		DonationID:       f.DonationID.String(),
		ReceiverID:       f.ReceiverID.String(),
		DonorID:          f.DonorID.String(),
		Rating:           f.Rating,
		FreshnessScore:   f.FreshnessScore,
		Quality:          f.Quality,
		Comments:         f.Comments,
		WouldAcceptAgain: f.WouldAcceptAgain,
		CreatedAt:        f.CreatedAt,
	}
}
