package donation

import (
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
)

type timelineStep struct {
	step        string
	label       string
	description string
}

// The full delivery timeline in order. How far down the list a donation's
// tracking view goes depends on its current status.
var timelineSteps = []timelineStep{
	{"created", "Donation Created", "The donor listed the food donation"},
	{"accepted", "Donation Accepted", "A receiver accepted the donation"},
	{"volunteer_notified", "Volunteers Notified", "Nearby volunteers were notified for pickup"},
	{"volunteer_assigned", "Volunteer Assigned", "A volunteer claimed the pickup"},
	{"picked", "Food Picked Up", "The volunteer picked up the food"},
	{"in_transit", "In Transit", "The donation is on its way to the receiver"},
	{"completed", "Delivered", "The donation was delivered to the receiver"},
}

// timelineCutoff returns the index of the last timeline step visible for
// the given status.
func timelineCutoff(status string) int {
	switch status {
	case domain.StatusAccepted:
		return 2
	case domain.StatusPicked:
		return 5
	case domain.StatusCompleted:
		return 6
	default:
		return 0
	}
}

func buildTrackingView(d *entities.Donation, now time.Time) *domain.TrackingView {
	cutoff := timelineCutoff(d.Status)

	timeline := make([]domain.TrackingStep, 0, cutoff+1)
	for i := 0; i <= cutoff; i++ {
		step := domain.TrackingStep{
			Step:        timelineSteps[i].step,
			Label:       timelineSteps[i].label,
			Description: timelineSteps[i].description,
			Done:        true,
			At:          stepTimestamp(d, timelineSteps[i].step),
		}
		timeline = append(timeline, step)
	}

	view := &domain.TrackingView{
		DonationID: d.ID.String(),
		FoodName:   d.FoodName,
		Status:     d.Status,
		Timeline:   timeline,
		UpdatedAt:  now,
		DonorLocation: &domain.TrackingPoint{
			Lat:     d.Latitude,
			Lng:     d.Longitude,
			Label:   "Pickup Location",
			Address: d.Address,
		},
	}

	if d.Donor != nil {
		view.DonorName = d.Donor.Name
	}
	if d.Receiver != nil {
		view.ReceiverName = d.Receiver.Name
		if d.Receiver.Latitude != nil && d.Receiver.Longitude != nil {
			view.ReceiverLocation = &domain.TrackingPoint{
				Lat:     *d.Receiver.Latitude,
				Lng:     *d.Receiver.Longitude,
				Label:   "Delivery Location",
				Address: d.Receiver.Address,
			}
		}
	}
	if d.Volunteer != nil {
		view.VolunteerName = d.Volunteer.Name
	}
	if d.VolunteerLat != nil && d.VolunteerLng != nil {
		view.VolunteerLocation = &domain.TrackingPoint{
			Lat:       *d.VolunteerLat,
			Lng:       *d.VolunteerLng,
			Label:     "Volunteer Position",
			UpdatedAt: d.VolunteerLocUpdatedAt,
		}
	}

	return view
}

func stepTimestamp(d *entities.Donation, step string) *time.Time {
	switch step {
	case "created":
		createdAt := d.CreatedAt
		return &createdAt
	case "accepted", "volunteer_notified":
		return d.AcceptedAt
	case "volunteer_assigned", "picked", "in_transit":
		return d.PickedAt
	case "completed":
		return d.CompletedAt
	}
	return nil
}
