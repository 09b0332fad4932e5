package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusPicked    = "picked"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

const (
	FreshnessFreshlyCooked = "freshly-cooked"
	FreshnessStored4Hrs    = "stored-4hrs"
	FreshnessStored8Hrs    = "stored-8hrs"
	FreshnessStored12Hrs   = "stored-12hrs"
	FreshnessOther         = "other"
)

const (
	PointsCreateDonation   = 10
	PointsAcceptDonation   = 5
	PointsVolunteerPickup  = 20
	PointsCompleteDonation = 50
)

const DefaultCancellationReason = "Cancelled by donor"

var (
	MessageSuccessCreateDonation   = "donation created successfully"
	MessageSuccessGetDonations     = "donations retrieved successfully"
	MessageSuccessUpdateDonation   = "donation updated successfully"
	MessageSuccessAcceptDonation   = "donation accepted successfully"
	MessageSuccessCompleteDonation = "donation completed successfully"
	MessageSuccessCancelDonation   = "donation cancelled successfully"
	MessageSuccessSubmitFeedback   = "feedback submitted successfully"
	MessageSuccessGetTracking      = "tracking retrieved successfully"

	MessageFailedCreateDonation   = "failed to create donation"
	MessageFailedGetDonations     = "failed to retrieve donations"
	MessageFailedUpdateDonation   = "failed to update donation"
	MessageFailedAcceptDonation   = "failed to accept donation"
	MessageFailedCompleteDonation = "failed to complete donation"
	MessageFailedCancelDonation   = "failed to cancel donation"
	MessageFailedSubmitFeedback   = "failed to submit feedback"
	MessageFailedGetTracking      = "failed to retrieve tracking"

	// Error taxonomy. Handlers and tests distinguish the three categories
	// with errors.Is; the wrapped variants carry the violated invariant.
	ErrDonationNotFound         = errors.New("donation not found")
	ErrDonationNotAuthorized    = errors.New("not authorized for this donation")
	ErrInvalidDonationState     = errors.New("invalid donation state")
	ErrDonationNotAvailable     = fmt.Errorf("%w: donation not available for acceptance", ErrInvalidDonationState)
	ErrDonationNotForPickup     = fmt.Errorf("%w: donation not available for pickup", ErrInvalidDonationState)
	ErrVolunteerAlreadyAssigned = fmt.Errorf("%w: donation already has a volunteer assigned", ErrInvalidDonationState)
	ErrDonationAlreadyPicked    = fmt.Errorf("%w: cannot cancel a donation after pickup", ErrInvalidDonationState)
	ErrDonationNotEditable      = fmt.Errorf("%w: cannot update a donation that has been accepted", ErrInvalidDonationState)
	ErrDonationNotCompleted     = fmt.Errorf("%w: donation is not completed yet", ErrInvalidDonationState)
	ErrFeedbackAlreadyGiven     = fmt.Errorf("%w: feedback already submitted for this donation", ErrInvalidDonationState)
	ErrInvalidCoordinates       = errors.New("invalid coordinates")
)

type (
	Coordinates struct {
		Lat float64 `json:"lat" validate:"required,latitude"`
		Lng float64 `json:"lng" validate:"required,longitude"`
	}

	LocationRequest struct {
		Address     string      `json:"address" validate:"required"`
		Coordinates Coordinates `json:"coordinates" validate:"required"`
	}

	TimeSlotRequest struct {
		Start string `json:"start" validate:"required"`
		End   string `json:"end" validate:"required"`
	}

	CreateDonationRequest struct {
		FoodName          string          `json:"food_name" validate:"required"`
		FoodType          string          `json:"food_type" validate:"required,oneof=vegetarian non-vegetarian vegan dessert beverage other"`
		Quantity          int             `json:"quantity" validate:"required,min=1"`
		Unit              string          `json:"unit" validate:"omitempty,oneof=servings plates kg pieces liters"`
		Description       string          `json:"description" validate:"omitempty"`
		Location          LocationRequest `json:"location" validate:"required"`
		ExpiryTime        string          `json:"expiry_time" validate:"required"`
		AvailableTimeSlot TimeSlotRequest `json:"available_time_slot" validate:"required"`
		Freshness         string          `json:"freshness" validate:"omitempty,oneof=freshly-cooked stored-4hrs stored-8hrs stored-12hrs other"`
		FoodHealthScore   *int            `json:"food_health_score" validate:"omitempty,min=0,max=10"`
		IsEmergency       bool            `json:"is_emergency"`
	}

	UpdateDonationRequest struct {
		FoodName        string `json:"food_name" validate:"omitempty"`
		FoodType        string `json:"food_type" validate:"omitempty,oneof=vegetarian non-vegetarian vegan dessert beverage other"`
		Quantity        int    `json:"quantity" validate:"omitempty,min=1"`
		Unit            string `json:"unit" validate:"omitempty,oneof=servings plates kg pieces liters"`
		Description     string `json:"description" validate:"omitempty"`
		ExpiryTime      string `json:"expiry_time" validate:"omitempty"`
		Freshness       string `json:"freshness" validate:"omitempty,oneof=freshly-cooked stored-4hrs stored-8hrs stored-12hrs other"`
		FoodHealthScore *int   `json:"food_health_score" validate:"omitempty,min=0,max=10"`
		IsEmergency     *bool  `json:"is_emergency"`
	}

	// ListDonationsRequest filters the public listing. Latitude and Longitude
	// are optional; when both are present the listing is restricted to
	// MaxDistance kilometers and each row is annotated with its distance.
	ListDonationsRequest struct {
		Status      string   `json:"status" validate:"omitempty,oneof=pending accepted picked completed cancelled expired"`
		FoodType    string   `json:"food_type" validate:"omitempty,oneof=vegetarian non-vegetarian vegan dessert beverage other"`
		MinQuantity int      `json:"min_quantity" validate:"omitempty,min=1"`
		IsEmergency bool     `json:"is_emergency"`
		Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
		Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
		MaxDistance float64  `json:"max_distance" validate:"omitempty,min=0"`
		Page        int      `json:"page"`
		Limit       int      `json:"limit"`
	}

	CancelDonationRequest struct {
		Reason string `json:"reason" validate:"omitempty"`
	}

	FeedbackRequest struct {
		Rating           int    `json:"rating" validate:"required,min=1,max=5"`
		FreshnessScore   *int   `json:"freshness_score" validate:"required,min=0,max=10"`
		Quality          string `json:"quality" validate:"required,oneof=excellent good average poor"`
		Comments         string `json:"comments" validate:"omitempty"`
		WouldAcceptAgain bool   `json:"would_accept_again"`
	}

	// AdminPatchDonationRequest is the administrative escape hatch. It is the
	// only write that bypasses the lifecycle guards, restricted to this
	// enumerated field set.
	AdminPatchDonationRequest struct {
		Status             string `json:"status" validate:"omitempty,oneof=pending accepted picked completed cancelled expired"`
		ReceiverID         string `json:"receiver_id" validate:"omitempty,uuid"`
		VolunteerID        string `json:"volunteer_id" validate:"omitempty,uuid"`
		FoodHealthScore    *int   `json:"food_health_score" validate:"omitempty,min=0,max=10"`
		IsEmergency        *bool  `json:"is_emergency"`
		CancellationReason string `json:"cancellation_reason" validate:"omitempty"`
	}

	VolunteerLocationRequest struct {
		Lat float64 `json:"lat" validate:"required,latitude"`
		Lng float64 `json:"lng" validate:"required,longitude"`
	}

	PartySummary struct {
		ID               string `json:"id"`
		Name             string `json:"name"`
		Phone            string `json:"phone,omitempty"`
		OrganizationName string `json:"organization_name,omitempty"`
	}

	Location struct {
		Address     string      `json:"address"`
		Coordinates Coordinates `json:"coordinates"`
	}

	TimeSlot struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}

	VolunteerLocation struct {
		Lat       float64   `json:"lat"`
		Lng       float64   `json:"lng"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	Donation struct {
		ID                 string             `json:"id"`
		DonorID            string             `json:"donor_id"`
		ReceiverID         string             `json:"receiver_id,omitempty"`
		VolunteerID        string             `json:"volunteer_id,omitempty"`
		Donor              *PartySummary      `json:"donor,omitempty"`
		Receiver           *PartySummary      `json:"receiver,omitempty"`
		Volunteer          *PartySummary      `json:"volunteer,omitempty"`
		FoodName           string             `json:"food_name"`
		FoodType           string             `json:"food_type"`
		Quantity           int                `json:"quantity"`
		Unit               string             `json:"unit"`
		Description        string             `json:"description,omitempty"`
		Images             []string           `json:"images"`
		Location           Location           `json:"location"`
		DistanceKm         *float64           `json:"distance_km,omitempty"`
		ExpiryTime         time.Time          `json:"expiry_time"`
		AvailableTimeSlot  TimeSlot           `json:"available_time_slot"`
		Freshness          string             `json:"freshness"`
		FoodHealthScore    int                `json:"food_health_score"`
		IsEmergency        bool               `json:"is_emergency"`
		Status             string             `json:"status"`
		AcceptedAt         *time.Time         `json:"accepted_at,omitempty"`
		PickedAt           *time.Time         `json:"picked_at,omitempty"`
		CompletedAt        *time.Time         `json:"completed_at,omitempty"`
		CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
		CancellationReason string             `json:"cancellation_reason,omitempty"`
		VolunteerLocation  *VolunteerLocation `json:"volunteer_location,omitempty"`
		FeedbackID         string             `json:"feedback_id,omitempty"`
		CreatedAt          time.Time          `json:"created_at"`
		UpdatedAt          time.Time          `json:"updated_at"`
	}

	Feedback struct {
		ID               string    `json:"id"`
		DonationID       string    `json:"donation_id"`
		ReceiverID       string    `json:"receiver_id"`
		DonorID          string    `json:"donor_id"`
		Rating           int       `json:"rating"`
		FreshnessScore   int       `json:"freshness_score"`
		Quality          string    `json:"quality"`
		Comments         string    `json:"comments,omitempty"`
		WouldAcceptAgain bool      `json:"would_accept_again"`
		CreatedAt        time.Time `json:"created_at"`
	}

	TrackingStep struct {
		Step        string     `json:"step"`
		Label       string     `json:"label"`
		Description string     `json:"description"`
		At          *time.Time `json:"at,omitempty"`
		Done        bool       `json:"done"`
	}

	TrackingPoint struct {
		Lat       float64    `json:"lat"`
		Lng       float64    `json:"lng"`
		Label     string     `json:"label"`
		Address   string     `json:"address,omitempty"`
		UpdatedAt *time.Time `json:"updated_at,omitempty"`
	}

	TrackingView struct {
		DonationID        string         `json:"donation_id"`
		FoodName          string         `json:"food_name"`
		Status            string         `json:"status"`
		DonorLocation     *TrackingPoint `json:"donor_location,omitempty"`
		ReceiverLocation  *TrackingPoint `json:"receiver_location,omitempty"`
		VolunteerLocation *TrackingPoint `json:"volunteer_location,omitempty"`
		DonorName         string         `json:"donor_name,omitempty"`
		ReceiverName      string         `json:"receiver_name,omitempty"`
		VolunteerName     string         `json:"volunteer_name,omitempty"`
		Timeline          []TrackingStep `json:"timeline"`
		UpdatedAt         time.Time      `json:"updated_at"`
	}

	DonationStatistics struct {
		TotalDonations       int    `json:"total_donations"`
		CompletedDonations   int    `json:"completed_donations"`
		PendingDonations     int    `json:"pending_donations"`
		TotalMealsDonated    int    `json:"total_meals_donated"`
		EstimatedMealsServed int    `json:"estimated_meals_served"`
		EstimatedImpact      string `json:"estimated_impact"`
	}
)
