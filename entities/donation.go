package entities

import (
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID     uuid.UUID  `gorm:"index" json:"donor_id"`
	ReceiverID  *uuid.UUID `json:"receiver_id,omitempty"`
	VolunteerID *uuid.UUID `json:"volunteer_id,omitempty"`

	FoodName    string `json:"food_name"`
	FoodType    string `json:"food_type"` // vegetarian, non-vegetarian, vegan, dessert, beverage, other
	Quantity    int    `json:"quantity"`
	Unit        string `gorm:"default:servings" json:"unit"`
	Description string `json:"description,omitempty"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	ExpiryTime  time.Time `gorm:"index" json:"expiry_time"`
	PickupStart time.Time `json:"pickup_start"`
	PickupEnd   time.Time `json:"pickup_end"`

	Freshness       string `gorm:"default:freshly-cooked" json:"freshness"`
	FoodHealthScore int    `gorm:"default:10" json:"food_health_score"`
	IsEmergency     bool   `gorm:"default:false" json:"is_emergency"`

	Status             string     `gorm:"index;default:pending" json:"status"` // pending, accepted, picked, completed, cancelled, expired
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	PickedAt           *time.Time `json:"picked_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`

	VolunteerLat          *float64   `json:"volunteer_lat,omitempty"`
	VolunteerLng          *float64   `json:"volunteer_lng,omitempty"`
	VolunteerLocUpdatedAt *time.Time `json:"volunteer_loc_updated_at,omitempty"`

	FeedbackID *uuid.UUID `json:"feedback_id,omitempty"`

	Donor     *User            `gorm:"foreignKey:DonorID"`
	Receiver  *User            `gorm:"foreignKey:ReceiverID"`
	Volunteer *User            `gorm:"foreignKey:VolunteerID"`
	Feedback  *Feedback        `gorm:"foreignKey:FeedbackID"`
	Images    []*DonationImage `gorm:"foreignKey:DonationID"`
	Timestamp
}

type DonationImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID uuid.UUID `gorm:"index" json:"donation_id"`
	URL        string    `json:"url"`
	Position   int       `json:"position"`

	Donation *Donation `gorm:"foreignKey:DonationID"`
	Timestamp
}
