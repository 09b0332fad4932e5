package entities

import (
	"github.com/google/uuid"
)

type Feedback struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID uuid.UUID `gorm:"uniqueIndex" json:"donation_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	DonorID    uuid.UUID `json:"donor_id"`

	Rating           int    `json:"rating"`          // 1-5
	FreshnessScore   int    `json:"freshness_score"` // 0-10
	Quality          string `json:"quality"`         // excellent, good, average, poor
	Comments         string `json:"comments,omitempty"`
	WouldAcceptAgain bool   `json:"would_accept_again"`

	Receiver *User `gorm:"foreignKey:ReceiverID"`
	Donor    *User `gorm:"foreignKey:DonorID"`
	Timestamp
}
