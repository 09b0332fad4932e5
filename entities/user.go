package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Phone    string    `json:"phone"`
	Password string    `json:"-"`
	Role     string    `json:"role"` // donor, receiver, volunteer, admin

	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	EmailVerified       bool       `json:"email_verified"`
	VerificationToken   string     `json:"-"`
	VerificationExpires *time.Time `json:"-"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`

	Points int `gorm:"default:0" json:"points"`

	OrganizationName string     `json:"organization_name,omitempty"`
	OrganizationType string     `json:"organization_type,omitempty"`
	ProfileImageURL  string     `json:"profile_image_url,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	LastLogin        *time.Time `json:"last_login,omitempty"`

	Badges []*Badge `gorm:"foreignKey:UserID" json:"badges,omitempty"`
	Timestamp
}

type Badge struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_user_badge" json:"user_id"`
	Name     string    `gorm:"uniqueIndex:idx_user_badge" json:"name"`
	EarnedAt time.Time `json:"earned_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
