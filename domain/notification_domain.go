package domain

import (
	"errors"
	"time"
)

const (
	NotificationDonationAccepted  = "donation_accepted"
	NotificationDonationAvailable = "donation_available"
	NotificationDonationPicked    = "donation_picked"
	NotificationDonationCompleted = "donation_completed"
	NotificationDonationCancelled = "donation_cancelled"
	NotificationAdminVerification = "admin_verification"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"
	MessageFailedGetNotifications  = "failed to retrieve notifications"
	MessageFailedMarkRead          = "failed to mark notification as read"

	ErrNotificationNotFound = errors.New("notification not found")
)

type (
	Notification struct {
		ID        string         `json:"id"`
		UserID    string         `json:"user_id"`
		Type      string         `json:"type"`
		Title     string         `json:"title"`
		Message   string         `json:"message"`
		Payload   map[string]any `json:"payload,omitempty"`
		IsRead    bool           `json:"is_read"`
		ReadAt    *time.Time     `json:"read_at,omitempty"`
		CreatedAt time.Time      `json:"created_at"`
	}
)
