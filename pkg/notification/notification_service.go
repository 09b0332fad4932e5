package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	// PushChannel delivers a persisted notification to a user's live
	// connection. Delivery is best-effort: an offline user simply sees the
	// notification on their next poll.
	PushChannel interface {
		Push(ctx context.Context, userID string, notification *domain.Notification) error
	}

	NotificationService interface {
		Notify(ctx context.Context, userID, notifType, title, message string, payload map[string]any) error
		NotifyAll(ctx context.Context, userIDs []string, notifType, title, message string, payload map[string]any)
		GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, error)
		GetUnreadCount(ctx context.Context, userID string) (int64, error)
		MarkAsRead(ctx context.Context, id, userID string) error
		MarkAllAsRead(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		push                   PushChannel
		now                    func() time.Time
	}
)

func NewNotificationService(notificationRepository NotificationRepository, push PushChannel) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		push:                   push,
		now:                    time.Now,
	}
}

// Notify persists the notification and then pushes it over the live channel.
// Push failures are logged and swallowed so a notification outage never
// surfaces into the operation that triggered it.
func (s *notificationService) Notify(ctx context.Context, userID, notifType, title, message string, payload map[string]any) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var payloadJSON string
	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = string(raw)
	}

	notification := &entities.Notification{
		ID:      uuid.New(),
		UserID:  userUUID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Payload: payloadJSON,
	}

	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		return err
	}

	if s.push != nil {
		view := toDomainNotification(notification)
		view.Payload = payload
		if err := s.push.Push(ctx, userID, view); err != nil {
			log.Warnf("push notification to user %s failed: %v", userID, err)
		}
	}

	return nil
}

// NotifyAll notifies each user independently; one user's failure never
// blocks the rest.
func (s *notificationService) NotifyAll(ctx context.Context, userIDs []string, notifType, title, message string, payload map[string]any) {
	for _, userID := range userIDs {
		if err := s.Notify(ctx, userID, notifType, title, message, payload); err != nil {
			log.Warnf("notify user %s failed: %v", userID, err)
		}
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, toDomainNotification(n))
	}

	return result, count, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepository.GetUnreadCount(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	ok, err := s.notificationRepository.MarkAsRead(ctx, id, userID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllAsRead(ctx, userID, s.now())
}

func toDomainNotification(n *entities.Notification) *domain.Notification {
	result := &domain.Notification{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}

	if n.Payload != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(n.Payload), &payload); err == nil {
			result.Payload = payload
		}
	}

	return result
}
