package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

// EventDispatcher receives domain events after the state change committed.
// Dispatch never fails the caller's operation.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event models.DomainEvent)
}

type NotificationPublisher interface {
	Publish(ctx context.Context, message *models.NotificationMessage) error
}

type NotificationUsecase interface {
	ListNotifications(ctx context.Context, user *models.AuthUser, pagination requests.Pagination) (*responses.NotificationList, error)
	MarkAsRead(ctx context.Context, user *models.AuthUser, notificationID string) error
	StoreNotification(ctx context.Context, message *models.NotificationMessage) error
}

type NotificationRepository interface {
	// Create ignores a second copy of the same event for the same user.
	Create(ctx context.Context, notification *models.Notification) error
	FindByUserID(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) (int64, error)
}
