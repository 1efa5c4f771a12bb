package notifications

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
)

// inlinePublisher stores notifications in the calling goroutine. It is used
// when no broker is configured.
type inlinePublisher struct {
	NotificationUsecase contracts.NotificationUsecase
}

func NewInlinePublisher(notificationUsecase contracts.NotificationUsecase) contracts.NotificationPublisher {
	return &inlinePublisher{NotificationUsecase: notificationUsecase}
}

func (p *inlinePublisher) Publish(ctx context.Context, message *models.NotificationMessage) error {
	return p.NotificationUsecase.StoreNotification(ctx, message)
}
