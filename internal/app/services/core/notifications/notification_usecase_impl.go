package notifications

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	Log                    *zap.Logger
}

func NewNotificationUsecase(notificationRepository contracts.NotificationRepository, logger *zap.Logger) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		Log:                    logger,
	}
}

func (uc *notificationUsecase) ListNotifications(ctx context.Context, user *models.AuthUser, pagination requests.Pagination) (*responses.NotificationList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.ListNotifications called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.UserID),
	)

	notifications, total, err := uc.NotificationRepository.FindByUserID(ctx, user.UserID, pagination)
	if err != nil {
		uc.Log.Error("notificationUsecase.ListNotifications error calling NotificationRepository.FindByUserID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	unread, err := uc.NotificationRepository.CountUnread(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	return &responses.NotificationList{
		Notifications: notifications,
		Unread:        unread,
		Total:         total,
	}, nil
}

func (uc *notificationUsecase) MarkAsRead(ctx context.Context, user *models.AuthUser, notificationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkAsRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("notification_id", notificationID),
	)

	rows, err := uc.NotificationRepository.MarkAsRead(ctx, notificationID, user.UserID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return exceptions.ErrNotFound(nil, "notification")
	}
	return nil
}

// StoreNotification persists one recipient's copy. Redelivered copies of the
// same event are dropped by the unique (event_id, user_id) index.
func (uc *notificationUsecase) StoreNotification(ctx context.Context, message *models.NotificationMessage) error {
	notification := &models.Notification{
		EventID: message.EventID,
		UserID:  message.UserID,
		Type:    message.Type,
		Title:   message.Title,
		Message: message.Message,
	}
	if len(message.Data) > 0 {
		raw, err := json.Marshal(message.Data)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		notification.Data = datatypes.JSON(raw)
	}

	if err := uc.NotificationRepository.Create(ctx, notification); err != nil {
		uc.Log.Error("notificationUsecase.StoreNotification error calling NotificationRepository.Create",
			zap.String(constvars.LoggingEventTypeKey, string(message.Type)),
			zap.String(constvars.LoggingUserIDKey, message.UserID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
