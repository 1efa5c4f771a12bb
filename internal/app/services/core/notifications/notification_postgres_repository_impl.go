package notifications

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewNotificationPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.NotificationRepository {
	return &notificationPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *notificationPostgresRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := transactor.Conn(ctx, r.DB).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(notification).Error
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *notificationPostgresRepository) FindByUserID(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Notification, int64, error) {
	query := transactor.Conn(ctx, r.DB).Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, exceptions.ErrPostgresDBCountData(err)
	}

	if pagination.PageSize > 0 {
		query = query.Limit(pagination.PageSize).Offset(pagination.Offset())
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	return notifications, total, nil
}

func (r *notificationPostgresRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := transactor.Conn(ctx, r.DB).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, exceptions.ErrPostgresDBCountData(err)
	}
	return count, nil
}

func (r *notificationPostgresRepository) MarkAsRead(ctx context.Context, notificationID, userID string) (int64, error) {
	result := transactor.Conn(ctx, r.DB).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}
