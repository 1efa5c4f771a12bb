package payments

import (
	"context"
	"errors"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/app/services/shared/transactor"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var retryablePaymentStatuses = []models.PaymentStatus{
	models.PaymentStatusFailed,
	models.PaymentStatusCancelled,
}

type paymentPostgresRepository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewPaymentPostgresRepository(db *gorm.DB, logger *zap.Logger) contracts.PaymentRepository {
	return &paymentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *paymentPostgresRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := transactor.Conn(ctx, r.DB).First(&payment, "id = ?", paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (r *paymentPostgresRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	var payment models.Payment
	err := transactor.Conn(ctx, r.DB).First(&payment, "appointment_id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (r *paymentPostgresRepository) Create(ctx context.Context, payment *models.Payment) error {
	err := transactor.Conn(ctx, r.DB).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return exceptions.ErrConflict(err, constvars.ErrClientPaymentInProgress)
	} else if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *paymentPostgresRepository) Rearm(ctx context.Context, paymentID string, amount int64, paymentURL, attemptRef string) (int64, error) {
	result := transactor.Conn(ctx, r.DB).
		Model(&models.Payment{}).
		Where("id = ? AND status IN ?", paymentID, retryablePaymentStatuses).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusPending,
			"amount":         amount,
			"payment_url":    paymentURL,
			"attempt_ref":    attemptRef,
			"response_code":  "",
			"transaction_id": "",
			"bank_code":      "",
		})
	if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentPostgresRepository) RefreshPending(ctx context.Context, paymentID string, amount int64, paymentURL, attemptRef string) (int64, error) {
	result := transactor.Conn(ctx, r.DB).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"amount":      amount,
			"payment_url": paymentURL,
			"attempt_ref": attemptRef,
		})
	if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentPostgresRepository) TransitionStatus(ctx context.Context, paymentID string, from []models.PaymentStatus, to models.PaymentStatus, fields map[string]interface{}) (int64, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		updates[key] = value
	}
	updates["status"] = to

	result := transactor.Conn(ctx, r.DB).
		Model(&models.Payment{}).
		Where("id = ? AND status IN ?", paymentID, from).
		Updates(updates)
	if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}

// SettleAttempt moves a PENDING payment to its final status, but only while
// attemptRef is still the current attempt.
func (r *paymentPostgresRepository) SettleAttempt(ctx context.Context, paymentID, attemptRef string, to models.PaymentStatus, fields map[string]interface{}) (int64, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		updates[key] = value
	}
	updates["status"] = to

	result := transactor.Conn(ctx, r.DB).
		Model(&models.Payment{}).
		Where("id = ? AND status = ? AND attempt_ref = ?", paymentID, models.PaymentStatusPending, attemptRef).
		Updates(updates)
	if result.Error != nil {
		return 0, exceptions.ErrPostgresDBUpdateData(result.Error)
	}
	return result.RowsAffected, nil
}

// FindPendingCreatedBefore uses updated_at so that a re-armed attempt gets a fresh window.
func (r *paymentPostgresRepository) FindPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	query := transactor.Conn(ctx, r.DB).
		Where("status = ? AND updated_at < ?", models.PaymentStatusPending, before).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&payments).Error; err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return payments, nil
}
