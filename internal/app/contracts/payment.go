package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"net/url"
	"time"
)

type PaymentUsecase interface {
	CreateGatewayPayment(ctx context.Context, user *models.AuthUser, request *requests.CreateVNPayPayment) (*responses.CreateVNPayPayment, error)
	ReconcileCallback(ctx context.Context, params url.Values) (*responses.ReconcileResult, error)
	GetPaymentStatus(ctx context.Context, user *models.AuthUser, paymentID string) (*responses.PaymentStatus, error)
	ExpireStalePayments(ctx context.Context) (int, error)
}

type PaymentRepository interface {
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	// FindByAppointmentID returns nil without error when no payment exists yet.
	FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	// Rearm moves a FAILED or CANCELLED payment back to PENDING for a new attempt.
	Rearm(ctx context.Context, paymentID string, amount int64, paymentURL, attemptRef string) (int64, error)
	// RefreshPending stores a new URL on a payment that is still PENDING.
	RefreshPending(ctx context.Context, paymentID string, amount int64, paymentURL, attemptRef string) (int64, error)
	TransitionStatus(ctx context.Context, paymentID string, from []models.PaymentStatus, to models.PaymentStatus, fields map[string]interface{}) (int64, error)
	// SettleAttempt is the callback transition: PENDING to a final status for
	// the given attempt only.
	SettleAttempt(ctx context.Context, paymentID, attemptRef string, to models.PaymentStatus, fields map[string]interface{}) (int64, error)
	FindPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]models.Payment, error)
}

type PaymentGatewayService interface {
	BuildPaymentURL(ctx context.Context, request *models.GatewayPaymentRequest) (string, error)
	// VerifyCallback checks the secure hash and decodes the gateway fields.
	VerifyCallback(ctx context.Context, params url.Values) (*models.GatewayCallback, error)
}

// ReceiptArchiver stores an immutable copy of a settled payment.
type ReceiptArchiver interface {
	ArchiveReceipt(ctx context.Context, payment *models.Payment, callback *models.GatewayCallback) error
}
