package payments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type receiptDocument struct {
	Payment    *models.Payment   `json:"payment"`
	Gateway    map[string]string `json:"gateway"`
	ArchivedAt time.Time         `json:"archivedAt"`
}

type receiptArchiver struct {
	Storage contracts.Storage
	Log     *zap.Logger
}

// NewReceiptArchiver writes settled payments to object storage as JSON.
func NewReceiptArchiver(storage contracts.Storage, logger *zap.Logger) contracts.ReceiptArchiver {
	return &receiptArchiver{
		Storage: storage,
		Log:     logger,
	}
}

func (a *receiptArchiver) ArchiveReceipt(ctx context.Context, payment *models.Payment, callback *models.GatewayCallback) error {
	requestID := utils.GetRequestID(ctx)
	objectName := fmt.Sprintf(constvars.PaymentReceiptObjectFormat, payment.AppointmentID, payment.ID)

	document := receiptDocument{
		Payment:    payment,
		ArchivedAt: time.Now().UTC(),
	}
	if callback != nil {
		document.Gateway = callback.Raw
	}

	if err := a.Storage.PutJSON(ctx, objectName, document); err != nil {
		a.Log.Error("receiptArchiver.ArchiveReceipt error calling Storage.PutJSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return err
	}

	a.Log.Info("receiptArchiver.ArchiveReceipt stored",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String("object_name", objectName),
	)
	return nil
}
