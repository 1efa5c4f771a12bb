package payments

import (
	"context"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const expiryBatchSize = 100

type paymentUsecase struct {
	Transactor            contracts.Transactor
	PaymentRepository     contracts.PaymentRepository
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	AppointmentUsecase    contracts.AppointmentUsecase
	GatewayService        contracts.PaymentGatewayService
	ReceiptArchiver       contracts.ReceiptArchiver
	EventDispatcher       contracts.EventDispatcher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewPaymentUsecase(
	transactor contracts.Transactor,
	paymentRepository contracts.PaymentRepository,
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	appointmentUsecase contracts.AppointmentUsecase,
	gatewayService contracts.PaymentGatewayService,
	receiptArchiver contracts.ReceiptArchiver,
	eventDispatcher contracts.EventDispatcher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		Transactor:            transactor,
		PaymentRepository:     paymentRepository,
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		AppointmentUsecase:    appointmentUsecase,
		GatewayService:        gatewayService,
		ReceiptArchiver:       receiptArchiver,
		EventDispatcher:       eventDispatcher,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *paymentUsecase) CreateGatewayPayment(ctx context.Context, user *models.AuthUser, request *requests.CreateVNPayPayment) (*responses.CreateVNPayPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateGatewayPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || !user.IsPatient() || appointment.PatientID != user.ProfileID {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}
	if appointment.Status != models.AppointmentStatusPending && appointment.Status != models.AppointmentStatusConfirmed {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientPaymentInvalidStatus)
	}

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}
	if payment != nil && payment.Status == models.PaymentStatusPaid {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientPaymentAlreadyPaid)
	}
	if payment != nil && payment.Status == models.PaymentStatusRefunded {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientPaymentInvalidStatus)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}
	if doctor.ConsultationFee <= 0 {
		return nil, exceptions.ErrBusiness(nil, constvars.ErrClientPaymentNoFee)
	}

	// A PENDING payment keeps its attempt so that URLs handed out earlier stay
	// payable; any other state starts a new attempt.
	attemptRef := newAttemptRef()
	if payment != nil && payment.Status == models.PaymentStatusPending && payment.AttemptRef != "" {
		attemptRef = payment.AttemptRef
	}

	paymentURL, err := uc.GatewayService.BuildPaymentURL(ctx, &models.GatewayPaymentRequest{
		TxnRef:     appointment.ID,
		AttemptRef: attemptRef,
		Amount:     doctor.ConsultationFee,
		OrderInfo:  fmt.Sprintf(constvars.PaymentOrderInfoFormat, appointment.ID),
		IPAddr:     request.ClientIP,
		BankCode:   request.BankCode,
		Locale:     request.Locale,
		ReturnURL:  request.ReturnURL,
		CreatedAt:  uc.now(),
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateGatewayPayment error calling GatewayService.BuildPaymentURL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	payment, err = uc.upsertPendingPayment(ctx, appointment, payment, doctor.ConsultationFee, paymentURL, attemptRef)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateGatewayPayment error storing payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreateGatewayPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
	)

	return &responses.CreateVNPayPayment{
		PaymentURL:  paymentURL,
		Payment:     payment,
		Appointment: appointment,
	}, nil
}

// upsertPendingPayment leaves exactly one PENDING row for the appointment.
func (uc *paymentUsecase) upsertPendingPayment(ctx context.Context, appointment *models.Appointment, existing *models.Payment, amount int64, paymentURL, attemptRef string) (*models.Payment, error) {
	if existing == nil {
		payment := &models.Payment{
			AppointmentID: appointment.ID,
			PatientID:     appointment.PatientID,
			Amount:        amount,
			Method:        models.PaymentMethodVNPay,
			Status:        models.PaymentStatusPending,
			PaymentURL:    paymentURL,
			AttemptRef:    attemptRef,
		}
		if err := uc.PaymentRepository.Create(ctx, payment); err != nil {
			return nil, err
		}
		return payment, nil
	}

	var rows int64
	var err error
	if existing.Status.CanRetry() {
		rows, err = uc.PaymentRepository.Rearm(ctx, existing.ID, amount, paymentURL, attemptRef)
	} else {
		rows, err = uc.PaymentRepository.RefreshPending(ctx, existing.ID, amount, paymentURL, attemptRef)
	}
	if err != nil {
		return nil, err
	}

	current, err := uc.PaymentRepository.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrNotFound(nil, "payment")
	}
	if rows == 0 {
		if current.Status == models.PaymentStatusPaid {
			return nil, exceptions.ErrBusiness(nil, constvars.ErrClientPaymentAlreadyPaid)
		}
		return nil, exceptions.ErrConflict(nil, constvars.ErrClientPaymentInProgress)
	}
	return current, nil
}

// newAttemptRef returns a short alphanumeric reference that survives the
// gateway's order info rules.
func newAttemptRef() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// ReconcileCallback applies one gateway notification. Only the delivery whose
// conditional update moves the current attempt out of PENDING produces side
// effects. Later deliveries, and deliveries for an earlier attempt, report the
// stored outcome.
func (uc *paymentUsecase) ReconcileCallback(ctx context.Context, params url.Values) (*responses.ReconcileResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ReconcileCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, params.Get(constvars.VNPayParamTxnRef)),
	)

	callback, err := uc.GatewayService.VerifyCallback(ctx, params)
	if err != nil {
		if exceptions.HasCode(err, constvars.ErrCodeInvalidSignature) {
			utils.LogSecurityEvent(uc.Log, constvars.PaymentSecurityEventBadHash, requestID, "high",
				zap.String(constvars.LoggingAppointmentIDKey, params.Get(constvars.VNPayParamTxnRef)),
			)
		}
		return nil, err
	}

	payment, err := uc.PaymentRepository.FindByAppointmentID(ctx, callback.TxnRef)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrNotFound(nil, "payment")
	}
	if callback.AttemptRef != payment.AttemptRef {
		utils.LogBusinessEvent(uc.Log, constvars.PaymentBusinessEventStale, requestID,
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.String("callback_attempt", callback.AttemptRef),
		)
		return uc.replayResult(requestID, payment), nil
	}
	if !callback.MatchesAmount(payment.Amount) {
		utils.LogSecurityEvent(uc.Log, constvars.PaymentSecurityEventMismatch, requestID, "medium",
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Int64("callback_amount", callback.GatewayAmount),
			zap.Int64("payment_amount", payment.Amount*constvars.VNPayAmountFactor),
		)
		return nil, exceptions.ErrPaymentAmountMismatch(nil, callback.GatewayAmount, payment.Amount*constvars.VNPayAmountFactor)
	}

	if payment.Status != models.PaymentStatusPending {
		return uc.replayResult(requestID, payment), nil
	}

	succeeded := callback.Succeeded()
	target := models.PaymentStatusFailed
	if succeeded {
		target = models.PaymentStatusPaid
	}
	now := uc.now()

	var applied, promoted bool
	err = uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		fields := map[string]interface{}{
			"response_code":  callback.ResponseCode,
			"transaction_id": callback.TransactionNo,
			"bank_code":      callback.BankCode,
		}
		if succeeded {
			fields["paid_at"] = now
		}

		rows, err := uc.PaymentRepository.SettleAttempt(txCtx, payment.ID, callback.AttemptRef, target, fields)
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}
		applied = true

		if succeeded {
			rows, err := uc.AppointmentRepository.TransitionStatus(txCtx, payment.AppointmentID,
				[]models.AppointmentStatus{models.AppointmentStatusPending},
				models.AppointmentStatusConfirmed,
				map[string]interface{}{"confirmed_at": now},
			)
			if err != nil {
				return err
			}
			promoted = rows > 0
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.ReconcileCallback error applying callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBRunTransaction(err)
	}

	current, err := uc.PaymentRepository.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrNotFound(nil, "payment")
	}
	if !applied {
		return uc.replayResult(requestID, current), nil
	}

	uc.afterReconcile(ctx, requestID, current, callback, promoted)

	message := constvars.PaymentFailedMessage
	if succeeded {
		message = constvars.PaymentSuccessMessage
	}
	return &responses.ReconcileResult{
		Success:       succeeded,
		AppointmentID: current.AppointmentID,
		PaymentID:     current.ID,
		Status:        current.Status,
		Message:       message,
	}, nil
}

func (uc *paymentUsecase) replayResult(requestID string, payment *models.Payment) *responses.ReconcileResult {
	utils.LogBusinessEvent(uc.Log, constvars.PaymentBusinessEventReplayed, requestID,
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String("payment_status", string(payment.Status)),
	)
	return &responses.ReconcileResult{
		Success:          payment.Status == models.PaymentStatusPaid,
		AlreadyProcessed: true,
		AppointmentID:    payment.AppointmentID,
		PaymentID:        payment.ID,
		Status:           payment.Status,
		Message:          constvars.PaymentAlreadyProcessed,
	}
}

// afterReconcile runs the side effects of the first applied callback. Failures
// are logged and never change the reconciliation outcome.
func (uc *paymentUsecase) afterReconcile(ctx context.Context, requestID string, payment *models.Payment, callback *models.GatewayCallback, promoted bool) {
	eventType := models.EventPaymentFailed
	businessEvent := constvars.PaymentBusinessEventFailed
	if payment.Status == models.PaymentStatusPaid {
		eventType = models.EventPaymentSucceeded
		businessEvent = constvars.PaymentBusinessEventPaid
	}
	utils.LogBusinessEvent(uc.Log, businessEvent, requestID,
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingAppointmentIDKey, payment.AppointmentID),
		zap.Int64("amount", payment.Amount),
	)

	if payment.Status == models.PaymentStatusPaid && uc.ReceiptArchiver != nil {
		if err := uc.ReceiptArchiver.ArchiveReceipt(ctx, payment, callback); err != nil {
			uc.Log.Warn("paymentUsecase.afterReconcile receipt not archived",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.ID),
				zap.Error(err),
			)
		}
	}

	if uc.EventDispatcher == nil {
		return
	}
	appointment, err := uc.AppointmentRepository.FindByID(ctx, payment.AppointmentID)
	if err != nil || appointment == nil {
		uc.Log.Warn("paymentUsecase.afterReconcile appointment not loaded for events",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, payment.AppointmentID),
			zap.Error(err),
		)
		return
	}

	event := models.NewDomainEvent(eventType, appointment)
	event.PaymentID = payment.ID
	event.Amount = payment.Amount
	uc.EventDispatcher.Dispatch(ctx, event)

	if promoted {
		uc.EventDispatcher.Dispatch(ctx, models.NewDomainEvent(models.EventAppointmentConfirmed, appointment))
	}
}

func (uc *paymentUsecase) GetPaymentStatus(ctx context.Context, user *models.AuthUser, paymentID string) (*responses.PaymentStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
	)

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrNotFound(nil, "payment")
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, payment.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}
	if !uc.AppointmentUsecase.CheckUserAccess(user, appointment) {
		return nil, exceptions.ErrForbidden(nil, constvars.ErrClientNotAuthorized)
	}

	return &responses.PaymentStatus{
		Payment:     payment,
		Appointment: appointment,
	}, nil
}

// ExpireStalePayments cancels PENDING payments whose gateway window has passed.
func (uc *paymentUsecase) ExpireStalePayments(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	before := uc.now().Add(-time.Duration(uc.InternalConfig.App.PaymentExpiredTimeInMinutes) * time.Minute)

	payments, err := uc.PaymentRepository.FindPendingCreatedBefore(ctx, before, expiryBatchSize)
	if err != nil {
		uc.Log.Error("paymentUsecase.ExpireStalePayments error calling PaymentRepository.FindPendingCreatedBefore",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	expired := 0
	for _, payment := range payments {
		rows, err := uc.PaymentRepository.TransitionStatus(ctx, payment.ID,
			[]models.PaymentStatus{models.PaymentStatusPending},
			models.PaymentStatusCancelled,
			nil,
		)
		if err != nil {
			uc.Log.Error("paymentUsecase.ExpireStalePayments error cancelling payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.ID),
				zap.Error(err),
			)
			continue
		}
		if rows == 0 {
			continue
		}
		expired++
		utils.LogBusinessEvent(uc.Log, constvars.PaymentBusinessEventExpired, requestID,
			zap.String(constvars.LoggingPaymentIDKey, payment.ID),
			zap.String(constvars.LoggingAppointmentIDKey, payment.AppointmentID),
		)
	}
	return expired, nil
}
