package controllers

import (
	"errors"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type PaymentController struct {
	Log             *zap.Logger
	PaymentUsecase  contracts.PaymentUsecase
	FrontendBaseURL string
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, frontendBaseURL string) *PaymentController {
	return &PaymentController{
		Log:             logger,
		PaymentUsecase:  paymentUsecase,
		FrontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
	}
}

func (ctrl *PaymentController) CreateVNPayPayment(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateVNPayPayment)
	if err := decodeAndValidate(ctrl.Log, r, request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	request.ClientIP = utils.ClientIP(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.PaymentUsecase.CreateGatewayPayment(ctx, user, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentCreatedSuccess, result)
}

// VNPayCallback handles the browser redirect back from the gateway and sends
// the user on to the frontend result page.
func (ctrl *PaymentController) VNPayCallback(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	ctx, cancel := requestContext(r)
	defer cancel()

	success := false
	appointmentID := params.Get(constvars.VNPayParamTxnRef)
	message := constvars.PaymentFailedMessage

	result, err := ctrl.PaymentUsecase.ReconcileCallback(ctx, params)
	if err != nil {
		ctrl.Log.Warn("Payment callback rejected",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			message = customErr.ClientMessage
		}
	} else {
		success = result.Success
		appointmentID = result.AppointmentID
		message = result.Message
	}

	query := url.Values{}
	query.Set(constvars.PaymentResultSuccessParam, strconv.FormatBool(success))
	query.Set(constvars.PaymentResultAppointmentID, appointmentID)
	query.Set(constvars.PaymentResultMessageParam, message)

	http.Redirect(w, r, ctrl.FrontendBaseURL+constvars.PaymentResultPath+"?"+query.Encode(), http.StatusFound)
}

// VNPayIPN answers the gateway's server-to-server notification. The answer is
// always 200 with the gateway's acknowledgment shape; internal errors are only
// logged.
func (ctrl *PaymentController) VNPayIPN(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if err := r.ParseForm(); err == nil {
		for key, values := range r.PostForm {
			if !params.Has(key) {
				params[key] = values
			}
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	answer := responses.VNPayIPN{RspCode: constvars.VNPayRspCodeSuccess, Message: constvars.IPNConfirmSuccess}

	result, err := ctrl.PaymentUsecase.ReconcileCallback(ctx, params)
	if err != nil {
		ctrl.Log.Error("Payment IPN failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingAppointmentIDKey, params.Get(constvars.VNPayParamTxnRef)),
			zap.Error(err),
		)
		answer = responses.VNPayIPN{RspCode: constvars.VNPayRspCodeFailure, Message: constvars.IPNConfirmFailed}
	} else {
		ctrl.Log.Info("Payment IPN processed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingPaymentIDKey, result.PaymentID),
			zap.Bool("already_processed", result.AlreadyProcessed),
			zap.String("status", string(result.Status)),
		)
	}

	utils.WriteJSON(w, constvars.StatusOK, answer)
}

func (ctrl *PaymentController) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	paymentID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.PaymentUsecase.GetPaymentStatus(ctx, user, paymentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentStatusGetSuccess, result)
}
