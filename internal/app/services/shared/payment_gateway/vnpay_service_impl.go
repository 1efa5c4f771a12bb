package payment_gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type vnpayService struct {
	TmnCode             string
	HashSecret          string
	PaymentURL          string
	ReturnURL           string
	ExpireTimeInMinutes int
	Location            *time.Location
	Log                 *zap.Logger
}

func NewVNPayService(internalConfig *config.InternalConfig, logger *zap.Logger) (contracts.PaymentGatewayService, error) {
	if internalConfig.VNPay.TmnCode == "" || internalConfig.VNPay.HashSecret == "" {
		return nil, errors.New(constvars.ErrClientPaymentNotConfigured)
	}

	location, err := time.LoadLocation(constvars.VNPayTimezone)
	if err != nil {
		location = time.FixedZone(constvars.VNPayTimezone, 7*60*60)
	}

	return &vnpayService{
		TmnCode:             internalConfig.VNPay.TmnCode,
		HashSecret:          internalConfig.VNPay.HashSecret,
		PaymentURL:          internalConfig.VNPay.PaymentURL,
		ReturnURL:           internalConfig.VNPay.ReturnURL,
		ExpireTimeInMinutes: internalConfig.VNPay.ExpireTimeInMinutes,
		Location:            location,
		Log:                 logger,
	}, nil
}

func (s *vnpayService) BuildPaymentURL(ctx context.Context, request *models.GatewayPaymentRequest) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("vnpayService.BuildPaymentURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.TxnRef),
	)

	if request.TxnRef == "" || request.Amount <= 0 {
		return "", exceptions.ErrPaymentBuildURL(fmt.Errorf("txnRef %q amount %d", request.TxnRef, request.Amount))
	}

	createdAt := request.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.In(s.Location)
	expireAt := createdAt.Add(time.Duration(s.ExpireTimeInMinutes) * time.Minute)

	locale := request.Locale
	if locale == "" {
		locale = constvars.VNPayDefaultLocale
	}
	returnURL := request.ReturnURL
	if returnURL == "" {
		returnURL = s.ReturnURL
	}

	params := url.Values{}
	params.Set(constvars.VNPayParamVersion, constvars.VNPayVersion)
	params.Set(constvars.VNPayParamCommand, constvars.VNPayCommandPay)
	params.Set(constvars.VNPayParamTmnCode, s.TmnCode)
	params.Set(constvars.VNPayParamAmount, strconv.FormatInt(request.Amount*constvars.VNPayAmountFactor, 10))
	params.Set(constvars.VNPayParamCurrCode, constvars.VNPayCurrencyVND)
	params.Set(constvars.VNPayParamTxnRef, request.TxnRef)
	params.Set(constvars.VNPayParamOrderInfo, orderInfoWithAttempt(request.OrderInfo, request.AttemptRef))
	params.Set(constvars.VNPayParamOrderType, constvars.VNPayOrderType)
	params.Set(constvars.VNPayParamLocale, locale)
	params.Set(constvars.VNPayParamReturnURL, returnURL)
	params.Set(constvars.VNPayParamIPAddr, request.IPAddr)
	params.Set(constvars.VNPayParamCreateDate, createdAt.Format(constvars.VNPayDateLayout))
	params.Set(constvars.VNPayParamExpireDate, expireAt.Format(constvars.VNPayDateLayout))
	if request.BankCode != "" {
		params.Set(constvars.VNPayParamBankCode, request.BankCode)
	}

	signData := canonicalQuery(params)
	secureHash := s.sign(signData)

	return fmt.Sprintf("%s?%s&%s=%s", s.PaymentURL, signData, constvars.VNPayParamSecureHash, secureHash), nil
}

func (s *vnpayService) VerifyCallback(ctx context.Context, params url.Values) (*models.GatewayCallback, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	received := strings.ToLower(params.Get(constvars.VNPayParamSecureHash))
	if received == "" {
		return nil, exceptions.ErrInvalidSignature(errors.New("secure hash is missing"))
	}

	signed := url.Values{}
	for key, values := range params {
		if !strings.HasPrefix(key, constvars.VNPayParamPrefix) {
			continue
		}
		if key == constvars.VNPayParamSecureHash || key == constvars.VNPayParamSecureHashType {
			continue
		}
		if len(values) == 0 || values[0] == "" {
			continue
		}
		signed.Set(key, values[0])
	}

	expected := s.sign(canonicalQuery(signed))
	if !hmac.Equal([]byte(expected), []byte(received)) {
		s.Log.Warn("vnpayService.VerifyCallback secure hash mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, params.Get(constvars.VNPayParamTxnRef)),
		)
		return nil, exceptions.ErrInvalidSignature(nil)
	}

	rawAmount, err := strconv.ParseInt(signed.Get(constvars.VNPayParamAmount), 10, 64)
	if err != nil {
		return nil, exceptions.ErrFieldValidation(constvars.VNPayParamAmount, "must be a number")
	}

	raw := make(map[string]string, len(signed))
	for key := range signed {
		raw[key] = signed.Get(key)
	}

	return &models.GatewayCallback{
		TxnRef:            signed.Get(constvars.VNPayParamTxnRef),
		AttemptRef:        attemptRefFromOrderInfo(signed.Get(constvars.VNPayParamOrderInfo)),
		GatewayAmount:     rawAmount,
		ResponseCode:      signed.Get(constvars.VNPayParamResponseCode),
		TransactionStatus: signed.Get(constvars.VNPayParamTransactionStatus),
		TransactionNo:     signed.Get(constvars.VNPayParamTransactionNo),
		BankCode:          signed.Get(constvars.VNPayParamBankCode),
		PayDate:           signed.Get(constvars.VNPayParamPayDate),
		Raw:               raw,
	}, nil
}

func orderInfoWithAttempt(orderInfo, attemptRef string) string {
	if attemptRef == "" {
		return orderInfo
	}
	return orderInfo + constvars.VNPayAttemptRefSeparator + attemptRef
}

// attemptRefFromOrderInfo returns the reference appended by orderInfoWithAttempt.
// The order info is covered by the secure hash, so the value cannot be forged.
func attemptRefFromOrderInfo(orderInfo string) string {
	idx := strings.LastIndex(orderInfo, constvars.VNPayAttemptRefSeparator)
	if idx < 0 {
		return ""
	}
	return orderInfo[idx+len(constvars.VNPayAttemptRefSeparator):]
}

func (s *vnpayService) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(s.HashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// canonicalQuery sorts keys and query-escapes values, which is the string the
// gateway signs on both directions.
func canonicalQuery(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, key := range keys {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(key)
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(params.Get(key)))
	}
	return builder.String()
}
