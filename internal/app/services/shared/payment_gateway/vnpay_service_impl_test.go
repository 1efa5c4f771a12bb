package payment_gateway

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestVNPayService(t *testing.T) *vnpayService {
	t.Helper()
	cfg := &config.InternalConfig{
		VNPay: config.AppVNPay{
			TmnCode:             "TESTTMN1",
			HashSecret:          "SECRETKEY123",
			PaymentURL:          "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:           "http://localhost:8080/api/v1/payments/vnpay/callback",
			ExpireTimeInMinutes: 15,
		},
	}
	svc, err := NewVNPayService(cfg, zap.NewNop())
	require.NoError(t, err)
	return svc.(*vnpayService)
}

func signedCallback(s *vnpayService, params url.Values) url.Values {
	params.Set(constvars.VNPayParamSecureHash, s.sign(canonicalQuery(params)))
	return params
}

func TestNewVNPayService_RequiresCredentials(t *testing.T) {
	_, err := NewVNPayService(&config.InternalConfig{}, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildPaymentURL(t *testing.T) {
	s := newTestVNPayService(t)
	createdAt := time.Date(2025, 6, 9, 3, 0, 0, 0, time.UTC)

	paymentURL, err := s.BuildPaymentURL(context.Background(), &models.GatewayPaymentRequest{
		TxnRef:     "8f1c2f7e-1111-4222-8333-944455556666",
		AttemptRef: "a1b2c3d4e5f60718",
		Amount:     300000,
		OrderInfo:  "Thanh toan lich hen 8f1c2f7e",
		IPAddr:     "127.0.0.1",
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(paymentURL, s.PaymentURL+"?"))

	parsed, err := url.Parse(paymentURL)
	require.NoError(t, err)
	query := parsed.Query()

	assert.Equal(t, "30000000", query.Get(constvars.VNPayParamAmount))
	assert.Equal(t, "TESTTMN1", query.Get(constvars.VNPayParamTmnCode))
	assert.Equal(t, "20250609100000", query.Get(constvars.VNPayParamCreateDate))
	assert.Equal(t, "20250609101500", query.Get(constvars.VNPayParamExpireDate))
	assert.Equal(t, constvars.VNPayDefaultLocale, query.Get(constvars.VNPayParamLocale))
	assert.Equal(t, s.ReturnURL, query.Get(constvars.VNPayParamReturnURL))
	assert.Empty(t, query.Get(constvars.VNPayParamBankCode))

	// the gateway echoes the same params back, so the URL must verify as a callback
	callback, err := s.VerifyCallback(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(30000000), callback.GatewayAmount)
	assert.True(t, callback.MatchesAmount(300000))
	assert.Equal(t, "8f1c2f7e-1111-4222-8333-944455556666", callback.TxnRef)
	assert.Equal(t, "a1b2c3d4e5f60718", callback.AttemptRef)
	assert.Equal(t, "Thanh toan lich hen 8f1c2f7e ref a1b2c3d4e5f60718", query.Get(constvars.VNPayParamOrderInfo))
}

func TestBuildPaymentURL_RejectsEmptyAmount(t *testing.T) {
	s := newTestVNPayService(t)
	_, err := s.BuildPaymentURL(context.Background(), &models.GatewayPaymentRequest{TxnRef: "abc"})
	assert.Error(t, err)
}

func TestVerifyCallback(t *testing.T) {
	s := newTestVNPayService(t)

	base := func() url.Values {
		return url.Values{
			constvars.VNPayParamTxnRef:            {"appt-1"},
			constvars.VNPayParamAmount:            {"30000000"},
			constvars.VNPayParamResponseCode:      {"00"},
			constvars.VNPayParamTransactionStatus: {"00"},
			constvars.VNPayParamTransactionNo:     {"14012345"},
			constvars.VNPayParamBankCode:          {"NCB"},
			constvars.VNPayParamOrderInfo:         {"Thanh toan lich hen appt-1"},
			constvars.VNPayParamPayDate:           {"20250609101000"},
			constvars.VNPayParamTmnCode:           {"TESTTMN1"},
		}
	}

	t.Run("valid signature", func(t *testing.T) {
		params := signedCallback(s, base())
		params.Set(constvars.VNPayParamSecureHashType, "HmacSHA512")
		params.Set("utm_source", "ignored")

		callback, err := s.VerifyCallback(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, "appt-1", callback.TxnRef)
		assert.Equal(t, int64(30000000), callback.GatewayAmount)
		assert.Empty(t, callback.AttemptRef)
		assert.Equal(t, "14012345", callback.TransactionNo)
		assert.True(t, callback.Succeeded())
		assert.NotContains(t, callback.Raw, constvars.VNPayParamSecureHash)
	})

	t.Run("amount is compared without truncation", func(t *testing.T) {
		params := base()
		params.Set(constvars.VNPayParamAmount, "30000099")

		callback, err := s.VerifyCallback(context.Background(), signedCallback(s, params))
		require.NoError(t, err)
		assert.False(t, callback.MatchesAmount(300000))
	})

	t.Run("upper case hash is accepted", func(t *testing.T) {
		params := signedCallback(s, base())
		params.Set(constvars.VNPayParamSecureHash, strings.ToUpper(params.Get(constvars.VNPayParamSecureHash)))

		_, err := s.VerifyCallback(context.Background(), params)
		assert.NoError(t, err)
	})

	t.Run("tampered amount", func(t *testing.T) {
		params := signedCallback(s, base())
		params.Set(constvars.VNPayParamAmount, "100")

		_, err := s.VerifyCallback(context.Background(), params)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeInvalidSignature))
	})

	t.Run("missing hash", func(t *testing.T) {
		_, err := s.VerifyCallback(context.Background(), base())
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeInvalidSignature))
	})

	t.Run("failed response code", func(t *testing.T) {
		params := base()
		params.Set(constvars.VNPayParamResponseCode, "24")
		params.Set(constvars.VNPayParamTransactionStatus, "02")
		params = signedCallback(s, params)

		callback, err := s.VerifyCallback(context.Background(), params)
		require.NoError(t, err)
		assert.False(t, callback.Succeeded())
	})
}
