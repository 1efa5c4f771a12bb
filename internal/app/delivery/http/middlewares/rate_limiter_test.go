package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(zap.NewNop(), 1, 2, 10*time.Second)
	limiter.now = func() time.Time { return now }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payments/vnpay/ipn", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("198.51.100.1:4000").Code)
	assert.Equal(t, http.StatusNoContent, call("198.51.100.1:4001").Code)

	rec := call("198.51.100.1:4002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get(constvars.HeaderRetryAfter))

	// other clients keep their own bucket
	assert.Equal(t, http.StatusNoContent, call("198.51.100.2:4000").Code)

	// still blocked even though the bucket refilled
	now = now.Add(5 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, call("198.51.100.1:4003").Code)

	now = now.Add(6 * time.Second)
	assert.Equal(t, http.StatusNoContent, call("198.51.100.1:4004").Code)
}
