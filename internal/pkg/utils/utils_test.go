package utils

import (
	"errors"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MEDIBOOK_TEST_INT", "42")
	t.Setenv("MEDIBOOK_TEST_BAD_INT", "forty-two")
	t.Setenv("MEDIBOOK_TEST_BOOL", "true")
	t.Setenv("MEDIBOOK_TEST_BLANK", "   ")
	t.Setenv("MEDIBOOK_TEST_SLICE", "http://a.test, ,http://b.test")

	assert.Equal(t, 42, GetEnvInt("MEDIBOOK_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("MEDIBOOK_TEST_BAD_INT", 1))
	assert.True(t, GetEnvBool("MEDIBOOK_TEST_BOOL", false))
	assert.Equal(t, "fallback", GetEnvString("MEDIBOOK_TEST_BLANK", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("MEDIBOOK_TEST_UNSET", "fallback"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetEnvStringSlice("MEDIBOOK_TEST_SLICE", nil))
}

func TestClock(t *testing.T) {
	minutes, err := ClockToMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)
	assert.Equal(t, "09:30", MinutesToClock(minutes))

	for _, clock := range []string{"24:00", "8:00", "08:0", "08:000", ""} {
		_, err = ClockToMinutes(clock)
		assert.Error(t, err, clock)
	}

	assert.True(t, Overlaps("09:00", "09:30", "09:15", "09:45"))
	assert.False(t, Overlaps("09:00", "09:30", "09:30", "10:00"))
}

func TestIsPastDate(t *testing.T) {
	location := time.FixedZone("ICT", 7*60*60)
	now := time.Date(2025, 6, 10, 0, 30, 0, 0, location)

	past, err := IsPastDate("2025-06-09", now)
	require.NoError(t, err)
	assert.True(t, past)

	past, err = IsPastDate("2025-06-10", now)
	require.NoError(t, err)
	assert.False(t, past)

	_, err = IsPastDate("2025-13-01", now)
	assert.Error(t, err)
}

func TestHaversineKm(t *testing.T) {
	assert.Zero(t, HaversineKm(10.7769, 106.7009, 10.7769, 106.7009))
	// Ho Chi Minh City to Hanoi
	assert.InDelta(t, 1143, HaversineKm(10.7769, 106.7009, 21.0285, 105.8542), 5)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("medibook123")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("medibook123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}

func TestBuildPaginationRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults", "", 1, constvars.DefaultPageSize},
		{"explicit", "?page=3&page_size=5", 3, 5},
		{"capped", "?page_size=1000", 1, constvars.MaxPageSize},
		{"garbage", "?page=-1&page_size=abc", 1, constvars.DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/notifications"+tt.query, nil)
			pagination := BuildPaginationRequest(r)
			assert.Equal(t, tt.page, pagination.Page)
			assert.Equal(t, tt.pageSize, pagination.PageSize)
		})
	}
}

func TestBuildPaginationResponse(t *testing.T) {
	pagination := BuildPaginationResponse(25, 2, 10, "/api/v1/doctors")
	assert.Equal(t, "/api/v1/doctors?page=3&page_size=10", pagination.NextURL)
	assert.Equal(t, "/api/v1/doctors?page=1&page_size=10", pagination.PrevURL)

	last := BuildPaginationResponse(25, 3, 10, "/api/v1/doctors")
	assert.Empty(t, last.NextURL)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:5000"
	assert.Equal(t, "192.0.2.10", ClientIP(r))

	r.Header.Set(constvars.HeaderXRealIP, "198.51.100.7")
	assert.Equal(t, "198.51.100.7", ClientIP(r))

	r.Header.Set(constvars.HeaderXForwardedFor, "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", ClientIP(r))
}

func TestBuildErrorResponse(t *testing.T) {
	decode := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		var body struct {
			Error map[string]interface{} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body.Error
	}

	t.Run("custom error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrNotFound(errors.New("record not found"), "doctor"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(rec)
		assert.Equal(t, constvars.ErrCodeNotFound, body["code"])
		assert.Equal(t, "doctor not found", body["message"])
		assert.NotContains(t, body, "issues")
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(rec)
		assert.Equal(t, constvars.ErrCodeInternal, body["code"])
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}
