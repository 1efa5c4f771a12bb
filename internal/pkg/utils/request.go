package utils

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func BuildPaginationRequest(r *http.Request) requests.Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPage))
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamPageSize))
	if err != nil || pageSize <= 0 {
		pageSize = constvars.DefaultPageSize
	}
	if pageSize > constvars.MaxPageSize {
		pageSize = constvars.MaxPageSize
	}

	return requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// ClientIP prefers proxy headers over the socket address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constvars.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get(constvars.HeaderXRealIP); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func WithAuthUser(ctx context.Context, user *models.AuthUser) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_AUTH_USER_KEY, user)
}

func GetAuthUser(ctx context.Context) (*models.AuthUser, bool) {
	user, ok := ctx.Value(constvars.CONTEXT_AUTH_USER_KEY).(*models.AuthUser)
	return user, ok && user != nil
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}
