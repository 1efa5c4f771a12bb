package jwtmanager

import (
	"errors"
	"fmt"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AccessClaims are the claims carried by access tokens. ProfileID is the
// patient or doctor id of the subject.
type AccessClaims struct {
	Role      string `json:"role"`
	ProfileID string `json:"pid,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTManager(cfg *config.InternalConfig) (contracts.JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}
	return &JWTManager{
		secret: []byte(secret),
		issuer: cfg.JWT.Issuer,
		ttl:    time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour,
	}, nil
}

// CreateToken signs a token for user. A zero ttl uses the configured lifetime.
func (j *JWTManager) CreateToken(user *models.AuthUser, ttl time.Duration) (string, error) {
	if user == nil || strings.TrimSpace(user.UserID) == "" {
		return "", fmt.Errorf("subject is required")
	}
	if ttl <= 0 {
		ttl = j.ttl
	}

	now := time.Now().UTC()
	claims := AccessClaims{
		Role:      string(user.Role),
		ProfileID: user.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWTManager) VerifyToken(tokenString string) (*models.AuthUser, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("token is required")
	}

	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	if j.issuer != "" && claims.Issuer != j.issuer {
		return nil, fmt.Errorf("unexpected issuer: %s", claims.Issuer)
	}

	role := models.UserRole(claims.Role)
	switch role {
	case models.UserRoleAdmin, models.UserRoleDoctor, models.UserRolePatient:
	default:
		return nil, fmt.Errorf("unknown role: %s", claims.Role)
	}

	return &models.AuthUser{
		UserID:    claims.Subject,
		Role:      role,
		ProfileID: claims.ProfileID,
	}, nil
}
