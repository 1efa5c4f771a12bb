package contracts

import (
	"medibook-service/internal/app/models"
	"time"
)

type JWTManager interface {
	CreateToken(user *models.AuthUser, ttl time.Duration) (string, error)
	VerifyToken(tokenString string) (*models.AuthUser, error)
}
