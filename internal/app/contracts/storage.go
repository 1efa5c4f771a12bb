package contracts

import (
	"context"
)

type Storage interface {
	PutJSON(ctx context.Context, objectName string, payload interface{}) error
}
