package controllers

import (
	"context"
	"errors"
	"io"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), constvars.ControllerTimeoutInSeconds*time.Second)
}

func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func authUser(r *http.Request) (*models.AuthUser, error) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	return user, nil
}

func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constvars.URLParamID)
	if err := uuid.Validate(id); err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, constvars.URLParamID)
	}
	return id, nil
}

// decodeAndValidate decodes a JSON body into request and runs the struct
// validation tags.
func decodeAndValidate(log *zap.Logger, r *http.Request, request interface{}) error {
	return decode(log, r, request, false)
}

// decodeOptionalAndValidate accepts an empty body.
func decodeOptionalAndValidate(log *zap.Logger, r *http.Request, request interface{}) error {
	return decode(log, r, request, true)
}

func decode(log *zap.Logger, r *http.Request, request interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(request)
	if optional && errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		log.Warn("Failed to decode request body",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return exceptions.ErrCannotParseJSON(err)
	}
	return validate(log, r, request)
}

func validate(log *zap.Logger, r *http.Request, request interface{}) error {
	if err := utils.ValidateStruct(request); err != nil {
		log.Warn("Request validation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func parseFloatQuery(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, exceptions.ErrFieldValidation(key, "must be a number")
	}
	return &value, nil
}
