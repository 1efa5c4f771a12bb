package controllers

import (
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
	}
}

func (ctrl *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := ctrl.NotificationUsecase.ListNotifications(ctx, user, pagination)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	paginationData := utils.BuildPaginationResponse(int(result.Total), pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.NotificationListSuccess, paginationData, result)
}

func (ctrl *NotificationController) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	user, err := authUser(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	notificationID, err := pathID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := ctrl.NotificationUsecase.MarkAsRead(ctx, user, notificationID); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationReadSuccess, nil)
}
