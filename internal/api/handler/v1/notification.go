package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/icpcsp/compreg/internal/api/handler/v1/request"
	"github.com/icpcsp/compreg/internal/api/handler/v1/response"
	"github.com/icpcsp/compreg/internal/domain"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID uint, ids []uint) error
}

// StreamServer upgrades a request into a live notification stream for userID.
type StreamServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID uint) error
}

type NotificationHandler struct {
	svc    NotificationService
	stream StreamServer
}

func NewNotificationHandler(svc NotificationService, stream StreamServer) *NotificationHandler {
	return &NotificationHandler{
		svc:    svc,
		stream: stream,
	}
}

// HandleList godoc
// @Summary      My notifications, newest first
// @Tags         notifications
// @Produce      json
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) HandleList(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ns, err := h.svc.ListNotifications(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleList -> h.svc.ListNotifications -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, ns)
}

// HandleMarkRead godoc
// @Summary      Mark notifications as read
// @Description  An empty id list marks everything read.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request  body      request.MarkReadRequest  true  "ids"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Router       /notifications/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) HandleMarkRead(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MarkReadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.MarkRead(ctx.Request.Context(), userID, req.IDs); err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkRead -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "notifications marked as read"})
}

// HandleStream godoc
// @Summary      Live notification stream
// @Description  Upgrades to a websocket. Each message is a JSON notification.
// @Tags         notifications
// @Param        token  query  string  false  "JWT, for clients that cannot set headers"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  response.Err
// @Router       /notifications/stream [get]
// @Security     BearerAuth
func (h *NotificationHandler) HandleStream(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	// The upgrader has already answered the client when this fails.
	if err := h.stream.ServeWS(ctx.Writer, ctx.Request, userID); err != nil {
		zap.L().Debug("notification stream upgrade failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
