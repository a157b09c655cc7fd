package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/fundocs-backend/internal/http/response"
	"github.com/yungbote/fundocs-backend/internal/modules/user"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type UserUsecases interface {
	DeleteAccount(ctx context.Context, in user.DeleteAccountInput) (user.DeleteAccountOutput, error)
}

type UserHandler struct {
	log *logger.Logger
	uc  UserUsecases
}

func NewUserHandler(log *logger.Logger, uc UserUsecases) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), uc: uc}
}

// POST /api/delete-account
// body: { "userId": "..." }
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	var req user.DeleteAccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	out, err := h.uc.DeleteAccount(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "delete_account_failed")
		return
	}
	response.RespondOK(c, out)
}
