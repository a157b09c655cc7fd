package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

func TestDeleteAccountHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uc := &fakeUsers{}
	h := NewUserHandler(logger.Nop(), uc)
	r := gin.New()
	r.POST("/api/delete-account", h.DeleteAccount)

	rec := do(r, http.MethodPost, "/api/delete-account", `{"userId":"u1"}`)
	if rec.Code != http.StatusOK || uc.got.UserID != "u1" {
		t.Fatalf("code=%d in=%+v", rec.Code, uc.got)
	}

	uc.err = apierr.BadRequest("missing_user_id", "userId is required")
	rec = do(r, http.MethodPost, "/api/delete-account", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "userId is required" {
		t.Fatalf("error: %q", msg)
	}
}
