package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/fundocs-backend/internal/http/response"
	"github.com/yungbote/fundocs-backend/internal/modules/learning"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

const (
	msgInvalidBody = "Invalid request body"
	msgInvalidXP   = "xp_earned must be a non-negative integer"
)

// LearningUsecases is the slice of learning.Usecases the HTTP layer calls.
type LearningUsecases interface {
	FetchCleanDoc(ctx context.Context, in learning.FetchCleanDocInput) (learning.FetchCleanDocOutput, error)
	ListUserDocs(ctx context.Context, in learning.ListUserDocsInput) (learning.ListUserDocsOutput, error)
	DeleteDoc(ctx context.Context, in learning.DeleteDocInput) (learning.DeleteOutput, error)
	GenerateAll(ctx context.Context, in learning.GenerateAllInput) (learning.GenerateAllOutput, error)
	UpdateProgress(ctx context.Context, in learning.UpdateProgressInput) (learning.UpdateProgressOutput, error)
	GetProgress(ctx context.Context, in learning.GetProgressInput) (learning.GetProgressOutput, error)
	Leaderboard(ctx context.Context) (learning.LeaderboardOutput, error)
	SubmitChallenge(ctx context.Context, in learning.SubmitChallengeInput) (learning.SubmitChallengeOutput, error)
	GenerateReport(ctx context.Context, in learning.GenerateReportInput) (learning.GenerateReportOutput, error)
	ReportPDF(ctx context.Context, in learning.ReportPDFInput) ([]byte, error)
}

type LearningHandler struct {
	log *logger.Logger
	uc  LearningUsecases
}

func NewLearningHandler(log *logger.Logger, uc LearningUsecases) *LearningHandler {
	return &LearningHandler{log: log.With("handler", "LearningHandler"), uc: uc}
}

// POST /api/fetch_clean_doc
// body: { "source": "<url or text>", "userId": "..." }
func (h *LearningHandler) FetchCleanDoc(c *gin.Context) {
	var req learning.FetchCleanDocInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	out, err := h.uc.FetchCleanDoc(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "fetch_clean_doc_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/fetch_user_docs?userId=...
func (h *LearningHandler) FetchUserDocs(c *gin.Context) {
	var req learning.ListUserDocsInput
	_ = c.ShouldBindQuery(&req)
	out, err := h.uc.ListUserDocs(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "fetch_user_docs_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/delete-doc
// body: { "userId": "...", "docId": "..." }
func (h *LearningHandler) DeleteDoc(c *gin.Context) {
	var req learning.DeleteDocInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	out, err := h.uc.DeleteDoc(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "delete_doc_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/generate_all
// body: { "text": "...", "userId": "...", "docId": "..." }
func (h *LearningHandler) GenerateAll(c *gin.Context) {
	var req learning.GenerateAllInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	out, err := h.uc.GenerateAll(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "generate_all_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/update_progress
// body: { "user_id": "...", "xp_earned": 5, "challenge_title": "..." }
func (h *LearningHandler) UpdateProgress(c *gin.Context) {
	var req struct {
		UserID         string `json:"user_id"`
		XPEarned       *int   `json:"xp_earned"`
		ChallengeTitle string `json:"challenge_title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		// a fractional or quoted xp_earned is the usual cause
		response.RespondBadRequest(c, msgInvalidXP)
		return
	}
	if req.XPEarned == nil && strings.TrimSpace(req.UserID) != "" {
		response.RespondBadRequest(c, msgInvalidXP)
		return
	}
	in := learning.UpdateProgressInput{UserID: req.UserID, ChallengeTitle: req.ChallengeTitle}
	if req.XPEarned != nil {
		in.XPEarned = *req.XPEarned
	}
	out, err := h.uc.UpdateProgress(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, h.log, err, "update_progress_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/get_progress?user_id=...
func (h *LearningHandler) GetProgress(c *gin.Context) {
	var req learning.GetProgressInput
	_ = c.ShouldBindQuery(&req)
	out, err := h.uc.GetProgress(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "get_progress_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/leaderboard
func (h *LearningHandler) Leaderboard(c *gin.Context) {
	out, err := h.uc.Leaderboard(c.Request.Context())
	if err != nil {
		response.RespondError(c, h.log, err, "leaderboard_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/submit_challenge
// body: { "user_id": "...", "doc_id": "...", "user_solution": "..." }
func (h *LearningHandler) SubmitChallenge(c *gin.Context) {
	var req learning.SubmitChallengeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	out, err := h.uc.SubmitChallenge(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "submit_challenge_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/generate_report
// body: { "user_id": "..." }
func (h *LearningHandler) GenerateReport(c *gin.Context) {
	var req learning.GenerateReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	out, err := h.uc.GenerateReport(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "generate_report_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/download_report_pdf
// body: { "report": "<markdown>" }
func (h *LearningHandler) DownloadReportPDF(c *gin.Context) {
	var req learning.ReportPDFInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, msgInvalidBody)
		return
	}
	pdf, err := h.uc.ReportPDF(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, h.log, err, "download_report_pdf_failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", learning.ReportFilename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
