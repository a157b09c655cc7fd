package learning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/fundocs-backend/internal/modules/learning/content"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/docgen"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/prompts"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

const ReportFilename = "progress_report.pdf"

type GenerateReportInput struct {
	UserID string `json:"user_id"`
}

type GenerateReportOutput struct {
	Report string `json:"report"`
}

// submissionSummary is what the report prompt sees of each attempt.
type submissionSummary struct {
	DocID        string `json:"doc_id"`
	UserSolution string `json:"user_solution"`
	Feedback     string `json:"feedback"`
	XPAwarded    int    `json:"xp_awarded"`
	Success      bool   `json:"success"`
}

// GenerateReport asks the model for a five-part assessment of the user's
// progress and submissions and renders it as Markdown.
func (u Usecases) GenerateReport(ctx context.Context, in GenerateReportInput) (GenerateReportOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return GenerateReportOutput{}, apierr.BadRequest("missing_user_id", "user_id is required")
	}
	log := u.deps.Log.With("usecase", "GenerateReport", "user_id", userID)
	dbc := dbctx.Of(ctx)

	rec, err := u.deps.Progress.Get(dbc, userID)
	if err != nil {
		log.Error("Progress lookup failed", "error", err)
		return GenerateReportOutput{}, internalError("progress_lookup_failed", "Failed to fetch progress")
	}
	if rec == nil {
		return GenerateReportOutput{}, notFound("progress_not_found", "User progress not found")
	}

	subs, err := u.deps.Submissions.ListByUser(dbc, userID)
	if err != nil {
		log.Error("Submission list failed", "error", err)
		return GenerateReportOutput{}, internalError("submission_list_failed", "Failed to fetch submissions")
	}
	summaries := make([]submissionSummary, 0, len(subs))
	for _, s := range subs {
		summaries = append(summaries, submissionSummary{
			DocID:        s.DocID,
			UserSolution: s.UserSolution,
			Feedback:     s.Feedback,
			XPAwarded:    s.XPAwarded,
			Success:      s.Success,
		})
	}
	subsJSON, err := json.Marshal(summaries)
	if err != nil {
		log.Error("Submission encode failed", "error", err)
		return GenerateReportOutput{}, internalError("submission_encode_failed", "Failed to encode submissions")
	}

	prompt, err := prompts.Build(prompts.PromptProgressReport, prompts.Input{
		XP:              rec.XP,
		Streak:          rec.Streak,
		SubmissionsJSON: string(subsJSON),
	})
	if err != nil {
		log.Error("Report prompt build failed", "error", err)
		return GenerateReportOutput{}, internalError("prompt_build_failed", "Failed to build report prompt")
	}
	reply, err := u.deps.AI.GenerateText(ctx, prompt.Text)
	if err != nil {
		log.Warn("Report call failed", "error", err)
		return GenerateReportOutput{}, apierr.New(http.StatusInternalServerError, "gemini_failed", errors.New("Gemini API failed"))
	}

	fields, err := content.ParseReport(reply)
	if err != nil {
		log.Warn("Report reply unparseable", "error", err)
		return GenerateReportOutput{}, internalError("report_parse_failed", "Failed to parse Gemini response")
	}
	return GenerateReportOutput{Report: docgen.RenderReportMarkdown(fields)}, nil
}

type ReportPDFInput struct {
	Report string `json:"report"`
}

// ReportPDF lays out report text on A4 pages.
func (u Usecases) ReportPDF(ctx context.Context, in ReportPDFInput) ([]byte, error) {
	if strings.TrimSpace(in.Report) == "" {
		return nil, apierr.BadRequest("missing_report", "Report text is required")
	}
	var buf bytes.Buffer
	if err := docgen.RenderPDF(&buf, in.Report); err != nil {
		u.deps.Log.Error("PDF render failed", "error", err)
		return nil, internalError("pdf_render_failed", "Failed to generate PDF")
	}
	return buf.Bytes(), nil
}
