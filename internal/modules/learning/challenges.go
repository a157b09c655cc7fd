package learning

import (
	"context"
	"errors"
	"net/http"
	"strings"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/content"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/progress"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/prompts"
	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

const defaultChallengeTitle = "a challenge"

type SubmitChallengeInput struct {
	UserID       string `json:"user_id"`
	DocID        string `json:"doc_id"`
	UserSolution string `json:"user_solution"`
}

type SubmitChallengeOutput struct {
	Feedback  string `json:"feedback"`
	XPAwarded int    `json:"xp_awarded"`
	Success   bool   `json:"success"`
}

// SubmitChallenge has the model judge a solution against the document's
// challenges, records the attempt and forwards any XP to the user's progress.
func (u Usecases) SubmitChallenge(ctx context.Context, in SubmitChallengeInput) (SubmitChallengeOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	docID := strings.TrimSpace(in.DocID)
	if userID == "" || docID == "" || strings.TrimSpace(in.UserSolution) == "" {
		return SubmitChallengeOutput{}, apierr.BadRequest("missing_fields", "Missing required fields")
	}
	log := u.deps.Log.With("usecase", "SubmitChallenge", "user_id", userID, "doc_id", docID)
	dbc := dbctx.Of(ctx)

	doc, err := u.deps.Documents.GetByID(dbc, docID)
	if err != nil {
		log.Error("Document lookup failed", "error", err)
		return SubmitChallengeOutput{}, internalError("document_lookup_failed", "Failed to load document")
	}
	if doc == nil || strings.TrimSpace(doc.Challenges) == "" {
		return SubmitChallengeOutput{}, notFound("challenge_not_found", "Challenge text not found")
	}

	prompt, err := prompts.Build(prompts.PromptEvaluateChallenge, prompts.Input{
		ChallengeText: doc.Challenges,
		UserSolution:  in.UserSolution,
	})
	if err != nil {
		return SubmitChallengeOutput{}, apierr.BadRequest("invalid_prompt_input", err.Error())
	}
	reply, err := u.deps.AI.GenerateText(ctx, prompt.Text)
	if err != nil {
		log.Warn("Evaluation call failed", "error", err)
		return SubmitChallengeOutput{}, apierr.New(http.StatusInternalServerError, "gemini_failed", errors.New("Gemini API failed"))
	}

	verdict := content.ParseVerdict(reply)
	if verdict.Status != content.StatusOK {
		log.Warn("Evaluation reply had no verdict object")
	}

	if _, err := u.deps.Submissions.Create(dbc, &types.ChallengeSubmission{
		UserID:       userID,
		DocID:        docID,
		UserSolution: in.UserSolution,
		Feedback:     verdict.Feedback,
		XPAwarded:    verdict.XP,
		Success:      verdict.Success,
	}); err != nil {
		log.Error("Submission insert failed", "error", err)
		return SubmitChallengeOutput{}, internalError("submission_create_failed", "Failed to save submission")
	}
	observability.Current().IncSubmission(verdict.Success)

	if verdict.XP > 0 {
		title := strings.TrimSpace(doc.Title)
		if title == "" {
			title = defaultChallengeTitle
		}
		if _, _, err := u.award(ctx, userID, progress.Award{XP: verdict.XP, Title: title}); err != nil {
			log.Warn("Challenge XP award failed", "xp", verdict.XP, "error", err)
		}
	}

	return SubmitChallengeOutput{
		Feedback:  verdict.Feedback,
		XPAwarded: verdict.XP,
		Success:   verdict.Success,
	}, nil
}
