package learning

import (
	"context"
	"strings"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/content"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/prompts"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

type GenerateAllInput struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
	DocID  string `json:"docId"`
}

type GenerateAllOutput struct {
	Doc        *types.Document     `json:"doc"`
	Story      string              `json:"story"`
	Steps      []string            `json:"steps"`
	Challenges string              `json:"challenges"`
	Flashcards []content.Flashcard `json:"flashcards"`
}

// GenerateAll runs the single generation prompt over the document text and
// overwrites the document's story, steps, challenges and flashcards.
func (u Usecases) GenerateAll(ctx context.Context, in GenerateAllInput) (GenerateAllOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	docID := strings.TrimSpace(in.DocID)
	if strings.TrimSpace(in.Text) == "" || userID == "" || docID == "" {
		return GenerateAllOutput{}, apierr.BadRequest("missing_fields", "Missing text, userId or docId")
	}
	log := u.deps.Log.With("usecase", "GenerateAll", "user_id", userID, "doc_id", docID)
	dbc := dbctx.Of(ctx)

	existing, err := u.deps.Documents.GetByID(dbc, docID)
	if err != nil {
		log.Error("Document lookup failed", "error", err)
		return GenerateAllOutput{}, internalError("document_lookup_failed", "Failed to load document")
	}
	if existing == nil {
		return GenerateAllOutput{}, notFound("document_not_found", "Document not found")
	}

	prompt, err := prompts.Build(prompts.PromptGenerateAll, prompts.Input{DocumentText: in.Text})
	if err != nil {
		return GenerateAllOutput{}, apierr.BadRequest("invalid_prompt_input", err.Error())
	}
	reply, err := u.deps.AI.GenerateText(ctx, prompt.Text)
	if err != nil {
		log.Warn("Generation call failed", "error", err)
		return GenerateAllOutput{}, generationError(err)
	}

	gen := content.ParseGenerated(reply)
	log.Info("Generated content parsed",
		"story_status", gen.StoryStatus,
		"steps_status", gen.StepsStatus,
		"challenges_status", gen.ChallengesStatus,
		"flashcards_status", gen.FlashcardsStatus,
	)

	doc, err := u.deps.Documents.UpdateGenerated(dbc, docID, types.GeneratedContent{
		Story:      gen.Story,
		Steps:      strings.Join(gen.Steps, "\n"),
		Challenges: gen.Challenges,
		Flashcards: content.EncodeFlashcards(gen.Flashcards),
	})
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return GenerateAllOutput{}, notFound("document_not_found", "Document not found")
		}
		log.Error("Document update failed", "error", err)
		return GenerateAllOutput{}, internalError("document_update_failed", "Failed to update document")
	}

	return GenerateAllOutput{
		Doc:        doc,
		Story:      gen.Story,
		Steps:      gen.Steps,
		Challenges: gen.Challenges,
		Flashcards: gen.Flashcards,
	}, nil
}
