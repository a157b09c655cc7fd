package learning

import (
	"context"
	"errors"
	"net/http"
	"strings"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/progress"
	"github.com/yungbote/fundocs-backend/internal/observability"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

const (
	ingestionXP    = 1
	ingestionTitle = "adding a document"
)

type FetchCleanDocInput struct {
	Source string `json:"source"`
	UserID string `json:"userId"`
}

type FetchCleanDocOutput struct {
	Doc *types.Document `json:"doc"`
}

// FetchCleanDoc resolves a URL or raw text into a new document owned by the
// user and awards the ingestion XP.
func (u Usecases) FetchCleanDoc(ctx context.Context, in FetchCleanDocInput) (FetchCleanDocOutput, error) {
	source := strings.TrimSpace(in.Source)
	userID := strings.TrimSpace(in.UserID)
	if source == "" {
		return FetchCleanDocOutput{}, apierr.BadRequest("missing_source", "No input provided")
	}
	if userID == "" {
		return FetchCleanDocOutput{}, apierr.BadRequest("missing_user_id", "User ID is required")
	}
	log := u.deps.Log.With("usecase", "FetchCleanDoc", "user_id", userID)

	resolved, err := u.deps.Resolver.Resolve(ctx, source)
	if err != nil {
		log.Warn("Source could not be resolved", "error", err)
		return FetchCleanDocOutput{}, apierr.Newf(http.StatusBadRequest, "source_unresolvable", "Failed to process source: %v", err)
	}

	doc, err := u.deps.Documents.Create(dbctx.Of(ctx), &types.Document{
		Title:     resolved.Title,
		Text:      resolved.Text,
		CreatedBy: userID,
	})
	if err != nil {
		log.Error("Document insert failed", "error", err)
		return FetchCleanDocOutput{}, internalError("document_create_failed", "Failed to create document")
	}
	observability.Current().IncDocumentIngested(string(resolved.Origin))
	log.Info("Document ingested", "doc_id", doc.ID, "origin", resolved.Origin, "chars", len(resolved.Text))

	if _, _, err := u.award(ctx, userID, progress.Award{XP: ingestionXP, Title: ingestionTitle}); err != nil {
		log.Warn("Ingestion XP award failed", "error", err)
	}
	return FetchCleanDocOutput{Doc: doc}, nil
}

type ListUserDocsInput struct {
	UserID string `form:"userId"`
}

type ListUserDocsOutput struct {
	Docs []*types.Document `json:"docs"`
}

func (u Usecases) ListUserDocs(ctx context.Context, in ListUserDocsInput) (ListUserDocsOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return ListUserDocsOutput{}, apierr.BadRequest("missing_user_id", "userId is required")
	}
	docs, err := u.deps.Documents.ListByOwner(dbctx.Of(ctx), userID)
	if err != nil {
		u.deps.Log.Error("Listing documents failed", "user_id", userID, "error", err)
		return ListUserDocsOutput{}, internalError("document_list_failed", "Failed to fetch documents")
	}
	if docs == nil {
		docs = []*types.Document{}
	}
	return ListUserDocsOutput{Docs: docs}, nil
}

type DeleteDocInput struct {
	UserID string `json:"userId"`
	DocID  string `json:"docId"`
}

type DeleteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteDoc removes a document. Only its creator may delete it.
func (u Usecases) DeleteDoc(ctx context.Context, in DeleteDocInput) (DeleteOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	docID := strings.TrimSpace(in.DocID)
	if userID == "" || docID == "" {
		return DeleteOutput{}, apierr.BadRequest("missing_fields", "userId and docId are required")
	}
	log := u.deps.Log.With("usecase", "DeleteDoc", "user_id", userID, "doc_id", docID)
	dbc := dbctx.Of(ctx)

	doc, err := u.deps.Documents.GetByID(dbc, docID)
	if err != nil {
		log.Error("Document lookup failed", "error", err)
		return DeleteOutput{}, internalError("document_lookup_failed", "Failed to load document")
	}
	if doc == nil {
		return DeleteOutput{}, notFound("document_not_found", "Document not found")
	}
	if !doc.OwnedBy(userID) {
		log.Warn("Delete refused for non-owner", "owner_user_id", doc.CreatedBy)
		return DeleteOutput{}, apierr.New(http.StatusForbidden, "not_document_owner", errors.New("Unauthorized to delete this document"))
	}
	if err := u.deps.Documents.Delete(dbc, docID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return DeleteOutput{}, notFound("document_not_found", "Document not found")
		}
		log.Error("Document delete failed", "error", err)
		return DeleteOutput{}, internalError("document_delete_failed", "Failed to delete document")
	}
	log.Info("Document deleted")
	return DeleteOutput{Success: true, Message: "Document deleted successfully"}, nil
}
