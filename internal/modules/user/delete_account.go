package user

import (
	"context"
	"errors"
	"net/http"
	"strings"

	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

const accountDeletedMessage = "User, avatar, progress, submissions, tips, and all related documents deleted"

type DeleteAccountInput struct {
	UserID string `json:"userId"`
}

type DeleteAccountOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteAccount removes everything the user owns and then the user. Only a
// document or identity delete failure stops it; avatar, submission,
// progress and tips failures are logged and skipped.
func (u Usecases) DeleteAccount(ctx context.Context, in DeleteAccountInput) (DeleteAccountOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return DeleteAccountOutput{}, apierr.BadRequest("missing_user_id", "userId is required")
	}
	log := u.deps.Log.With("usecase", "DeleteAccount", "user_id", userID)
	dbc := dbctx.Of(ctx)

	u.deleteAvatar(dbc, userID)

	docs, err := u.deps.Documents.DeleteByOwner(dbc, userID)
	if err != nil {
		log.Error("Document cleanup failed", "deleted", docs, "error", err)
		return DeleteAccountOutput{}, apierr.New(http.StatusBadRequest, "document_cleanup_failed", errors.New("Failed to delete user documents"))
	}

	subs, err := u.deps.Submissions.DeleteByUser(dbc, userID)
	if err != nil {
		log.Warn("Submission cleanup failed", "deleted", subs, "error", err)
	}

	if err := u.deps.Progress.Delete(dbc, userID); err != nil && !pkgerrors.IsNotFound(err) {
		log.Warn("Progress cleanup failed", "error", err)
	}

	tips := u.deleteTips(dbc, userID)

	if err := u.deps.Users.Delete(dbc, userID); err != nil {
		log.Error("User delete failed", "error", err)
		return DeleteAccountOutput{}, apierr.New(http.StatusInternalServerError, "user_delete_failed", errors.New("Failed to delete user"))
	}

	log.Info("Account deleted", "documents", docs, "submissions", subs, "tips", tips)
	return DeleteAccountOutput{Success: true, Message: accountDeletedMessage}, nil
}

func (u Usecases) deleteAvatar(dbc dbctx.Context, userID string) {
	if u.deps.Files == nil {
		return
	}
	usr, err := u.deps.Users.GetByID(dbc, userID)
	if err != nil {
		u.deps.Log.Warn("Avatar lookup failed", "user_id", userID, "error", err)
		return
	}
	if usr == nil || usr.AvatarFileID == "" {
		return
	}
	if err := u.deps.Files.DeleteFile(dbc.Context(), usr.AvatarFileID); err != nil {
		u.deps.Log.Warn("Avatar delete failed", "user_id", userID, "file_id", usr.AvatarFileID, "error", err)
	}
}

func (u Usecases) deleteTips(dbc dbctx.Context, userID string) int {
	if u.deps.Tips == nil {
		return 0
	}
	n, err := u.deps.Tips.DeleteByUser(dbc, userID)
	if err != nil {
		u.deps.Log.Warn("Tips cleanup failed", "user_id", userID, "deleted", n, "error", err)
	}
	return n
}
