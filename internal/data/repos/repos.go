package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/fundocs-backend/internal/data/repos/learning"
	"github.com/yungbote/fundocs-backend/internal/data/repos/user"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type DocumentRepo = learning.DocumentRepo
type ProgressRepo = learning.ProgressRepo
type SubmissionRepo = learning.SubmissionRepo
type UserRepo = user.UserRepo

// FileStore deletes stored files such as avatars. Missing files are not errors.
type FileStore interface {
	DeleteFile(ctx context.Context, fileID string) error
}

// TipStore holds study tips users write from the frontend. Only account
// deletion touches it.
type TipStore interface {
	DeleteByUser(dbc dbctx.Context, userID string) (int, error)
}

// Set is every store the usecases need, built against one backend.
type Set struct {
	Documents   DocumentRepo
	Progress    ProgressRepo
	Submissions SubmissionRepo
	Users       UserRepo
	// Tips is nil when the backend keeps no tips collection.
	Tips TipStore
}

// NewGormSet builds the postgres/sqlite-backed stores.
func NewGormSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Documents:   learning.NewDocumentRepo(db, log),
		Progress:    learning.NewProgressRepo(db, log),
		Submissions: learning.NewSubmissionRepo(db, log),
		Users:       user.NewUserRepo(db, log),
	}
}
