package user

import (
	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Users       repos.UserRepo
	Documents   repos.DocumentRepo
	Submissions repos.SubmissionRepo
	Progress    repos.ProgressRepo
	// Optional: avatars are skipped without a file store.
	Files repos.FileStore
	// Optional: tips are skipped when the backend has no tips collection.
	Tips repos.TipStore
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}
