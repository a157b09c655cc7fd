package app

import (
	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/modules/learning"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/ingestion"
	"github.com/yungbote/fundocs-backend/internal/modules/user"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type Usecases struct {
	Learning learning.Usecases
	User     user.Usecases
}

func wireUsecases(log *logger.Logger, clients Clients, set repos.Set, files repos.FileStore) Usecases {
	log.Info("Wiring usecases...")
	return Usecases{
		Learning: learning.New(learning.UsecasesDeps{
			Log:         log.With("module", "learning"),
			AI:          clients.AI,
			Resolver:    ingestion.NewResolver(log, clients.Fetcher, clients.Search),
			Documents:   set.Documents,
			Progress:    set.Progress,
			Submissions: set.Submissions,
			Users:       set.Users,
		}),
		User: user.New(user.UsecasesDeps{
			Log:         log.With("module", "user"),
			Users:       set.Users,
			Documents:   set.Documents,
			Submissions: set.Submissions,
			Progress:    set.Progress,
			Files:       files,
			Tips:        set.Tips,
		}),
	}
}
