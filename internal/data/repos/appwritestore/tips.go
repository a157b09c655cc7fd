package appwritestore

import (
	"encoding/json"
	"fmt"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// tipStore only needs ids; the frontend owns the rest of the tip layout.
type tipStore struct {
	client *appwrite.Client
	dbID   string
	coll   string
	log    *logger.Logger
}

func NewTipStore(client *appwrite.Client, cfg Config, baseLog *logger.Logger) repos.TipStore {
	return &tipStore{
		client: client,
		dbID:   cfg.DatabaseID,
		coll:   cfg.TipsCollectionID,
		log:    baseLog.With("repo", "AppwriteTipStore"),
	}
}

func (s *tipStore) DeleteByUser(dbc dbctx.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	raws, err := s.client.ListDocuments(dbc.Context(), s.dbID, s.coll, appwrite.Equal("user_id", userID))
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, raw := range raws {
		var rec struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			return deleted, fmt.Errorf("decode tip: %w", err)
		}
		if err := s.client.DeleteDocument(dbc.Context(), s.dbID, s.coll, rec.ID); err != nil && !appwrite.IsNotFound(err) {
			return deleted, fmt.Errorf("delete tip %s: %w", rec.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
