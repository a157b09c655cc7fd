package appwritestore

import (
	"encoding/json"
	"fmt"

	"github.com/yungbote/fundocs-backend/internal/data/repos/user"
	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// userRecord is the Appwrite account; the avatar file id lives in prefs.
type userRecord struct {
	ID           string `json:"$id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Registration string `json:"registration"`
	Prefs        struct {
		Avatar string `json:"avatar"`
	} `json:"prefs"`
}

type userRepo struct {
	client *appwrite.Client
	log    *logger.Logger
}

func NewUserRepo(client *appwrite.Client, baseLog *logger.Logger) user.UserRepo {
	return &userRepo{client: client, log: baseLog.With("repo", "AppwriteUserRepo")}
}

func (r *userRepo) GetByID(dbc dbctx.Context, id string) (*types.User, error) {
	if id == "" {
		return nil, nil
	}
	raw, err := r.client.GetUser(dbc.Context(), id)
	if appwrite.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &types.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		AvatarFileID: rec.Prefs.Avatar,
		CreatedAt:    parseISO(rec.Registration),
	}, nil
}

func (r *userRepo) Delete(dbc dbctx.Context, id string) error {
	return translate(r.client.DeleteUser(dbc.Context(), id))
}
