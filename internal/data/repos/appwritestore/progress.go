package appwritestore

import (
	"encoding/json"
	"fmt"

	"github.com/yungbote/fundocs-backend/internal/data/repos/learning"
	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// progressRecord is keyed by the user id. Activities are stored as an array
// of JSON-encoded strings.
type progressRecord struct {
	ID              string          `json:"$id,omitempty"`
	SystemCreatedAt string          `json:"$createdAt,omitempty"`
	UserID          string          `json:"userId"`
	XP              int             `json:"xp"`
	Streak          int             `json:"streak"`
	Badges          string          `json:"badges"`
	Activities      json.RawMessage `json:"activities"`
	UpdatedAt       *string         `json:"updatedAt"`
}

func (r progressRecord) toDomain() *types.UserProgress {
	userID := r.UserID
	if userID == "" {
		userID = r.ID
	}
	p := &types.UserProgress{
		UserID:    userID,
		XP:        r.XP,
		Streak:    r.Streak,
		Badges:    r.Badges,
		CreatedAt: parseISO(r.SystemCreatedAt),
	}
	if r.UpdatedAt != nil {
		if t := parseISO(*r.UpdatedAt); !t.IsZero() {
			p.LastActivityAt = &t
		}
	}
	p.SetActivityLog(decodeActivities(r.Activities))
	return p
}

// decodeActivities reads either the string-array layout or a single string
// holding a JSON array. Malformed entries are skipped.
func decodeActivities(raw json.RawMessage) []types.Activity {
	out := []types.Activity{}
	if len(raw) == 0 {
		return out
	}
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		var packed string
		if json.Unmarshal(raw, &packed) != nil {
			return out
		}
		var list []types.Activity
		if json.Unmarshal([]byte(packed), &list) == nil {
			return list
		}
		return out
	}
	for _, e := range entries {
		var a types.Activity
		if json.Unmarshal([]byte(e), &a) == nil {
			out = append(out, a)
		}
	}
	return out
}

func encodeActivities(log []types.Activity) []string {
	out := make([]string, 0, len(log))
	for _, a := range log {
		b, err := json.Marshal(a)
		if err != nil {
			continue
		}
		out = append(out, string(b))
	}
	return out
}

func progressData(p *types.UserProgress) map[string]any {
	data := map[string]any{
		"userId":     p.UserID,
		"xp":         p.XP,
		"streak":     p.Streak,
		"badges":     p.Badges,
		"activities": encodeActivities(p.ActivityLog()),
	}
	if p.LastActivityAt != nil {
		data["updatedAt"] = formatISO(*p.LastActivityAt)
	}
	return data
}

func decodeProgress(raw json.RawMessage) (*types.UserProgress, error) {
	var rec progressRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return rec.toDomain(), nil
}

type progressRepo struct {
	client *appwrite.Client
	dbID   string
	coll   string
	log    *logger.Logger
}

func NewProgressRepo(client *appwrite.Client, cfg Config, baseLog *logger.Logger) learning.ProgressRepo {
	return &progressRepo{
		client: client,
		dbID:   cfg.DatabaseID,
		coll:   cfg.ProgressCollectionID,
		log:    baseLog.With("repo", "AppwriteProgressRepo"),
	}
}

func (r *progressRepo) Get(dbc dbctx.Context, userID string) (*types.UserProgress, error) {
	if userID == "" {
		return nil, nil
	}
	raw, err := r.client.GetDocument(dbc.Context(), r.dbID, r.coll, userID)
	if appwrite.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeProgress(raw)
}

func (r *progressRepo) Create(dbc dbctx.Context, p *types.UserProgress) (*types.UserProgress, error) {
	raw, err := r.client.CreateDocument(dbc.Context(), r.dbID, r.coll, p.UserID, progressData(p))
	if err != nil {
		return nil, translate(err)
	}
	return decodeProgress(raw)
}

func (r *progressRepo) Save(dbc dbctx.Context, p *types.UserProgress) error {
	_, err := r.client.UpdateDocument(dbc.Context(), r.dbID, r.coll, p.UserID, progressData(p))
	return translate(err)
}

func (r *progressRepo) List(dbc dbctx.Context) ([]*types.UserProgress, error) {
	raws, err := r.client.ListDocuments(dbc.Context(), r.dbID, r.coll)
	if err != nil {
		return nil, err
	}
	out := make([]*types.UserProgress, 0, len(raws))
	for _, raw := range raws {
		p, err := decodeProgress(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *progressRepo) Delete(dbc dbctx.Context, userID string) error {
	return translate(r.client.DeleteDocument(dbc.Context(), r.dbID, r.coll, userID))
}
