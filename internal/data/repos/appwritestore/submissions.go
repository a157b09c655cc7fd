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

type submissionRecord struct {
	ID              string `json:"$id,omitempty"`
	SystemCreatedAt string `json:"$createdAt,omitempty"`
	UserID          string `json:"user_id"`
	DocID           string `json:"doc_id"`
	UserSolution    string `json:"user_solution"`
	Feedback        string `json:"feedback"`
	XPAwarded       int    `json:"xp_awarded"`
	// Success needs a boolean attribute on the collection; rows written
	// before it existed decode as false.
	Success         bool   `json:"success"`
}

func (r submissionRecord) toDomain() *types.ChallengeSubmission {
	return &types.ChallengeSubmission{
		ID:           r.ID,
		UserID:       r.UserID,
		DocID:        r.DocID,
		UserSolution: r.UserSolution,
		Feedback:     r.Feedback,
		XPAwarded:    r.XPAwarded,
		Success:      r.Success,
		CreatedAt:    parseISO(r.SystemCreatedAt),
	}
}

func decodeSubmission(raw json.RawMessage) (*types.ChallengeSubmission, error) {
	var rec submissionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return rec.toDomain(), nil
}

type submissionRepo struct {
	client *appwrite.Client
	dbID   string
	coll   string
	log    *logger.Logger
}

func NewSubmissionRepo(client *appwrite.Client, cfg Config, baseLog *logger.Logger) learning.SubmissionRepo {
	return &submissionRepo{
		client: client,
		dbID:   cfg.DatabaseID,
		coll:   cfg.SubmissionsCollectionID,
		log:    baseLog.With("repo", "AppwriteSubmissionRepo"),
	}
}

func (r *submissionRepo) Create(dbc dbctx.Context, s *types.ChallengeSubmission) (*types.ChallengeSubmission, error) {
	raw, err := r.client.CreateDocument(dbc.Context(), r.dbID, r.coll, s.ID, submissionRecord{
		UserID:       s.UserID,
		DocID:        s.DocID,
		UserSolution: s.UserSolution,
		Feedback:     s.Feedback,
		XPAwarded:    s.XPAwarded,
		Success:      s.Success,
	})
	if err != nil {
		return nil, translate(err)
	}
	return decodeSubmission(raw)
}

func (r *submissionRepo) ListByUser(dbc dbctx.Context, userID string) ([]*types.ChallengeSubmission, error) {
	out := []*types.ChallengeSubmission{}
	if userID == "" {
		return out, nil
	}
	raws, err := r.client.ListDocuments(dbc.Context(), r.dbID, r.coll, appwrite.Equal("user_id", userID))
	if err != nil {
		return nil, err
	}
	for _, raw := range raws {
		s, err := decodeSubmission(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *submissionRepo) DeleteByUser(dbc dbctx.Context, userID string) (int, error) {
	subs, err := r.ListByUser(dbc, userID)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, s := range subs {
		if err := r.client.DeleteDocument(dbc.Context(), r.dbID, r.coll, s.ID); err != nil && !appwrite.IsNotFound(err) {
			return deleted, fmt.Errorf("delete submission %s: %w", s.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
