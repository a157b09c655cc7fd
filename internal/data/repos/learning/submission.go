package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type SubmissionRepo interface {
	Create(dbc dbctx.Context, s *types.ChallengeSubmission) (*types.ChallengeSubmission, error)
	ListByUser(dbc dbctx.Context, userID string) ([]*types.ChallengeSubmission, error)
	DeleteByUser(dbc dbctx.Context, userID string) (int, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (r *submissionRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

func (r *submissionRepo) Create(dbc dbctx.Context, s *types.ChallengeSubmission) (*types.ChallengeSubmission, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := r.tx(dbc).Create(s).Error; err != nil {
		return nil, translateError(err)
	}
	return s, nil
}

func (r *submissionRepo) ListByUser(dbc dbctx.Context, userID string) ([]*types.ChallengeSubmission, error) {
	out := []*types.ChallengeSubmission{}
	if userID == "" {
		return out, nil
	}
	if err := r.tx(dbc).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *submissionRepo) DeleteByUser(dbc dbctx.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	res := r.tx(dbc).Where("user_id = ?", userID).Delete(&types.ChallengeSubmission{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
