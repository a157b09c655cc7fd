package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type ProgressRepo interface {
	// Get returns nil, nil for a user with no record yet.
	Get(dbc dbctx.Context, userID string) (*types.UserProgress, error)
	// Create fails with ErrConflict when the user already has a record.
	Create(dbc dbctx.Context, p *types.UserProgress) (*types.UserProgress, error)
	Save(dbc dbctx.Context, p *types.UserProgress) error
	List(dbc dbctx.Context) ([]*types.UserProgress, error)
	Delete(dbc dbctx.Context, userID string) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

func (r *progressRepo) Get(dbc dbctx.Context, userID string) (*types.UserProgress, error) {
	if userID == "" {
		return nil, nil
	}
	var out []*types.UserProgress
	if err := r.tx(dbc).Where("user_id = ?", userID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *progressRepo) Create(dbc dbctx.Context, p *types.UserProgress) (*types.UserProgress, error) {
	if err := r.tx(dbc).Create(p).Error; err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *progressRepo) Save(dbc dbctx.Context, p *types.UserProgress) error {
	res := r.tx(dbc).
		Model(&types.UserProgress{}).
		Where("user_id = ?", p.UserID).
		Updates(map[string]any{
			"xp":               p.XP,
			"streak":           p.Streak,
			"badges":           p.Badges,
			"activities":       p.Activities,
			"last_activity_at": p.LastActivityAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (r *progressRepo) List(dbc dbctx.Context) ([]*types.UserProgress, error) {
	out := []*types.UserProgress{}
	if err := r.tx(dbc).Order("user_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *progressRepo) Delete(dbc dbctx.Context, userID string) error {
	res := r.tx(dbc).Where("user_id = ?", userID).Delete(&types.UserProgress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
