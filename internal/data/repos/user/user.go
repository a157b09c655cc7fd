package user

import (
	"gorm.io/gorm"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type UserRepo interface {
	// GetByID returns nil, nil when the user does not exist.
	GetByID(dbc dbctx.Context, id string) (*types.User, error)
	Delete(dbc dbctx.Context, id string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) GetByID(dbc dbctx.Context, id string) (*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}
	if id == "" {
		return nil, nil
	}
	var results []*types.User
	if err := transaction.WithContext(dbc.Context()).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ur *userRepo) Delete(dbc dbctx.Context, id string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}
	res := transaction.WithContext(dbc.Context()).Where("id = ?", id).Delete(&types.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
