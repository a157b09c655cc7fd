package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error)
	// GetByID returns nil, nil when the document does not exist.
	GetByID(dbc dbctx.Context, id string) (*types.Document, error)
	ListByOwner(dbc dbctx.Context, userID string) ([]*types.Document, error)
	// UpdateGenerated overwrites the four generated fields. ErrNotFound when missing.
	UpdateGenerated(dbc dbctx.Context, id string, gen types.GeneratedContent) (*types.Document, error)
	Delete(dbc dbctx.Context, id string) error
	DeleteByOwner(dbc dbctx.Context, userID string) (int, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

func (r *documentRepo) Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := r.tx(dbc).Create(doc).Error; err != nil {
		return nil, translateError(err)
	}
	return doc, nil
}

func (r *documentRepo) GetByID(dbc dbctx.Context, id string) (*types.Document, error) {
	if id == "" {
		return nil, nil
	}
	var out []*types.Document
	if err := r.tx(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *documentRepo) ListByOwner(dbc dbctx.Context, userID string) ([]*types.Document, error) {
	out := []*types.Document{}
	if userID == "" {
		return out, nil
	}
	if err := r.tx(dbc).
		Where("created_by = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *documentRepo) UpdateGenerated(dbc dbctx.Context, id string, gen types.GeneratedContent) (*types.Document, error) {
	res := r.tx(dbc).
		Model(&types.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"story":      gen.Story,
			"steps":      gen.Steps,
			"challenges": gen.Challenges,
			"flashcards": gen.Flashcards,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	doc, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return doc, nil
}

func (r *documentRepo) Delete(dbc dbctx.Context, id string) error {
	res := r.tx(dbc).Where("id = ?", id).Delete(&types.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (r *documentRepo) DeleteByOwner(dbc dbctx.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	res := r.tx(dbc).Where("created_by = ?", userID).Delete(&types.Document{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
