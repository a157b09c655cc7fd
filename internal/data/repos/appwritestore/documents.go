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

// documentRecord is the collection layout. Steps live in the "slider"
// attribute for compatibility with existing data.
type documentRecord struct {
	ID              string `json:"$id,omitempty"`
	SystemCreatedAt string `json:"$createdAt,omitempty"`
	SystemUpdatedAt string `json:"$updatedAt,omitempty"`
	Title           string `json:"title"`
	Text            string `json:"text"`
	CreatedBy       string `json:"createdBy"`
	CreatedAt       string `json:"createdAt,omitempty"`
	Story           string `json:"story"`
	Slider          string `json:"slider"`
	Challenges      string `json:"challenges"`
	Flashcards      string `json:"flashcards"`
}

func (r documentRecord) toDomain() *types.Document {
	created := parseISO(r.CreatedAt)
	if created.IsZero() {
		created = parseISO(r.SystemCreatedAt)
	}
	return &types.Document{
		ID:         r.ID,
		Title:      r.Title,
		Text:       r.Text,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  created,
		UpdatedAt:  parseISO(r.SystemUpdatedAt),
		Story:      r.Story,
		Steps:      r.Slider,
		Challenges: r.Challenges,
		Flashcards: r.Flashcards,
	}
}

func decodeDocument(raw json.RawMessage) (*types.Document, error) {
	var rec documentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return rec.toDomain(), nil
}

type documentRepo struct {
	client *appwrite.Client
	dbID   string
	coll   string
	log    *logger.Logger
}

func NewDocumentRepo(client *appwrite.Client, cfg Config, baseLog *logger.Logger) learning.DocumentRepo {
	return &documentRepo{
		client: client,
		dbID:   cfg.DatabaseID,
		coll:   cfg.DocsCollectionID,
		log:    baseLog.With("repo", "AppwriteDocumentRepo"),
	}
}

func (r *documentRepo) Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error) {
	data := map[string]any{
		"title":      doc.Title,
		"text":       doc.Text,
		"createdBy":  doc.CreatedBy,
		"createdAt":  isoNow(),
		"story":      doc.Story,
		"slider":     doc.Steps,
		"challenges": doc.Challenges,
		"flashcards": doc.Flashcards,
	}
	raw, err := r.client.CreateDocument(dbc.Context(), r.dbID, r.coll, doc.ID, data)
	if err != nil {
		return nil, translate(err)
	}
	return decodeDocument(raw)
}

func (r *documentRepo) GetByID(dbc dbctx.Context, id string) (*types.Document, error) {
	if id == "" {
		return nil, nil
	}
	raw, err := r.client.GetDocument(dbc.Context(), r.dbID, r.coll, id)
	if appwrite.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

func (r *documentRepo) ListByOwner(dbc dbctx.Context, userID string) ([]*types.Document, error) {
	out := []*types.Document{}
	if userID == "" {
		return out, nil
	}
	raws, err := r.client.ListDocuments(dbc.Context(), r.dbID, r.coll, appwrite.Equal("createdBy", userID))
	if err != nil {
		return nil, err
	}
	for _, raw := range raws {
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *documentRepo) UpdateGenerated(dbc dbctx.Context, id string, gen types.GeneratedContent) (*types.Document, error) {
	raw, err := r.client.UpdateDocument(dbc.Context(), r.dbID, r.coll, id, map[string]any{
		"story":      gen.Story,
		"slider":     gen.Steps,
		"challenges": gen.Challenges,
		"flashcards": gen.Flashcards,
	})
	if err != nil {
		return nil, translate(err)
	}
	return decodeDocument(raw)
}

func (r *documentRepo) Delete(dbc dbctx.Context, id string) error {
	return translate(r.client.DeleteDocument(dbc.Context(), r.dbID, r.coll, id))
}

func (r *documentRepo) DeleteByOwner(dbc dbctx.Context, userID string) (int, error) {
	docs, err := r.ListByOwner(dbc, userID)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, d := range docs {
		if err := r.client.DeleteDocument(dbc.Context(), r.dbID, r.coll, d.ID); err != nil && !appwrite.IsNotFound(err) {
			return deleted, fmt.Errorf("delete document %s: %w", d.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
