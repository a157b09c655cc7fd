package appwritestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// Config names the Appwrite database objects backing each store.
type Config struct {
	DatabaseID              string
	DocsCollectionID        string
	ProgressCollectionID    string
	SubmissionsCollectionID string
	AvatarBucketID          string

	// TipsCollectionID is optional; tips cleanup is skipped without it.
	TipsCollectionID string
}

// NewSet builds every store on top of one Appwrite client.
func NewSet(client *appwrite.Client, cfg Config, log *logger.Logger) repos.Set {
	set := repos.Set{
		Documents:   NewDocumentRepo(client, cfg, log),
		Progress:    NewProgressRepo(client, cfg, log),
		Submissions: NewSubmissionRepo(client, cfg, log),
		Users:       NewUserRepo(client, log),
	}
	if cfg.TipsCollectionID != "" {
		set.Tips = NewTipStore(client, cfg, log)
	}
	return set
}

// translate maps Appwrite 404/409 replies onto the shared sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case appwrite.IsNotFound(err):
		return fmt.Errorf("%w: %v", pkgerrors.ErrNotFound, err)
	case appwrite.IsConflict(err):
		return fmt.Errorf("%w: %v", pkgerrors.ErrConflict, err)
	default:
		return err
	}
}

func isoNow() string {
	return formatISO(time.Now().UTC())
}

func formatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// parseISO accepts Appwrite timestamps and the naive ISO strings older
// records were written with. Unparseable input yields the zero time.
func parseISO(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// FileStore deletes files from an Appwrite storage bucket.
type FileStore struct {
	client *appwrite.Client
	bucket string
	log    *logger.Logger
}

func NewFileStore(client *appwrite.Client, bucketID string, log *logger.Logger) *FileStore {
	return &FileStore{client: client, bucket: bucketID, log: log.With("store", "AppwriteFileStore")}
}

func (s *FileStore) DeleteFile(ctx context.Context, fileID string) error {
	if strings.TrimSpace(fileID) == "" {
		return nil
	}
	err := s.client.DeleteFile(ctx, s.bucket, fileID)
	if appwrite.IsNotFound(err) {
		s.log.Debug("File already deleted", "file_id", fileID)
		return nil
	}
	return err
}
