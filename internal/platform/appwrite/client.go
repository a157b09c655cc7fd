package appwrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/appwrite/sdk-for-go/appwrite"
	sdkclient "github.com/appwrite/sdk-for-go/client"
	"github.com/appwrite/sdk-for-go/databases"
	"github.com/appwrite/sdk-for-go/query"
	"github.com/appwrite/sdk-for-go/storage"
	"github.com/appwrite/sdk-for-go/users"

	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

const (
	DefaultTimeout = 15 * time.Second
	// UniqueID asks the server to generate the document id.
	UniqueID = "unique()"
	pageSize = 100
)

type Config struct {
	Endpoint  string
	ProjectID string
	APIKey    string
	Timeout   time.Duration
}

// Error is a non-2xx reply from Appwrite.
type Error struct {
	StatusCode int
	Message    string
	Type       string
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("appwrite http %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("appwrite http %d: %s", e.StatusCode, e.Message)
}

func (e *Error) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

func IsConflict(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.StatusCode == http.StatusConflict
}

// Client wraps the Appwrite server SDK services the stores need. Every call
// is bounded by the request context and the configured timeout.
type Client struct {
	log       *logger.Logger
	timeout   time.Duration
	databases *databases.Databases
	users     *users.Users
	storage   *storage.Storage
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("missing APPWRITE_ENDPOINT")
	}
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, fmt.Errorf("missing APPWRITE_PROJECT_ID")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing APPWRITE_API_KEY")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	clt := sdk.NewClient(
		sdk.WithEndpoint(endpoint),
		sdk.WithProject(strings.TrimSpace(cfg.ProjectID)),
		sdk.WithKey(strings.TrimSpace(cfg.APIKey)),
	)
	return &Client{
		log:       log.With("client", "appwrite"),
		timeout:   timeout,
		databases: sdk.NewDatabases(clt),
		users:     sdk.NewUsers(clt),
		storage:   sdk.NewStorage(clt),
	}, nil
}

// decoder is implemented by every SDK model; it exposes the raw response
// body, custom document attributes included.
type decoder interface {
	Decode(value interface{}) error
}

func raw(m decoder) (json.RawMessage, error) {
	var out json.RawMessage
	if err := m.Decode(&out); err != nil {
		return nil, fmt.Errorf("appwrite decode error: %w", err)
	}
	return out, nil
}

func (c *Client) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (json.RawMessage, error) {
	return call(ctx, c, "get_document", func() (json.RawMessage, error) {
		doc, err := c.databases.GetDocument(databaseID, collectionID, documentID)
		if err != nil {
			return nil, err
		}
		return raw(doc)
	})
}

type documentPage struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

// ListDocuments returns every document matching queries, following pages
// until the server runs out.
func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for offset := 0; ; offset += pageSize {
		q := append(append([]string{}, queries...), query.Limit(pageSize), query.Offset(offset))
		page, err := call(ctx, c, "list_documents", func() (documentPage, error) {
			var page documentPage
			list, err := c.databases.ListDocuments(databaseID, collectionID, c.databases.WithListDocumentsQueries(q))
			if err != nil {
				return page, err
			}
			if err := list.Decode(&page); err != nil {
				return page, fmt.Errorf("appwrite decode error: %w", err)
			}
			return page, nil
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Documents...)
		if len(page.Documents) < pageSize || (page.Total > 0 && len(all) >= page.Total) {
			return all, nil
		}
	}
}

func (c *Client) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error) {
	if documentID == "" {
		documentID = UniqueID
	}
	return call(ctx, c, "create_document", func() (json.RawMessage, error) {
		doc, err := c.databases.CreateDocument(databaseID, collectionID, documentID, data)
		if err != nil {
			return nil, err
		}
		return raw(doc)
	})
}

func (c *Client) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error) {
	return call(ctx, c, "update_document", func() (json.RawMessage, error) {
		doc, err := c.databases.UpdateDocument(databaseID, collectionID, documentID, c.databases.WithUpdateDocumentData(data))
		if err != nil {
			return nil, err
		}
		return raw(doc)
	})
}

func (c *Client) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	_, err := call(ctx, c, "delete_document", func() (*interface{}, error) {
		return c.databases.DeleteDocument(databaseID, collectionID, documentID)
	})
	return err
}

func (c *Client) GetUser(ctx context.Context, userID string) (json.RawMessage, error) {
	return call(ctx, c, "get_user", func() (json.RawMessage, error) {
		u, err := c.users.Get(userID)
		if err != nil {
			return nil, err
		}
		return raw(u)
	})
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	_, err := call(ctx, c, "delete_user", func() (*interface{}, error) {
		return c.users.Delete(userID)
	})
	return err
}

func (c *Client) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	_, err := call(ctx, c, "delete_file", func() (*interface{}, error) {
		return c.storage.DeleteFile(bucketID, fileID)
	})
	return err
}

type result[T any] struct {
	val T
	err error
}

// call runs one SDK request. The SDK methods take no context, so the
// request runs on its own goroutine and the caller stops waiting once ctx
// or the client timeout expires.
func call[T any](ctx context.Context, c *Client, op string, fn func() (T, error)) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	start := time.Now()
	done := make(chan result[T], 1)
	go func() {
		v, err := fn()
		done <- result[T]{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		c.log.Warn("Appwrite request abandoned", "op", op, "error", ctx.Err())
		return zero, fmt.Errorf("appwrite %s: %w", op, ctx.Err())
	case r := <-done:
		c.log.Debug("Appwrite request", "op", op, "duration", time.Since(start).String(), "ok", r.err == nil)
		if r.err != nil {
			return zero, translateSDKError(r.err)
		}
		return r.val, nil
	}
}

// translateSDKError turns the SDK's error into *Error so callers can branch
// on the status code.
func translateSDKError(err error) error {
	var ae *sdkclient.AppwriteError
	if !errors.As(err, &ae) {
		return err
	}
	out := &Error{StatusCode: ae.GetStatusCode(), Message: strings.TrimSpace(ae.Error())}
	var payload struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if json.Unmarshal([]byte(out.Message), &payload) == nil && payload.Message != "" {
		out.Message = payload.Message
		out.Type = payload.Type
	}
	return out
}

// Equal matches documents whose attribute equals value.
func Equal(attribute string, value any) string {
	return query.Equal(attribute, value)
}
