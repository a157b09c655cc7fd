package learning

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/data/repos/testutil"
	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/ingestion"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// fakeAI replays scripted replies and records the prompts it saw.
type fakeAI struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (f *fakeAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("fakeAI: no scripted reply")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakeAI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeFetcher struct {
	text string
	err  error
}

func (f fakeFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	return f.text, f.err
}

// clock hands out increasing times, one step per call.
type clock struct {
	now  time.Time
	step time.Duration
}

func (c *clock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type harness struct {
	uc    Usecases
	set   repos.Set
	tx    *gorm.DB
	ai    *fakeAI
	clock *clock
}

func newHarness(t *testing.T, fetcher ingestion.Fetcher) *harness {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := logger.Nop()
	set := repos.NewGormSet(tx, log)
	ai := &fakeAI{}
	clk := &clock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
	uc := New(UsecasesDeps{
		Log:         log,
		AI:          ai,
		Resolver:    ingestion.NewResolver(log, fetcher, nil),
		Documents:   set.Documents,
		Progress:    set.Progress,
		Submissions: set.Submissions,
		Users:       set.Users,
		Now:         clk.Now,
	})
	return &harness{uc: uc, set: set, tx: tx, ai: ai, clock: clk}
}

// failingProgress rejects every read and write of a progress record.
type failingProgress struct {
	repos.ProgressRepo
}

var errProgressDown = errors.New("progress store: connection refused")

func (failingProgress) Get(dbc dbctx.Context, userID string) (*types.UserProgress, error) {
	return nil, errProgressDown
}

func (failingProgress) Create(dbc dbctx.Context, p *types.UserProgress) (*types.UserProgress, error) {
	return nil, errProgressDown
}

func (failingProgress) Save(dbc dbctx.Context, p *types.UserProgress) error {
	return errProgressDown
}

// breakProgress swaps the harness progress store for one that always fails.
func (h *harness) breakProgress() {
	deps := h.uc.deps
	deps.Progress = failingProgress{h.set.Progress}
	h.uc = New(deps)
}

func wantAPIError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %d %q, got nil error", status, msg)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("want *apierr.Error, got %T: %v", err, err)
	}
	if ae.Status != status {
		t.Fatalf("status: want=%d got=%d (%s)", status, ae.Status, ae.Message())
	}
	if msg != "" && ae.Message() != msg {
		t.Fatalf("message: want=%q got=%q", msg, ae.Message())
	}
}
