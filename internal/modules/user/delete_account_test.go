package user

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/data/repos/testutil"
	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type fakeFiles struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeFiles) DeleteFile(ctx context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileID)
	return f.err
}

type fakeTips struct {
	users []string
	err   error
}

func (f *fakeTips) DeleteByUser(dbc dbctx.Context, userID string) (int, error) {
	f.users = append(f.users, userID)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func newTestUsecases(t *testing.T, files repos.FileStore) (Usecases, repos.Set, func(v any)) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	set := repos.NewGormSet(tx, logger.Nop())
	uc := New(UsecasesDeps{
		Log:         logger.Nop(),
		Users:       set.Users,
		Documents:   set.Documents,
		Submissions: set.Submissions,
		Progress:    set.Progress,
		Files:       files,
	})
	seed := func(v any) {
		t.Helper()
		if err := tx.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}
	return uc, set, seed
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	files := &fakeFiles{}
	uc, set, seed := newTestUsecases(t, files)
	ctx := context.Background()
	dbc := dbctx.Of(ctx)

	seed(&types.User{ID: "u1", Name: "Ada", AvatarFileID: "avatar-1"})
	seed(&types.User{ID: "u2", Name: "Bob"})
	seed(&types.Document{ID: "d1", Title: "a", CreatedBy: "u1"})
	seed(&types.Document{ID: "d2", Title: "b", CreatedBy: "u1"})
	seed(&types.Document{ID: "d3", Title: "c", CreatedBy: "u2"})
	seed(&types.ChallengeSubmission{ID: "s1", UserID: "u1", DocID: "d1"})
	prog := &types.UserProgress{UserID: "u1", XP: 12, Streak: 2}
	prog.SetActivityLog(nil)
	seed(prog)

	out, err := uc.DeleteAccount(ctx, DeleteAccountInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if !out.Success || out.Message != accountDeletedMessage {
		t.Fatalf("out: %+v", out)
	}
	if len(files.deleted) != 1 || files.deleted[0] != "avatar-1" {
		t.Fatalf("avatar deletes: %v", files.deleted)
	}

	if docs, _ := set.Documents.ListByOwner(dbc, "u1"); len(docs) != 0 {
		t.Fatalf("u1 documents left: %d", len(docs))
	}
	if docs, _ := set.Documents.ListByOwner(dbc, "u2"); len(docs) != 1 {
		t.Fatalf("u2 documents: want=1 got=%d", len(docs))
	}
	if subs, _ := set.Submissions.ListByUser(dbc, "u1"); len(subs) != 0 {
		t.Fatalf("submissions left: %d", len(subs))
	}
	if p, _ := set.Progress.Get(dbc, "u1"); p != nil {
		t.Fatalf("progress left: %+v", p)
	}
	if u, _ := set.Users.GetByID(dbc, "u1"); u != nil {
		t.Fatalf("user left: %+v", u)
	}
	if u, _ := set.Users.GetByID(dbc, "u2"); u == nil {
		t.Fatalf("other user was removed")
	}
}

func TestDeleteAccountToleratesMissingPieces(t *testing.T) {
	files := &fakeFiles{err: errors.New("bucket offline")}
	uc, _, seed := newTestUsecases(t, files)
	seed(&types.User{ID: "u1", AvatarFileID: "avatar-1"})

	out, err := uc.DeleteAccount(context.Background(), DeleteAccountInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if !out.Success {
		t.Fatalf("out: %+v", out)
	}
}

func TestDeleteAccountWithoutFileStore(t *testing.T) {
	uc, _, seed := newTestUsecases(t, nil)
	seed(&types.User{ID: "u1", AvatarFileID: "avatar-1"})
	if _, err := uc.DeleteAccount(context.Background(), DeleteAccountInput{UserID: "u1"}); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
}

func TestDeleteAccountErrors(t *testing.T) {
	uc, _, _ := newTestUsecases(t, &fakeFiles{})

	_, err := uc.DeleteAccount(context.Background(), DeleteAccountInput{UserID: " "})
	ae := apierr.As(err, "")
	if ae == nil || ae.Status != http.StatusBadRequest || ae.Message() != "userId is required" {
		t.Fatalf("blank user: %v", err)
	}

	_, err = uc.DeleteAccount(context.Background(), DeleteAccountInput{UserID: "ghost"})
	ae = apierr.As(err, "")
	if ae == nil || ae.Status != http.StatusInternalServerError || ae.Message() != "Failed to delete user" {
		t.Fatalf("missing user: want generic 500, got %v", err)
	}
}

type failingDocuments struct {
	repos.DocumentRepo
}

func (failingDocuments) DeleteByOwner(dbc dbctx.Context, ownerID string) (int, error) {
	return 0, errors.New("pq: relation documents does not exist")
}

func TestDeleteAccountHidesCleanupCause(t *testing.T) {
	uc, set, seed := newTestUsecases(t, nil)
	seed(&types.User{ID: "u1"})
	uc = New(UsecasesDeps{
		Log:         logger.Nop(),
		Users:       set.Users,
		Documents:   failingDocuments{set.Documents},
		Submissions: set.Submissions,
		Progress:    set.Progress,
	})

	_, err := uc.DeleteAccount(context.Background(), DeleteAccountInput{UserID: "u1"})
	ae := apierr.As(err, "")
	if ae == nil || ae.Status != http.StatusBadRequest || ae.Message() != "Failed to delete user documents" {
		t.Fatalf("document cleanup failure: %v", err)
	}
	if u, _ := set.Users.GetByID(dbctx.Of(context.Background()), "u1"); u == nil {
		t.Fatalf("user must survive a failed document cleanup")
	}
}

func TestDeleteAccountTipsCleanupIsBestEffort(t *testing.T) {
	uc, set, seed := newTestUsecases(t, nil)
	seed(&types.User{ID: "u1"})
	tips := &fakeTips{err: errors.New("tips collection offline")}
	uc = New(UsecasesDeps{
		Log:         logger.Nop(),
		Users:       set.Users,
		Documents:   set.Documents,
		Submissions: set.Submissions,
		Progress:    set.Progress,
		Tips:        tips,
	})

	out, err := uc.DeleteAccount(context.Background(), DeleteAccountInput{UserID: "u1"})
	if err != nil || !out.Success {
		t.Fatalf("DeleteAccount: out=%+v err=%v", out, err)
	}
	if len(tips.users) != 1 || tips.users[0] != "u1" {
		t.Fatalf("tips cleanup calls: %v", tips.users)
	}
	if u, _ := set.Users.GetByID(dbctx.Of(context.Background()), "u1"); u != nil {
		t.Fatalf("user should still be deleted after a tips failure")
	}
}
