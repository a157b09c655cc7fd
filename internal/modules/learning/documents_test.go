package learning

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

func TestFetchCleanDocFromTextAwardsOneXP(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	out, err := h.uc.FetchCleanDoc(ctx, FetchCleanDocInput{
		Source: "  Go channels are typed conduits for values  ",
		UserID: "u1",
	})
	if err != nil {
		t.Fatalf("FetchCleanDoc: %v", err)
	}
	if out.Doc.Title != "Go channels are typed conduits" {
		t.Fatalf("title: got %q", out.Doc.Title)
	}
	if out.Doc.Text != "Go channels are typed conduits for values" || out.Doc.CreatedBy != "u1" {
		t.Fatalf("doc: unexpected %+v", out.Doc)
	}
	if out.Doc.Story != "" || out.Doc.Steps != "" || out.Doc.Challenges != "" {
		t.Fatalf("generated fields should start empty: %+v", out.Doc)
	}

	p, err := h.set.Progress.Get(dbctx.Of(ctx), "u1")
	if err != nil || p == nil {
		t.Fatalf("progress: got=%v err=%v", p, err)
	}
	if p.XP != 1 || p.Streak != 1 {
		t.Fatalf("progress: xp=%d streak=%d", p.XP, p.Streak)
	}
	log := p.ActivityLog()
	if len(log) != 1 || log[0].Message != "Earned 1 XP from adding a document. Streak is now 1 day(s)." {
		t.Fatalf("activity: %+v", log)
	}
}

func TestFetchCleanDocSurvivesAwardFailure(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.breakProgress()

	out, err := h.uc.FetchCleanDoc(ctx, FetchCleanDocInput{Source: "Slices share backing arrays", UserID: "u1"})
	if err != nil {
		t.Fatalf("FetchCleanDoc: %v", err)
	}
	if out.Doc.ID == "" {
		t.Fatalf("doc: %+v", out.Doc)
	}
	docs, err := h.set.Documents.ListByOwner(dbctx.Of(ctx), "u1")
	if err != nil || len(docs) != 1 || docs[0].ID != out.Doc.ID {
		t.Fatalf("document should persist: docs=%d err=%v", len(docs), err)
	}
	if p, _ := h.set.Progress.Get(dbctx.Of(ctx), "u1"); p != nil {
		t.Fatalf("no progress expected, got %+v", p)
	}
}

func TestFetchCleanDocFromURL(t *testing.T) {
	h := newHarness(t, fakeFetcher{text: "page body"})
	out, err := h.uc.FetchCleanDoc(context.Background(), FetchCleanDocInput{
		Source: "https://example.com/guides/intro-to-go",
		UserID: "u1",
	})
	if err != nil {
		t.Fatalf("FetchCleanDoc: %v", err)
	}
	if out.Doc.Title != "intro-to-go" || out.Doc.Text != "page body" {
		t.Fatalf("doc: unexpected %+v", out.Doc)
	}
}

func TestFetchCleanDocValidation(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.uc.FetchCleanDoc(ctx, FetchCleanDocInput{Source: "  ", UserID: "u1"})
	wantAPIError(t, err, http.StatusBadRequest, "No input provided")

	_, err = h.uc.FetchCleanDoc(ctx, FetchCleanDocInput{Source: "text"})
	wantAPIError(t, err, http.StatusBadRequest, "User ID is required")
}

func TestFetchCleanDocUnreachableURLWithoutSearch(t *testing.T) {
	h := newHarness(t, fakeFetcher{err: errors.New("dial tcp: refused")})
	_, err := h.uc.FetchCleanDoc(context.Background(), FetchCleanDocInput{
		Source: "https://unreachable.example/doc",
		UserID: "u1",
	})
	wantAPIError(t, err, http.StatusBadRequest, "")
	if !strings.HasPrefix(err.Error(), "Failed to process source: ") {
		t.Fatalf("message: got %q", err.Error())
	}
}

func TestListUserDocs(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.uc.ListUserDocs(ctx, ListUserDocsInput{})
	wantAPIError(t, err, http.StatusBadRequest, "userId is required")

	empty, err := h.uc.ListUserDocs(ctx, ListUserDocsInput{UserID: "u1"})
	if err != nil || empty.Docs == nil || len(empty.Docs) != 0 {
		t.Fatalf("empty list: got=%v err=%v", empty.Docs, err)
	}

	for _, src := range []string{"first doc", "second doc"} {
		if _, err := h.uc.FetchCleanDoc(ctx, FetchCleanDocInput{Source: src, UserID: "u1"}); err != nil {
			t.Fatalf("FetchCleanDoc: %v", err)
		}
	}
	if _, err := h.uc.FetchCleanDoc(ctx, FetchCleanDocInput{Source: "someone else", UserID: "u2"}); err != nil {
		t.Fatalf("FetchCleanDoc: %v", err)
	}

	out, err := h.uc.ListUserDocs(ctx, ListUserDocsInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("ListUserDocs: %v", err)
	}
	if len(out.Docs) != 2 {
		t.Fatalf("ListUserDocs: want=2 got=%d", len(out.Docs))
	}
}

func TestDeleteDocOwnership(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	doc, err := h.set.Documents.Create(dbctx.Of(ctx), &types.Document{Title: "mine", CreatedBy: "owner"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = h.uc.DeleteDoc(ctx, DeleteDocInput{UserID: "owner"})
	wantAPIError(t, err, http.StatusBadRequest, "userId and docId are required")

	_, err = h.uc.DeleteDoc(ctx, DeleteDocInput{UserID: "intruder", DocID: doc.ID})
	wantAPIError(t, err, http.StatusForbidden, "Unauthorized to delete this document")

	out, err := h.uc.DeleteDoc(ctx, DeleteDocInput{UserID: "owner", DocID: doc.ID})
	if err != nil {
		t.Fatalf("DeleteDoc: %v", err)
	}
	if !out.Success || out.Message != "Document deleted successfully" {
		t.Fatalf("DeleteDoc: unexpected %+v", out)
	}

	_, err = h.uc.DeleteDoc(ctx, DeleteDocInput{UserID: "owner", DocID: doc.ID})
	wantAPIError(t, err, http.StatusNotFound, "Document not found")
}
