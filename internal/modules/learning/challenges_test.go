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

func seedChallengeDoc(t *testing.T, h *harness, title, challenges string) *types.Document {
	t.Helper()
	dbc := dbctx.Of(context.Background())
	doc, err := h.set.Documents.Create(dbc, &types.Document{Title: title, Text: "body", CreatedBy: "u1"})
	if err != nil {
		t.Fatalf("seed doc: %v", err)
	}
	if challenges == "" {
		return doc
	}
	doc, err = h.set.Documents.UpdateGenerated(dbc, doc.ID, types.GeneratedContent{Challenges: challenges, Flashcards: "[]"})
	if err != nil {
		t.Fatalf("seed challenges: %v", err)
	}
	return doc
}

func TestSubmitChallengeAwardsXP(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	doc := seedChallengeDoc(t, h, "Goroutines", "Challenge 1: spawn one. Challenge Ended")
	h.ai.replies = []string{"Here you go:\n```json\n{\"success\": true, \"feedback\": \"Good job\", \"xp\": 7}\n```"}

	out, err := h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: doc.ID, UserSolution: "go f()"})
	if err != nil {
		t.Fatalf("SubmitChallenge: %v", err)
	}
	if !out.Success || out.Feedback != "Good job" || out.XPAwarded != 7 {
		t.Fatalf("out: %+v", out)
	}
	if p := h.ai.prompts[0]; !strings.Contains(p, "spawn one") || !strings.Contains(p, "go f()") {
		t.Fatalf("prompt should carry the challenge and solution:\n%s", p)
	}

	subs, err := h.set.Submissions.ListByUser(dbctx.Of(ctx), "u1")
	if err != nil || len(subs) != 1 {
		t.Fatalf("ListByUser: n=%d err=%v", len(subs), err)
	}
	if subs[0].XPAwarded != 7 || !subs[0].Success || subs[0].DocID != doc.ID {
		t.Fatalf("stored submission: %+v", subs[0])
	}

	prog, err := h.uc.GetProgress(ctx, GetProgressInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if prog.XP != 7 || prog.Streak != 1 {
		t.Fatalf("progress: %+v", prog)
	}
	if len(prog.Activities) != 1 || !strings.Contains(prog.Activities[0].Message, "from Goroutines") {
		t.Fatalf("activities: %+v", prog.Activities)
	}
}

func TestSubmitChallengeSurvivesAwardFailure(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	doc := seedChallengeDoc(t, h, "Select", "Challenge 1: use select. Challenge Ended")
	h.ai.replies = []string{`{"success": true, "feedback": "Nice", "xp": 5}`}
	h.breakProgress()

	out, err := h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: doc.ID, UserSolution: "select {}"})
	if err != nil {
		t.Fatalf("SubmitChallenge: %v", err)
	}
	if !out.Success || out.XPAwarded != 5 || out.Feedback != "Nice" {
		t.Fatalf("out: %+v", out)
	}
	subs, err := h.set.Submissions.ListByUser(dbctx.Of(ctx), "u1")
	if err != nil || len(subs) != 1 || subs[0].XPAwarded != 5 {
		t.Fatalf("submission should persist: subs=%+v err=%v", subs, err)
	}
}

func TestSubmitChallengeUnparseableVerdict(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	doc := seedChallengeDoc(t, h, "Maps", "Challenge 1: make a map. Challenge Ended")
	h.ai.replies = []string{"I could not judge this one."}

	out, err := h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: doc.ID, UserSolution: "m := map[string]int{}"})
	if err != nil {
		t.Fatalf("SubmitChallenge: %v", err)
	}
	if out.Success || out.XPAwarded != 0 || out.Feedback == "" {
		t.Fatalf("out: %+v", out)
	}
	prog, err := h.set.Progress.Get(dbctx.Of(ctx), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if prog != nil {
		t.Fatalf("zero XP must not touch progress, got %+v", prog)
	}
}

func TestSubmitChallengeErrors(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: "d"})
	wantAPIError(t, err, http.StatusBadRequest, "Missing required fields")

	_, err = h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: "missing", UserSolution: "x"})
	wantAPIError(t, err, http.StatusNotFound, "Challenge text not found")

	bare := seedChallengeDoc(t, h, "Bare", "")
	_, err = h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: bare.ID, UserSolution: "x"})
	wantAPIError(t, err, http.StatusNotFound, "Challenge text not found")
	if h.ai.calls() != 0 {
		t.Fatalf("no model call expected without challenges")
	}

	doc := seedChallengeDoc(t, h, "Ready", "Challenge 1: x. Challenge Ended")
	h.ai.err = errors.New("boom")
	_, err = h.uc.SubmitChallenge(ctx, SubmitChallengeInput{UserID: "u1", DocID: doc.ID, UserSolution: "x"})
	wantAPIError(t, err, http.StatusInternalServerError, "Gemini API failed")

	subs, _ := h.set.Submissions.ListByUser(dbctx.Of(ctx), "u1")
	if len(subs) != 0 {
		t.Fatalf("failed evaluations must not be recorded, got %d", len(subs))
	}
}
