package learning

import (
	"context"
	"testing"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

func seedProgress(t *testing.T, h *harness, userID string, xp, streak int, badges ...string) {
	t.Helper()
	rec := &types.UserProgress{UserID: userID, XP: xp, Streak: streak, Badges: types.JoinBadges(badges)}
	rec.SetActivityLog(nil)
	if _, err := h.set.Progress.Create(dbctx.Of(context.Background()), rec); err != nil {
		t.Fatalf("seed progress %s: %v", userID, err)
	}
}

func TestLeaderboardOrdersByXP(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	users := []*types.User{
		{ID: "u-ada", Name: "Ada", AvatarFileID: "file-ada"},
		{ID: "u-bob", Email: "bob@example.com"},
	}
	for _, u := range users {
		if err := h.tx.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	seedProgress(t, h, "u-ada", 40, 3, "Going Strong")
	seedProgress(t, h, "u-bob", 90, 1)
	seedProgress(t, h, "u-ghost", 40, 0)

	out, err := h.uc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(out.Leaderboard) != 3 {
		t.Fatalf("entries: want=3 got=%d", len(out.Leaderboard))
	}

	first, second, third := out.Leaderboard[0], out.Leaderboard[1], out.Leaderboard[2]
	if first.UserID != "u-bob" || first.Name != "bob@example.com" || first.Avatar != nil {
		t.Fatalf("first: %+v", first)
	}
	if second.UserID != "u-ada" || second.Name != "Ada" || second.Avatar == nil || *second.Avatar != "file-ada" {
		t.Fatalf("second: %+v", second)
	}
	if len(second.Badges) != 1 || second.Badges[0] != "Going Strong" {
		t.Fatalf("second badges: %v", second.Badges)
	}
	if third.UserID != "u-ghost" || third.Name != unknownUserName {
		t.Fatalf("third: %+v", third)
	}
	if third.Badges == nil {
		t.Fatalf("badges should be an empty list, not nil")
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	h := newHarness(t, nil)
	out, err := h.uc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if out.Leaderboard == nil || len(out.Leaderboard) != 0 {
		t.Fatalf("want empty list, got %#v", out.Leaderboard)
	}
}
