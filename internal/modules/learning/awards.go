package learning

import (
	"context"
	"fmt"
	"strings"

	types "github.com/yungbote/fundocs-backend/internal/domain"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/progress"
	"github.com/yungbote/fundocs-backend/internal/observability"
	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

type UpdateProgressInput struct {
	UserID         string `json:"user_id"`
	XPEarned       int    `json:"xp_earned"`
	ChallengeTitle string `json:"challenge_title"`
}

type UpdateProgressOutput struct {
	XP             int              `json:"xp"`
	Streak         int              `json:"streak"`
	Badges         []string         `json:"badges"`
	LatestActivity types.Activity   `json:"latest_activity"`
	Activities     []types.Activity `json:"activities"`
}

// UpdateProgress applies one XP award and returns the full activity log in
// append order.
func (u Usecases) UpdateProgress(ctx context.Context, in UpdateProgressInput) (UpdateProgressOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return UpdateProgressOutput{}, apierr.BadRequest("missing_user_id", "user_id is required")
	}
	if in.XPEarned < 0 {
		return UpdateProgressOutput{}, apierr.BadRequest("invalid_xp", "xp_earned must be a non-negative integer")
	}

	rec, res, err := u.award(ctx, userID, progress.Award{XP: in.XPEarned, Title: in.ChallengeTitle})
	if err != nil {
		u.deps.Log.Error("Progress update failed", "user_id", userID, "error", err)
		return UpdateProgressOutput{}, internalError("progress_update_failed", "Failed to update progress")
	}
	return UpdateProgressOutput{
		XP:             res.XP,
		Streak:         res.Streak,
		Badges:         res.Badges,
		LatestActivity: res.Activity,
		Activities:     rec.ActivityLog(),
	}, nil
}

type GetProgressInput struct {
	UserID string `form:"user_id"`
}

type GetProgressOutput struct {
	XP         int              `json:"xp"`
	Streak     int              `json:"streak"`
	Badges     []string         `json:"badges"`
	Activities []types.Activity `json:"activities"`
}

// GetProgress returns the stored progress with the most recent activities
// first. A user with no record reads as zero.
func (u Usecases) GetProgress(ctx context.Context, in GetProgressInput) (GetProgressOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return GetProgressOutput{}, apierr.BadRequest("missing_user_id", "user_id is required")
	}
	rec, err := u.deps.Progress.Get(dbctx.Of(ctx), userID)
	if err != nil {
		u.deps.Log.Error("Progress lookup failed", "user_id", userID, "error", err)
		return GetProgressOutput{}, internalError("progress_lookup_failed", "Failed to fetch progress")
	}
	if rec == nil {
		return GetProgressOutput{Badges: []string{}, Activities: []types.Activity{}}, nil
	}
	return GetProgressOutput{
		XP:         rec.XP,
		Streak:     rec.Streak,
		Badges:     rec.BadgeList(),
		Activities: progress.Recent(rec.ActivityLog(), progress.RecentActivityLimit),
	}, nil
}

// award loads or lazily creates the user's record, evaluates the award and
// persists the result.
func (u Usecases) award(ctx context.Context, userID string, a progress.Award) (*types.UserProgress, progress.Result, error) {
	dbc := dbctx.Of(ctx)
	rec, err := u.loadOrCreateProgress(dbc, userID)
	if err != nil {
		return nil, progress.Result{}, err
	}

	now := u.now()
	prev := rec.BadgeList()
	res := progress.Evaluate(progress.StateOf(rec), a, now, u.rules())

	rec.XP = res.XP
	rec.Streak = res.Streak
	rec.Badges = types.JoinBadges(res.Badges)
	rec.LastActivityAt = &now
	rec.SetActivityLog(append(rec.ActivityLog(), res.Activity))
	if err := u.deps.Progress.Save(dbc, rec); err != nil {
		return nil, progress.Result{}, fmt.Errorf("save progress: %w", err)
	}

	observability.Current().ObserveAward(a.XP, newBadges(prev, res.Badges))
	return rec, res, nil
}

func (u Usecases) loadOrCreateProgress(dbc dbctx.Context, userID string) (*types.UserProgress, error) {
	rec, err := u.deps.Progress.Get(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if rec != nil {
		return rec, nil
	}

	rec = &types.UserProgress{UserID: userID}
	rec.SetActivityLog(nil)
	if _, err := u.deps.Progress.Create(dbc, rec); err == nil {
		return rec, nil
	} else if !pkgerrors.IsConflict(err) {
		return nil, fmt.Errorf("create progress: %w", err)
	}

	// a concurrent first award created it
	rec, err = u.deps.Progress.Get(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("reload progress: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("reload progress: %w", pkgerrors.ErrNotFound)
	}
	return rec, nil
}

func newBadges(prev, next []string) []string {
	seen := make(map[string]bool, len(prev))
	for _, b := range prev {
		seen[b] = true
	}
	var out []string
	for _, b := range next {
		if !seen[b] {
			out = append(out, b)
		}
	}
	return out
}
