package learning

import (
	"context"
	"sort"

	"github.com/yungbote/fundocs-backend/internal/platform/dbctx"
)

const unknownUserName = "Unknown"

type LeaderboardEntry struct {
	UserID string   `json:"$id"`
	Name   string   `json:"name"`
	XP     int      `json:"xp"`
	Streak int      `json:"streak"`
	Badges []string `json:"badges"`
	Avatar *string  `json:"avatar"`
}

type LeaderboardOutput struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// Leaderboard lists every progress record by XP, highest first. Ties keep
// store order. User lookups are best-effort.
func (u Usecases) Leaderboard(ctx context.Context) (LeaderboardOutput, error) {
	dbc := dbctx.Of(ctx)
	log := u.deps.Log.With("usecase", "Leaderboard")

	records, err := u.deps.Progress.List(dbc)
	if err != nil {
		log.Error("Progress list failed", "error", err)
		return LeaderboardOutput{}, internalError("leaderboard_failed", "Failed to fetch leaderboard")
	}

	entries := make([]LeaderboardEntry, 0, len(records))
	for _, rec := range records {
		entry := LeaderboardEntry{
			UserID: rec.UserID,
			Name:   unknownUserName,
			XP:     rec.XP,
			Streak: rec.Streak,
			Badges: rec.BadgeList(),
		}
		usr, err := u.deps.Users.GetByID(dbc, rec.UserID)
		if err != nil {
			log.Warn("User lookup failed", "user_id", rec.UserID, "error", err)
		}
		if usr != nil {
			if name := usr.DisplayName(); name != "" {
				entry.Name = name
			}
			if usr.AvatarFileID != "" {
				avatar := usr.AvatarFileID
				entry.Avatar = &avatar
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].XP > entries[j].XP })
	return LeaderboardOutput{Leaderboard: entries}, nil
}
