package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/fundocs-backend/internal/domain/learning"
)

const defaultActivityTitle = "an activity"

// State is what the evaluator needs from a stored UserProgress.
type State struct {
	XP             int
	Streak         int
	Badges         []string
	LastActivityAt *time.Time
}

// Award is one XP-earning event. XP may be zero.
type Award struct {
	XP    int
	Title string
}

type Result struct {
	XP       int
	Streak   int
	Badges   []string
	Activity learning.Activity
}

// StateOf projects a stored record. A nil record is a fresh user.
func StateOf(p *learning.UserProgress) State {
	if p == nil {
		return State{Badges: []string{}}
	}
	return State{
		XP:             p.XP,
		Streak:         p.Streak,
		Badges:         p.BadgeList(),
		LastActivityAt: p.LastActivityAt,
	}
}

// NextStreak compares UTC calendar dates of the last award and now.
func NextStreak(prev int, last *time.Time, now time.Time) int {
	if last == nil || last.IsZero() {
		return 1
	}
	today := utcDate(now)
	lastDay := utcDate(*last)
	yesterday := today.AddDate(0, 0, -1)
	switch {
	case lastDay.Equal(yesterday):
		return prev + 1
	case lastDay.Before(yesterday):
		return 1
	default:
		// same day (or a clock-skewed future date): leave it alone
		if prev < 1 {
			return 1
		}
		return prev
	}
}

// Evaluate applies one award. It is pure; persisting the result is the caller's job.
func Evaluate(s State, a Award, now time.Time, rules []BadgeRule) Result {
	if rules == nil {
		rules = DefaultRules
	}
	streak := NextStreak(s.Streak, s.LastActivityAt, now)
	xp := s.XP + a.XP
	badges := MergeBadges(s.Badges, xp, streak, rules)

	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = defaultActivityTitle
	}
	snapshot := make([]string, len(badges))
	copy(snapshot, badges)

	return Result{
		XP:     xp,
		Streak: streak,
		Badges: badges,
		Activity: learning.Activity{
			Message:   fmt.Sprintf("Earned %d XP from %s. Streak is now %d day(s).", a.XP, title, streak),
			Badges:    snapshot,
			Timestamp: now.Unix(),
		},
	}
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
