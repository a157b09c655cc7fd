package learning

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// UserProgress is the per-user XP/streak/badge record, created lazily on the
// first award. LastActivityAt stays nil until then.
type UserProgress struct {
	UserID         string         `gorm:"primaryKey;column:user_id;size:64" json:"user_id"`
	XP             int            `gorm:"column:xp;not null;default:0" json:"xp"`
	Streak         int            `gorm:"column:streak;not null;default:0" json:"streak"`
	Badges         string         `gorm:"column:badges;type:text" json:"badges"`
	Activities     datatypes.JSON `gorm:"column:activities" json:"activities"`
	LastActivityAt *time.Time     `gorm:"column:last_activity_at" json:"updatedAt,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserProgress) TableName() string { return "user_progress" }

// Activity is one entry of the append-only progress log.
type Activity struct {
	Message   string   `json:"message"`
	Badges    []string `json:"badges"`
	Timestamp int64    `json:"timestamp"`
}

// BadgeList splits the stored comma-joined badge string, dropping blanks.
func (p *UserProgress) BadgeList() []string {
	if p == nil {
		return []string{}
	}
	return SplitBadges(p.Badges)
}

// ActivityLog decodes the stored log. A corrupt column reads as empty.
func (p *UserProgress) ActivityLog() []Activity {
	out := []Activity{}
	if p == nil || len(p.Activities) == 0 {
		return out
	}
	if err := json.Unmarshal(p.Activities, &out); err != nil {
		return []Activity{}
	}
	return out
}

func (p *UserProgress) SetActivityLog(log []Activity) {
	if log == nil {
		log = []Activity{}
	}
	raw, err := json.Marshal(log)
	if err != nil {
		raw = []byte("[]")
	}
	p.Activities = datatypes.JSON(raw)
}

func SplitBadges(s string) []string {
	out := []string{}
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func JoinBadges(badges []string) string {
	return strings.Join(badges, ",")
}
