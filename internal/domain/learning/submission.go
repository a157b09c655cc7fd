package learning

import "time"

// ChallengeSubmission is one evaluated attempt. Rows are never updated.
type ChallengeSubmission struct {
	ID           string    `gorm:"primaryKey;column:id;size:64" json:"$id"`
	UserID       string    `gorm:"column:user_id;size:64;not null;index" json:"user_id"`
	DocID        string    `gorm:"column:doc_id;size:64;not null;index" json:"doc_id"`
	UserSolution string    `gorm:"column:user_solution;type:text" json:"user_solution"`
	Feedback     string    `gorm:"column:feedback;type:text" json:"feedback"`
	XPAwarded    int       `gorm:"column:xp_awarded;not null;default:0" json:"xp_awarded"`
	Success      bool      `gorm:"column:success;not null;default:false" json:"success"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ChallengeSubmission) TableName() string { return "challenge_submission" }
