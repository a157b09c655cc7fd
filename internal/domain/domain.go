package domain

import (
	"github.com/yungbote/fundocs-backend/internal/domain/learning"
	"github.com/yungbote/fundocs-backend/internal/domain/user"
)

type User = user.User

type Document = learning.Document
type GeneratedContent = learning.GeneratedContent
type ChallengeSubmission = learning.ChallengeSubmission
type UserProgress = learning.UserProgress
type Activity = learning.Activity

var (
	JoinBadges  = learning.JoinBadges
	SplitBadges = learning.SplitBadges
)

// Models lists every table owned by the postgres store, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Document{},
		&ChallengeSubmission{},
		&UserProgress{},
	}
}
