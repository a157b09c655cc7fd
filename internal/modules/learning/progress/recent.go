package progress

import (
	"sort"

	"github.com/yungbote/fundocs-backend/internal/domain/learning"
)

const RecentActivityLimit = 10

// Recent returns up to n entries, newest first. Entries with equal timestamps
// keep the later-appended one first.
func Recent(log []learning.Activity, n int) []learning.Activity {
	out := make([]learning.Activity, len(log))
	for i := range log {
		out[len(log)-1-i] = log[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
