package progress

// BadgeRule unlocks Name once every threshold it sets is reached.
// A zero threshold means the rule does not look at that dimension.
type BadgeRule struct {
	Name   string
	XP     int
	Streak int
}

func (r BadgeRule) Satisfied(xp, streak int) bool {
	if r.XP <= 0 && r.Streak <= 0 {
		return false
	}
	if r.XP > 0 && xp < r.XP {
		return false
	}
	if r.Streak > 0 && streak < r.Streak {
		return false
	}
	return true
}

// DefaultRules is the badge table. Order here is the order badges are reported in.
var DefaultRules = []BadgeRule{
	// streak
	{Name: "Consistency Champ", Streak: 5},
	{Name: "Streak Star", Streak: 10},
	{Name: "Streak Legend", Streak: 30},
	{Name: "Unstoppable", Streak: 100},

	// xp
	{Name: "Layout Sprout", XP: 10},
	{Name: "Progress Pioneer", XP: 15},
	{Name: "Going Strong", XP: 25},
	{Name: "Rising Coder", XP: 50},
	{Name: "Challenge Master", XP: 100},
	{Name: "XP Grinder", XP: 500},
	{Name: "Elite Learner", XP: 1000},
	{Name: "Knowledge Titan", XP: 5000},

	// milestones
	{Name: "Fast Starter", Streak: 1},
	{Name: "Dedication Pro", XP: 500, Streak: 10},
	{Name: "Ultimate Scholar", XP: 2000, Streak: 50},
}

// MergeBadges returns prev plus every rule satisfied by (xp, streak).
// Known badges come out in rule order; names no rule knows about (older
// records) follow in the order they were stored. Nothing is ever removed.
func MergeBadges(prev []string, xp, streak int, rules []BadgeRule) []string {
	have := make(map[string]bool, len(prev))
	for _, b := range prev {
		if b != "" {
			have[b] = true
		}
	}
	known := make(map[string]bool, len(rules))
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		known[r.Name] = true
		if have[r.Name] || r.Satisfied(xp, streak) {
			out = append(out, r.Name)
		}
	}
	seen := map[string]bool{}
	for _, b := range prev {
		if b == "" || known[b] || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
