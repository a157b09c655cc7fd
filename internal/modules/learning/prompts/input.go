package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Generation
	DocumentText string
	// Challenge evaluation
	ChallengeText string
	UserSolution  string
	// Progress report
	XP              int
	Streak          int
	SubmissionsJSON string
}
