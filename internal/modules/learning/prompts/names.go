package prompts

type PromptName string

const (
	PromptGenerateAll       PromptName = "generate_all"
	PromptEvaluateChallenge PromptName = "evaluate_challenge"
	PromptProgressReport    PromptName = "progress_report"
)
