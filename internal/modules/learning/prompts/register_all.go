package prompts

// RegisterAll registers every prompt the learning module sends to the model.
func RegisterAll() {
	RegisterSpec(Spec{
		Name:    PromptGenerateAll,
		Version: 1,
		Text: `
You are an AI tutor. Analyze the following documentation carefully.

### TASKS

1. **STORY**
   - Convert the documentation into an engaging story as if teaching a beginner.
   - Keep it fun and clear, and use analogies when possible.
   - Mark the section with ` + "`### STORY`" + `.

2. **STEPS**
   - Explain the concept step by step, like a guided walkthrough.
   - Each step must be short, crisp and easy to follow, one step per line.
   - Mark the section with ` + "`### STEPS`" + `.

3. **CHALLENGES**
   - Create exactly 3 challenges (coding tasks, quiz-style questions or thought exercises).
   - Each challenge must end with the phrase ` + "`Challenge Ended`" + `.
   - Format:
     Challenge 1: ...
     Challenge Ended
     Challenge 2: ...
     Challenge Ended
     Challenge 3: ...
     Challenge Ended
   - Mark the section with ` + "`### CHALLENGES`" + `.

4. **FLASHCARDS**
   - Generate 4-5 flashcards in strict JSON format.
   - Example:
     [
       {"question": "What is X?", "answer": "X is ..."},
       {"question": "How does Y work?", "answer": "Y works by ..."}
     ]
   - Do not include any text outside the JSON.
   - Mark the section with ` + "`### FLASHCARDS`" + `.

Documentation:
{{.DocumentText}}`,
		Validators: []Validator{
			RequireText("DocumentText", func(in Input) string { return in.DocumentText }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptEvaluateChallenge,
		Version: 1,
		Text: `
Challenge:
{{.ChallengeText}}

User Solution:
{{.UserSolution}}

Please evaluate the user's solution.
Respond in the format:
{
  "success": true/false,
  "feedback": "<short feedback text>",
  "xp": <integer 0-10>
}`,
		Validators: []Validator{
			RequireText("ChallengeText", func(in Input) string { return in.ChallengeText }),
			RequireText("UserSolution", func(in Input) string { return in.UserSolution }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptProgressReport,
		Version: 1,
		Text: `
Generate a professional progress report for a user based on the data below. You can add relevant emojis where appropriate, but keep it professional.

User Progress:
- XP: {{.XP}}
- Streak: {{.Streak}}

Challenge Submissions: {{if .SubmissionsJSON}}{{.SubmissionsJSON}}{{else}}[]{{end}}

The report should include:
1) Technical Knowledge
2) Communication Skills
3) Strengths
4) Areas Of Improvement
5) Overall Analysis

Return JSON:
{
  "technical_knowledge": "...",
  "communication_skills": "...",
  "strengths": "...",
  "areas_of_improvement": "...",
  "overall_analysis": "..."
}`,
		Validators: []Validator{
			RequireNonNegative("XP", func(in Input) int { return in.XP }),
			RequireNonNegative("Streak", func(in Input) int { return in.Streak }),
		},
	})
}
