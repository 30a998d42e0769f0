package ai

import (
	"fmt"

	"resumelens/internal/config"
	"resumelens/internal/types"
)

// DefaultReviewSystemPrompt is the built-in system instruction for reviews
const DefaultReviewSystemPrompt = `You are an expert resume reviewer and career coach with deep knowledge of hiring practices, applicant tracking systems and industry expectations.

- Base every observation on the resume text provided
- Be specific and actionable; avoid generic advice
- Score consistently: 80 or above is excellent, 60 to 79 is good, below 60 needs significant work
- Respond with a single JSON object and nothing else`

// DefaultReviewUserPrompt is the built-in user prompt template. Placeholders
// are, in order: resume text, target role, industry, experience level.
const DefaultReviewUserPrompt = `Analyze this resume and provide detailed feedback in JSON format.

Resume:
%s

Target Role: %s
Industry: %s
Experience Level: %s

Provide analysis in this exact JSON structure:
{
    "overall_score": <number 0-100>,
    "strengths": [<list of 3-5 key strengths>],
    "weaknesses": [<list of 3-5 areas for improvement>],
    "keyword_analysis": {
        "present": [<list of good keywords found>],
        "missing": [<list of important keywords missing>]
    },
    "sections_feedback": {
        "summary": "<feedback on summary/objective>",
        "experience": "<feedback on work experience>",
        "education": "<feedback on education>",
        "skills": "<feedback on skills section>"
    },
    "formatting_score": <number 0-100>,
    "ats_compatibility": <number 0-100>,
    "recommendations": [<list of 5-7 specific actionable recommendations>]
}

Provide only the JSON object, no other text.`

// reviewPrompts returns the system prompt and the formatted user prompt.
// Custom prompts win over the defaults.
func reviewPrompts(custom config.ReviewPrompts, input types.ReviewResumeInput) (string, string) {
	system := resolvePrompt(custom.System, DefaultReviewSystemPrompt)
	user := resolvePrompt(custom.User, DefaultReviewUserPrompt)

	return system, fmt.Sprintf(user,
		input.ResumeText,
		input.RoleOrDefault(),
		input.Industry,
		input.ExperienceLevel,
	)
}

func resolvePrompt(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}
