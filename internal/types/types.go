package types

import "slices"

// Industries accepted by the resume review.
var Industries = []string{"Technology", "Finance", "Healthcare", "Marketing", "Education", "Other"}

// ExperienceLevels accepted by the resume review.
var ExperienceLevels = []string{
	"Entry Level (0-2 years)",
	"Mid Level (3-5 years)",
	"Senior Level (6-10 years)",
	"Executive (10+ years)",
}

// DefaultTargetRole is used when no role is given.
const DefaultTargetRole = "General"

// ReviewResumeInput represents the input for an AI resume review
type ReviewResumeInput struct {
	ResumeText      string `json:"resume_text" yaml:"resume_text"`
	TargetRole      string `json:"target_role,omitempty" yaml:"target_role,omitempty"`
	Industry        string `json:"industry" yaml:"industry"`
	ExperienceLevel string `json:"experience_level" yaml:"experience_level"`
}

// RoleOrDefault returns the target role, falling back to DefaultTargetRole.
func (in ReviewResumeInput) RoleOrDefault() string {
	if in.TargetRole == "" {
		return DefaultTargetRole
	}
	return in.TargetRole
}

// IsKnownIndustry reports whether industry is one of Industries.
func IsKnownIndustry(industry string) bool {
	return slices.Contains(Industries, industry)
}

// IsKnownExperienceLevel reports whether level is one of ExperienceLevels.
func IsKnownExperienceLevel(level string) bool {
	return slices.Contains(ExperienceLevels, level)
}

// KeywordAnalysis lists keywords the reviewer found and expected
type KeywordAnalysis struct {
	Present []string `json:"present" yaml:"present"`
	Missing []string `json:"missing" yaml:"missing"`
}

// SectionsFeedback holds per-section feedback
type SectionsFeedback struct {
	Summary    string `json:"summary" yaml:"summary"`
	Experience string `json:"experience" yaml:"experience"`
	Education  string `json:"education" yaml:"education"`
	Skills     string `json:"skills" yaml:"skills"`
}

// ResumeReview represents the output of an AI resume review
type ResumeReview struct {
	OverallScore     int              `json:"overall_score" yaml:"overall_score"` // 0-100
	Strengths        []string         `json:"strengths" yaml:"strengths"`
	Weaknesses       []string         `json:"weaknesses" yaml:"weaknesses"`
	KeywordAnalysis  KeywordAnalysis  `json:"keyword_analysis" yaml:"keyword_analysis"`
	SectionsFeedback SectionsFeedback `json:"sections_feedback" yaml:"sections_feedback"`
	FormattingScore  int              `json:"formatting_score" yaml:"formatting_score"`   // 0-100
	ATSCompatibility int              `json:"ats_compatibility" yaml:"ats_compatibility"` // 0-100
	Recommendations  []string         `json:"recommendations" yaml:"recommendations"`
}

// Normalize clamps every score into [0,100].
func (r *ResumeReview) Normalize() {
	r.OverallScore = clampScore(r.OverallScore)
	r.FormattingScore = clampScore(r.FormattingScore)
	r.ATSCompatibility = clampScore(r.ATSCompatibility)
}

// Verdict interprets the overall score.
func (r ResumeReview) Verdict() string {
	return ScoreVerdict(r.OverallScore)
}

// ScoreVerdict maps a 0-100 score to a short verdict.
func ScoreVerdict(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

func clampScore(score int) int {
	return min(max(score, 0), 100)
}
