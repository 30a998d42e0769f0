package textmetrics

import "resumelens/internal/types"

// Match compares the top-n keywords of a job description against every
// keyword of a resume. Score is the percentage of job keywords found.
func (e *Engine) Match(resume, job string, n int) (types.MatchResult, error) {
	jobKeywords, err := e.Keywords(job, n)
	if err != nil {
		return types.MatchResult{}, err
	}

	allResume := rankKeywords(resume, e.lexicon)
	present := make(map[string]struct{}, len(allResume))
	for _, kw := range allResume {
		present[kw.Word] = struct{}{}
	}

	result := types.MatchResult{
		Matched:        []string{},
		Missing:        []string{},
		ResumeKeywords: allResume[:min(n, len(allResume))],
		JobKeywords:    jobKeywords,
	}
	for _, kw := range jobKeywords {
		if _, ok := present[kw.Word]; ok {
			result.Matched = append(result.Matched, kw.Word)
		} else {
			result.Missing = append(result.Missing, kw.Word)
		}
	}

	if len(jobKeywords) > 0 {
		result.Score = round(100*float64(len(result.Matched))/float64(len(jobKeywords)), 1)
	}
	return result, nil
}
