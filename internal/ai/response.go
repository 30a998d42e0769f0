package ai

import (
	"encoding/json"
	"strings"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// ExtractJSON strips Markdown code fences from a model response. A ```json
// fence is preferred, then any ``` fence, then the raw text.
func ExtractJSON(text string) string {
	if _, after, ok := strings.Cut(text, "```json"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(text, "```"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(text)
}

// parseReview decodes a model response into a normalized review
func parseReview(text string) (types.ResumeReview, error) {
	var review types.ResumeReview
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &review); err != nil {
		return types.ResumeReview{}, errors.NewAIError(errors.ErrCodeAIResponseInvalid,
			"Failed to parse AI review response", err)
	}
	review.Normalize()
	return review, nil
}
