package ai

import (
	"context"
	"time"

	"resumelens/internal/types"
)

// Provider is an LLM backend that can review resumes.
// Token usage may be nil when the backend does not report it.
type Provider interface {
	ReviewResume(ctx context.Context, input types.ReviewResumeInput) (types.ResumeReview, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Stats() map[string]any
	Close() error
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Provider    string `json:"provider"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// modelCheckTimeout bounds health check lookups
const modelCheckTimeout = 10 * time.Second
