package ai

import (
	"context"
	"fmt"
	"strings"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Service handles AI resume reviews
type Service struct {
	Provider Provider
	logger   *errors.Logger
}

// NewService creates the provider selected by cfg.AI.Provider. The API key
// must already be present; see config.RequireAI.
func NewService(cfg *config.Config, logger *errors.Logger) (*Service, error) {
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	logger.Debug("Initializing AI service",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"base_url", cfg.AI.BaseURL,
		"temperature", cfg.AI.Temperature,
		"timeout", cfg.AI.Timeout,
		"max_retries", cfg.AI.MaxRetries,
		"use_system_prompts", cfg.AI.UseSystemPrompts)

	var provider Provider
	var err error

	prompts := cfg.ReviewPrompts()
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		provider, err = NewGeminiProvider(cfg.AI, prompts, logger)
	case config.ProviderOpenAI:
		provider, err = NewOpenAIProvider(cfg.AI, prompts, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.AI.Provider), nil)
	}
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return NewServiceWithProvider(provider, logger), nil
}

// NewServiceWithProvider wraps an existing provider
func NewServiceWithProvider(provider Provider, logger *errors.Logger) *Service {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &Service{Provider: provider, logger: logger}
}

// ReviewResume validates input and asks the provider for a review
func (s *Service) ReviewResume(ctx context.Context, input types.ReviewResumeInput) (types.ResumeReview, *TokenUsage, error) {
	if err := ValidateReviewInput(input); err != nil {
		return types.ResumeReview{}, nil, err
	}

	review, usage, err := s.Provider.ReviewResume(ctx, input)
	if err != nil {
		return types.ResumeReview{}, nil, err
	}
	review.Normalize()

	s.logger.Info("Resume review completed",
		"overall_score", review.OverallScore,
		"verdict", review.Verdict(),
		"industry", input.Industry)

	return review, usage, nil
}

// ValidateReviewInput rejects blank resumes and unknown industries or levels
func ValidateReviewInput(input types.ReviewResumeInput) error {
	if strings.TrimSpace(input.ResumeText) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "resume text is required", nil)
	}
	if !types.IsKnownIndustry(input.Industry) {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown industry %q (must be one of: %s)", input.Industry, strings.Join(types.Industries, ", ")), nil)
	}
	if !types.IsKnownExperienceLevel(input.ExperienceLevel) {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown experience level %q (must be one of: %s)", input.ExperienceLevel, strings.Join(types.ExperienceLevels, ", ")), nil)
	}
	return nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Stats returns provider circuit breaker statistics
func (s *Service) Stats() map[string]any {
	return s.Provider.Stats()
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
