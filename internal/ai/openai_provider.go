package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// OpenAIProvider implements Provider for OpenAI and compatible endpoints
type OpenAIProvider struct {
	client         *openai.Client
	config         config.AIConfig
	prompts        config.ReviewPrompts
	retrier        retrier
	circuitBreaker *Breaker[openai.ChatCompletionResponse]
	modelBreaker   *Breaker[openai.Model]
	logger         *errors.Logger
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider for the chat completions API.
// cfg.BaseURL points it at a compatible server instead of api.openai.com.
func NewOpenAIProvider(cfg config.AIConfig, prompts config.ReviewPrompts, logger *errors.Logger) (*OpenAIProvider, error) {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client:         openai.NewClientWithConfig(clientConfig),
		config:         cfg,
		prompts:        prompts,
		retrier:        newRetrier(cfg.MaxRetries, logger),
		circuitBreaker: NewBreaker[openai.ChatCompletionResponse]("openai-review", cfg.CircuitBreaker, logger),
		modelBreaker:   newModelBreaker[openai.Model]("openai", cfg.CircuitBreaker, logger),
		logger:         logger,
	}, nil
}

// ReviewResume implements Provider
func (o *OpenAIProvider) ReviewResume(ctx context.Context, input types.ReviewResumeInput) (types.ResumeReview, *TokenUsage, error) {
	tracer := otel.Tracer("resumelens.ai.openai")
	ctx, span := tracer.Start(ctx, "openai.review_resume")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", config.ProviderOpenAI),
		attribute.String("ai.model", o.config.Model),
		attribute.Float64("ai.temperature", float64(o.config.Temperature)),
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.String("input.industry", input.Industry),
	)

	request := o.buildReviewRequest(input)

	resp, err := o.circuitBreaker.Execute(func() (openai.ChatCompletionResponse, error) {
		return executeWithRetry(ctx, o.retrier, "review_resume", func() (openai.ChatCompletionResponse, error) {
			callCtx, cancel := context.WithTimeout(ctx, o.config.Timeout)
			defer cancel()
			return o.client.CreateChatCompletion(callCtx, request)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.ResumeReview{}, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to generate resume review", err)
	}

	if len(resp.Choices) == 0 {
		err := errors.NewAIError(errors.ErrCodeAIResponseInvalid, "AI response contained no choices", nil)
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.ResumeReview{}, nil, err
	}

	review, err := parseReview(resp.Choices[0].Message.Content)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.ResumeReview{}, nil, err
	}

	tokenUsage := &TokenUsage{
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
		TotalTokens:  int64(resp.Usage.TotalTokens),
	}
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("review.overall_score", review.OverallScore),
		attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
		attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
		attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
	)

	return review, tokenUsage, nil
}

// buildReviewRequest assembles the chat messages and JSON response format
func (o *OpenAIProvider) buildReviewRequest(input types.ReviewResumeInput) openai.ChatCompletionRequest {
	systemPrompt, userPrompt := reviewPrompts(o.prompts, input)

	var messages []openai.ChatCompletionMessage
	if o.config.UseSystemPrompts && systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	return openai.ChatCompletionRequest{
		Model:       o.config.Model,
		Messages:    messages,
		Temperature: o.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

// GetModelInfo checks that the configured model is listed by the endpoint
func (o *OpenAIProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Provider: config.ProviderOpenAI,
		Name:     o.config.Model,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := o.modelBreaker.Execute(func() (openai.Model, error) {
		return o.client.GetModel(checkCtx, o.config.Model)
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		o.logger.Warn("Model availability check failed",
			"model", o.config.Model,
			"provider", config.ProviderOpenAI,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.ID
	modelInfo.Version = model.OwnedBy
	return modelInfo
}

// Stats returns circuit breaker statistics
func (o *OpenAIProvider) Stats() map[string]any {
	return map[string]any{
		"ai_operations":    o.circuitBreaker.Stats(),
		"model_operations": o.modelBreaker.Stats(),
		"overall_healthy":  o.circuitBreaker.IsHealthy() && o.modelBreaker.IsHealthy(),
	}
}

// Close implements Provider
func (o *OpenAIProvider) Close() error {
	return nil
}
