package ai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         config.AIConfig
	prompts        config.ReviewPrompts
	retrier        retrier
	circuitBreaker *Breaker[*genai.GenerateContentResponse]
	modelBreaker   *Breaker[*genai.Model]
	logger         *errors.Logger
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(cfg config.AIConfig, prompts config.ReviewPrompts, logger *errors.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		prompts:        prompts,
		retrier:        newRetrier(cfg.MaxRetries, logger),
		circuitBreaker: NewBreaker[*genai.GenerateContentResponse]("gemini-review", cfg.CircuitBreaker, logger),
		modelBreaker:   newModelBreaker[*genai.Model]("gemini", cfg.CircuitBreaker, logger),
		logger:         logger,
	}, nil
}

// ReviewResume implements Provider
func (g *GeminiProvider) ReviewResume(ctx context.Context, input types.ReviewResumeInput) (types.ResumeReview, *TokenUsage, error) {
	tracer := otel.Tracer("resumelens.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.review_resume")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", config.ProviderGemini),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.String("input.industry", input.Industry),
	)

	systemPrompt, userPrompt := reviewPrompts(g.prompts, input)
	genaiConfig := g.buildReviewSchema()
	if g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return executeWithRetry(ctx, g.retrier, "review_resume", func() (*genai.GenerateContentResponse, error) {
			callCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
			defer cancel()
			return g.client.Models.GenerateContent(callCtx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.ResumeReview{}, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to generate resume review", err)
	}

	review, err := parseReview(result.Text())
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.ResumeReview{}, nil, err
	}

	tokenUsage := extractGeminiTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("review.overall_score", review.OverallScore),
	)

	return review, tokenUsage, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Provider: config.ProviderGemini,
		Name:     g.config.Model,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", config.ProviderGemini,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.DisplayName
	modelInfo.Version = model.Version

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// Stats returns circuit breaker statistics
func (g *GeminiProvider) Stats() map[string]any {
	return map[string]any{
		"ai_operations":    g.circuitBreaker.Stats(),
		"model_operations": g.modelBreaker.Stats(),
		"overall_healthy":  g.circuitBreaker.IsHealthy() && g.modelBreaker.IsHealthy(),
	}
}

// Close implements Provider. The Gemini client holds no resources in
// single-shot mode.
func (g *GeminiProvider) Close() error {
	return nil
}

// buildReviewSchema constrains the response to the review JSON shape
func (g *GeminiProvider) buildReviewSchema() *genai.GenerateContentConfig {
	stringList := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"overall_score": {Type: genai.TypeInteger},
				"strengths":     stringList,
				"weaknesses":    stringList,
				"keyword_analysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"present": stringList,
						"missing": stringList,
					},
					Required: []string{"present", "missing"},
				},
				"sections_feedback": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"summary":    {Type: genai.TypeString},
						"experience": {Type: genai.TypeString},
						"education":  {Type: genai.TypeString},
						"skills":     {Type: genai.TypeString},
					},
					Required: []string{"summary", "experience", "education", "skills"},
				},
				"formatting_score":  {Type: genai.TypeInteger},
				"ats_compatibility": {Type: genai.TypeInteger},
				"recommendations":   stringList,
			},
			Required: []string{
				"overall_score", "strengths", "weaknesses", "keyword_analysis",
				"sections_feedback", "formatting_score", "ats_compatibility", "recommendations",
			},
		},
	}

	if g.config.Temperature > 0 {
		temperature := g.config.Temperature
		genaiConfig.Temperature = &temperature
	}

	return genaiConfig
}

// extractGeminiTokenUsage extracts token usage information from a Gemini response
func extractGeminiTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
