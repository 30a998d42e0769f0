package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/types"
)

// createReviewHandler forwards a resume to the configured LLM provider
func (s *Server) createReviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.review")
		defer span.End()

		if s.AIService == nil {
			err := errors.NewConfigError(errors.ErrCodeMissingAPIKey, "AI provider is not configured", nil)
			span.RecordError(err)
			writeAppError(w, "Resume review unavailable", err)
			return
		}

		var input types.ReviewResumeInput
		if err := parseJSONRequest(r, &input); err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid request body", err)
			return
		}

		if !utf8.ValidString(input.ResumeText) {
			err := errors.NewInvalidArgumentError("resume_text must be valid UTF-8")
			writeAppError(w, "Invalid resume", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(input.ResumeText)),
			attribute.String("request.industry", input.Industry),
			attribute.String("request.experience_level", input.ExperienceLevel),
		)

		metrics := om.GetMetrics()
		var review types.ResumeReview
		err := metrics.TrackAIOperationWithTokens(ctx, "review_resume", func(ctx context.Context) *observability.AIOperationResult {
			result, tokenUsage, aiErr := s.AIService.ReviewResume(ctx, input)
			review = result
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricResumeReviewed, false, om,
				attribute.String("error.type", string(errors.TypeOf(err))))
			writeAppError(w, "Failed to review resume", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricResumeReviewed, true, om,
			attribute.Int("review.overall_score", review.OverallScore))
		metrics.RecordContentSize(ctx, "review", len(input.ResumeText), om)
		span.SetAttributes(attribute.Int("review.overall_score", review.OverallScore))

		writeJSON(w, http.StatusOK, review)
	}
}

// healthHandler reports lexicon state and, when configured, AI model availability
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "resumelens",
		"version": s.Version,
		"lexicon": map[string]any{
			"file":       s.lexiconFile(),
			"categories": s.Lexicons.Current().Stats(),
			"watching":   s.Lexicons.IsRunning(),
		},
	}

	status := http.StatusOK
	if s.AIService == nil {
		response["ai_model"] = map[string]any{"configured": false}
	} else {
		modelInfo := s.AIService.GetModelInfo(r.Context())
		response["ai_model"] = modelInfo
		if modelInfo == nil || !modelInfo.Available {
			response["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, response)
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"auth_enabled":           len(s.APIKeys) > 0,
		},
		"lexicon": map[string]any{
			"file":    s.lexiconFile(),
			"reloads": s.Lexicons.Reloads(),
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if s.AIService != nil {
		response["ai"] = s.AIService.Stats()
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) lexiconFile() string {
	if path := s.Lexicons.Path(); path != "" {
		return path
	}
	return "builtin"
}

// parseJSONRequest parses a JSON request body into v. Bodies that are not
// valid UTF-8 are rejected before decoding, since encoding/json would
// silently replace the bad bytes.
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"content-type must be application/json", err)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
		}
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read request body", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if !utf8.Valid(body) {
		return errors.NewInvalidArgumentError("request body is not valid UTF-8")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "failed to parse JSON", err)
	}

	return nil
}

// statusForError maps application error types onto HTTP status codes
func statusForError(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrorTypeAI, errors.ErrorTypeNetwork:
		return http.StatusBadGateway
	case errors.ErrorTypeConfig:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeAppError writes err with the status matching its type
func writeAppError(w http.ResponseWriter, title string, err error) {
	response := ErrorResponse{Error: title, Message: err.Error()}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		response.Message = appErr.Message
		response.Code = appErr.Code
	}

	writeJSON(w, statusForError(err), response)
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, title, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: title, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
