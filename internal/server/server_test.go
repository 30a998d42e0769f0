package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/history"
	"resumelens/internal/observability"
	"resumelens/internal/types"
)

type fakeProvider struct {
	review types.ResumeReview
	err    error
	calls  int
}

func (f *fakeProvider) ReviewResume(ctx context.Context, input types.ReviewResumeInput) (types.ResumeReview, *ai.TokenUsage, error) {
	f.calls++
	if f.err != nil {
		return types.ResumeReview{}, nil, f.err
	}
	return f.review, &ai.TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}, nil
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Provider: "fake", Name: "fake-model", Available: f.err == nil}
}

func (f *fakeProvider) Stats() map[string]any { return map[string]any{"overall_healthy": true} }

func (f *fakeProvider) Close() error { return nil }

func newTestServer(t *testing.T, mutate func(*config.Config, *ServerConfig)) (*Server, http.Handler) {
	t.Helper()

	cfg := config.Default()
	srvCfg := ServerConfig{
		Version:        "test",
		MaxRequestSize: cfg.Server.MaxRequestSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	if mutate != nil {
		mutate(cfg, &srvCfg)
	}

	s := NewServer(cfg, srvCfg, errors.NewNopLogger())
	t.Cleanup(func() {
		if s.RateLimiter != nil {
			s.RateLimiter.Close()
		}
	})

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, cfg)
	require.NoError(t, err)

	return s, s.setupRoutes(om)
}

func postJSON(t *testing.T, h http.Handler, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	case []byte:
		payload = b
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAnalyzeEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := postJSON(t, h, "/analyze", map[string]any{
		"text":         "I love building great systems. Great teams deliver great systems!",
		"top_keywords": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 10, resp.Analysis.Basic.WordCount)
	assert.Equal(t, 2, resp.Analysis.Basic.SentenceCount)
	assert.Equal(t, types.SentimentPositive, resp.Analysis.Sentiment.Label)
	require.Len(t, resp.Analysis.Keywords, 2)
	assert.Equal(t, "great", resp.Analysis.Keywords[0].Word)
	assert.Equal(t, 3, resp.Analysis.Keywords[0].Frequency)

	require.Len(t, resp.History, 1)
	assert.Equal(t, historySource, resp.History[0].Source)
	assert.NotEmpty(t, resp.History[0].ID)
}

func TestAnalyzeEndpointAppendsHistory(t *testing.T) {
	_, h := newTestServer(t, func(cfg *config.Config, _ *ServerConfig) {
		cfg.Analysis.HistoryLimit = 2
	})

	var prior []history.Entry
	for _, text := range []string{"first text", "second text", "third text"} {
		rec := postJSON(t, h, "/analyze", map[string]any{"text": text, "history": prior})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp AnalyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		prior = resp.History
	}

	require.Len(t, prior, 2)
	assert.Equal(t, "second text", prior[0].Preview)
	assert.Equal(t, "third text", prior[1].Preview)
}

func TestAnalyzeEndpointEmptyText(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := postJSON(t, h, "/analyze", map[string]any{"text": ""})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Analysis.Basic.WordCount)
	assert.Equal(t, types.SentimentNeutral, resp.Analysis.Sentiment.Label)
	assert.Equal(t, types.ReadabilityUnknown, resp.Analysis.Readability.Level)
	assert.Empty(t, resp.Analysis.Keywords)
}

func TestAnalyzeEndpointRejectsBadInput(t *testing.T) {
	_, h := newTestServer(t, nil)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"missing text", map[string]any{}, errors.ErrCodeInvalidArgument},
		{"null text", `{"text": null}`, errors.ErrCodeInvalidArgument},
		{"numeric text", `{"text": 42}`, errors.ErrCodeInvalidArgument},
		{"array text", `{"text": ["a"]}`, errors.ErrCodeInvalidArgument},
		{"invalid utf8", []byte("{\"text\": \"bad \xff\xfe\"}"), errors.ErrCodeInvalidArgument},
		{"negative top keywords", map[string]any{"text": "hello world", "top_keywords": -3}, errors.ErrCodeInvalidArgument},
		{"malformed json", `{"text": `, errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestAnalyzeEndpointRequiresJSONContentType(t *testing.T) {
	_, h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString(`{"text":"x"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKeywordsEndpoint(t *testing.T) {
	_, h := newTestServer(t, func(cfg *config.Config, _ *ServerConfig) {
		cfg.Analysis.MaxTopKeywords = 1
	})

	rec := postJSON(t, h, "/keywords", map[string]any{
		"text":         "golang golang kubernetes terraform",
		"top_keywords": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp KeywordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Keywords, 1, "request above the maximum is capped")
	assert.Equal(t, types.KeywordEntry{Word: "golang", Frequency: 2}, resp.Keywords[0])
}

func TestMatchEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := postJSON(t, h, "/match", map[string]any{
		"resume":          "Built golang services on kubernetes",
		"job_description": "Looking for golang and terraform experience",
		"top_keywords":    10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Matched, "golang")
	assert.Contains(t, resp.Missing, "terraform")
	assert.Greater(t, resp.Score, 0.0)
	assert.Less(t, resp.Score, 100.0)

	rec = postJSON(t, h, "/match", map[string]any{"resume": "text"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewEndpoint(t *testing.T) {
	provider := &fakeProvider{review: types.ResumeReview{OverallScore: 140, FormattingScore: 70}}
	_, h := newTestServer(t, func(_ *config.Config, sc *ServerConfig) {
		sc.AIService = ai.NewServiceWithProvider(provider, errors.NewNopLogger())
	})

	input := types.ReviewResumeInput{
		ResumeText:      "Senior engineer",
		Industry:        "Technology",
		ExperienceLevel: "Senior Level (6-10 years)",
	}

	rec := postJSON(t, h, "/review", input)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var review types.ResumeReview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	assert.Equal(t, 100, review.OverallScore, "scores are clamped")
	assert.Equal(t, 1, provider.calls)

	input.Industry = "Mining"
	rec = postJSON(t, h, "/review", input)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, provider.calls, "invalid input never reaches the provider")
}

func TestReviewEndpointErrors(t *testing.T) {
	input := types.ReviewResumeInput{
		ResumeText:      "Senior engineer",
		Industry:        "Finance",
		ExperienceLevel: "Mid Level (3-5 years)",
	}

	t.Run("not configured", func(t *testing.T) {
		_, h := newTestServer(t, nil)
		rec := postJSON(t, h, "/review", input)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, errors.ErrCodeMissingAPIKey, decodeError(t, rec).Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		provider := &fakeProvider{err: errors.NewAIError(errors.ErrCodeAIServiceFailed, "upstream down", nil)}
		_, h := newTestServer(t, func(_ *config.Config, sc *ServerConfig) {
			sc.AIService = ai.NewServiceWithProvider(provider, errors.NewNopLogger())
		})
		rec := postJSON(t, h, "/review", input)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, errors.ErrCodeAIServiceFailed, decodeError(t, rec).Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	_, h := newTestServer(t, func(_ *config.Config, sc *ServerConfig) {
		sc.APIKeys = []string{"secret-key-123"}
	})
	body := map[string]any{"text": "hello"}

	assert.Equal(t, http.StatusUnauthorized, postJSON(t, h, "/analyze", body).Code)
	assert.Equal(t, http.StatusUnauthorized, postJSON(t, h, "/analyze", body, "X-API-Key", "wrong").Code)
	assert.Equal(t, http.StatusOK, postJSON(t, h, "/analyze", body, "X-API-Key", "secret-key-123").Code)
	assert.Equal(t, http.StatusOK, postJSON(t, h, "/analyze", body, "Authorization", "Bearer secret-key-123").Code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "health stays public")
}

func TestRequestSizeLimit(t *testing.T) {
	_, h := newTestServer(t, func(_ *config.Config, sc *ServerConfig) {
		sc.MaxRequestSize = 64
	})

	rec := postJSON(t, h, "/analyze", map[string]any{"text": string(bytes.Repeat([]byte("a"), 200))})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "too large")
}

func TestRateLimit(t *testing.T) {
	s, h := newTestServer(t, func(cfg *config.Config, sc *ServerConfig) {
		cfg.Server.RateLimit.Enabled = true
		cfg.Server.RateLimit.RequestsPerMin = 1
		cfg.Server.RateLimit.BurstCapacity = 2
		cfg.Server.RateLimit.ByIP = true
		sc.RateLimit = &cfg.Server.RateLimit
	})
	require.NotNil(t, s.RateLimiter)

	body := map[string]any{"text": "hello"}
	assert.Equal(t, http.StatusOK, postJSON(t, h, "/analyze", body).Code)
	assert.Equal(t, http.StatusOK, postJSON(t, h, "/analyze", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(t, h, "/analyze", body).Code)

	stats := s.RateLimiter.GetStats()
	assert.Equal(t, 1, stats["active_limiters"])
}

func TestHealthAndStats(t *testing.T) {
	provider := &fakeProvider{}
	_, h := newTestServer(t, func(_ *config.Config, sc *ServerConfig) {
		sc.AIService = ai.NewServiceWithProvider(provider, errors.NewNopLogger())
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	lexicon := health["lexicon"].(map[string]any)
	assert.Equal(t, "builtin", lexicon["file"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Contains(t, stats, "ai")
	assert.Contains(t, stats, "rate_limiting")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthDegradedWhenModelUnavailable(t *testing.T) {
	provider := &fakeProvider{err: errors.NewAIError(errors.ErrCodeAIServiceFailed, "down", nil)}
	_, h := newTestServer(t, func(_ *config.Config, sc *ServerConfig) {
		sc.AIService = ai.NewServiceWithProvider(provider, errors.NewNopLogger())
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.NewInvalidArgumentError("x"), http.StatusBadRequest},
		{errors.NewValidationError(errors.ErrCodeInvalidRequest, "x", nil), http.StatusBadRequest},
		{errors.NewAIError(errors.ErrCodeAITimeout, "x", nil), http.StatusBadGateway},
		{errors.NewConfigError(errors.ErrCodeMissingAPIKey, "x", nil), http.StatusServiceUnavailable},
		{errors.NewIOError(errors.ErrCodeFileNotReadable, "x", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "192.168.1.5")
	assert.Equal(t, "192.168.1.5", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "garbage, 203.0.113.7, 10.0.0.2")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}
