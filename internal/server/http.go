package server

import (
	"encoding/json"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/history"
	"resumelens/internal/textmetrics"
	"resumelens/internal/types"
)

// AnalyzeRequest is the body of POST /analyze. Text is kept raw so a
// non-string value can be reported as an invalid argument.
type AnalyzeRequest struct {
	Text        json.RawMessage `json:"text"`
	TopKeywords int             `json:"top_keywords,omitempty"`
	History     []history.Entry `json:"history,omitempty"`
}

// AnalyzeResponse carries the analysis and the caller's updated history
type AnalyzeResponse struct {
	Analysis types.TextAnalysis `json:"analysis"`
	History  []history.Entry    `json:"history"`
}

// KeywordsRequest is the body of POST /keywords
type KeywordsRequest struct {
	Text        json.RawMessage `json:"text"`
	TopKeywords int             `json:"top_keywords,omitempty"`
}

// KeywordsResponse lists the ranked keywords of a text
type KeywordsResponse struct {
	Keywords []types.KeywordEntry `json:"keywords"`
}

// MatchRequest is the body of POST /match
type MatchRequest struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription json.RawMessage `json:"job_description"`
	TopKeywords    int             `json:"top_keywords,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Active sentiment lexicon, hot-reloaded when watching is enabled
	Lexicons *textmetrics.LexiconStore

	// AIService is nil when no provider is configured; /review then
	// answers 503.
	AIService *ai.Service

	Logger *errors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host            string
	Port            string
	Version         string
	TLSConfig       config.TLSConfig
	APIKeys         []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxRequestSize  int64
	RateLimit       *config.RateLimitConfig
	Lexicons        *textmetrics.LexiconStore
	AIService       *ai.Service
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *errors.Logger) *Server {
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstCapacity, logger)
	}

	lexicons := cfg.Lexicons
	if lexicons == nil {
		// The built-in lexicon never fails to load.
		lexicons, _ = textmetrics.NewLexiconStore("", 0, logger)
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}

	return &Server{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Version:         cfg.Version,
		AppConfig:       appCfg,
		TLSConfig:       cfg.TLSConfig,
		APIKeys:         apiKeyMap,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: shutdownTimeout,
		MaxRequestSize:  cfg.MaxRequestSize,
		RateLimit:       cfg.RateLimit,
		RateLimiter:     rateLimiter,
		Lexicons:        lexicons,
		AIService:       cfg.AIService,
		Logger:          logger,
	}
}
