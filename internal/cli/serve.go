package cli

import (
	"fmt"

	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/server"
	"resumelens/internal/textmetrics"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for text metrics and resume review",
	Long: `Start an HTTP server that provides REST API endpoints for text metrics.

Available endpoints:
- POST /analyze: Full text metrics, with optional session history
- POST /keywords: Top keywords of a text
- POST /match: Resume vs job description keyword match
- POST /review: AI resume review (requires an AI API key)
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

// applyServeOverrides copies explicitly set flags over the loaded server config.
func applyServeOverrides(flags *pflag.FlagSet, cfg *config.ServerConfig) {
	overrides := map[string]*string{
		"port":      &cfg.Port,
		"host":      &cfg.Host,
		"tls-mode":  &cfg.TLS.Mode,
		"cert-file": &cfg.TLS.CertFile,
		"key-file":  &cfg.TLS.KeyFile,
		"ca-file":   &cfg.TLS.CAFile,
	}
	for name, target := range overrides {
		if !flags.Changed(name) {
			continue
		}
		if value, err := flags.GetString(name); err == nil {
			*target = value
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	applyServeOverrides(cmd.Flags(), &cfg.Server)

	// Validate TLS configuration after applying overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	lexicons, err := textmetrics.NewLexiconStore(cfg.Analysis.LexiconFile, cfg.Analysis.ReloadDebounce, logger)
	if err != nil {
		return err
	}

	var aiService *ai.Service
	if err := cfg.RequireAI(); err != nil {
		logger.Warn("AI provider not configured, /review is disabled", "reason", err.Error())
	} else {
		aiService, err = ai.NewService(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
	}

	serverCfg := server.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Version:         Version,
		TLSConfig:       cfg.Server.TLS,
		APIKeys:         cfg.Server.APIKeys,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxRequestSize:  cfg.Server.MaxRequestSize,
		RateLimit:       &cfg.Server.RateLimit,
		Lexicons:        lexicons,
		AIService:       aiService,
	}
	return server.NewServer(cfg, serverCfg, logger).Run(cmd.Context())
}
