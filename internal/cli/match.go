package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/textmetrics"
	"resumelens/internal/types"
	"resumelens/internal/utils"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Compare resume keywords against a job description",
	Long: `Match extracts the top keywords of a job description and reports which
of them appear anywhere in the resume. The score is the percentage of job
keywords the resume covers. No AI provider is needed.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: outputFormatPreRun(&matchConfig),
	RunE:    runMatch,
}

var (
	matchConfig common.CommandConfig
	matchTop    int
)

func init() {
	registerOutputFlags(matchCmd, &matchConfig)
	matchCmd.Flags().IntVar(&matchTop, "top", 0, "Number of job description keywords to match (default from config)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	if err := common.ValidateTopKeywords(matchTop); err != nil {
		return err
	}

	store, err := textmetrics.NewLexiconStore(cfg.Analysis.LexiconFile, cfg.Analysis.ReloadDebounce, logger)
	if err != nil {
		return err
	}
	engine := store.Engine()
	topN := cfg.ClampTopKeywords(matchTop)

	logger.Info("Starting keyword match",
		"resume", args[0],
		"job_description", args[1],
		"top_keywords", topN)

	matchOperation := func(contents []string) (types.MatchResult, error) {
		if len(contents) != 2 {
			return types.MatchResult{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return engine.Match(plainTextFor(args[0], contents[0]), plainTextFor(args[1], contents[1]), topN)
	}

	if err := common.RunLocalCommand(logger, matchConfig, args, matchOperation); err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Keyword match completed successfully")
	return nil
}

func plainTextFor(filename, content string) string {
	if utils.IsMarkdownFile(filename) {
		return textmetrics.PlainText([]byte(content))
	}
	return content
}
