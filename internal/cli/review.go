package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/common"
	"resumelens/internal/errors"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review [resume-file]",
	Short: "Review a resume with the configured AI provider",
	Long: `Review sends a resume to the configured LLM provider (gemini or openai)
and prints a structured review: an overall score with verdict, strengths and
weaknesses, keyword coverage, per-section feedback, formatting and ATS scores,
and recommendations.

An AI API key is required. Use --report-dir to also save the review as
resume_analysis_YYYYMMDD_HHMMSS.json.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: outputFormatPreRun(&reviewConfig),
	RunE:    runReview,
}

var (
	reviewConfig common.CommandConfig
	reviewOpts   reviewOptions
)

type reviewOptions struct {
	role      string
	industry  string
	level     string
	reportDir string
}

func init() {
	registerOutputFlags(reviewCmd, &reviewConfig)
	reviewCmd.Flags().StringVar(&reviewOpts.role, "role", "", "Target role (default: General)")
	reviewCmd.Flags().StringVar(&reviewOpts.industry, "industry", types.Industries[0], "Industry for the review")
	reviewCmd.Flags().StringVar(&reviewOpts.level, "level", types.ExperienceLevels[1], "Experience level for the review")
	reviewCmd.Flags().StringVar(&reviewOpts.reportDir, "report-dir", "", "Directory to save a JSON report in")

	_ = reviewCmd.RegisterFlagCompletionFunc("industry", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return types.Industries, cobra.ShellCompDirectiveNoFileComp
	})
	_ = reviewCmd.RegisterFlagCompletionFunc("level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return types.ExperienceLevels, cobra.ShellCompDirectiveNoFileComp
	})
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	if err := cfg.RequireAI(); err != nil {
		return err
	}

	aiService, err := ai.NewService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.LogError(err, "Failed to close AI service")
		}
	}()

	createInput := func(contents []string) (types.ReviewResumeInput, error) {
		if len(contents) != 1 {
			return types.ReviewResumeInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.ReviewResumeInput{
			ResumeText:      plainTextFor(args[0], contents[0]),
			TargetRole:      reviewOpts.role,
			Industry:        reviewOpts.industry,
			ExperienceLevel: reviewOpts.level,
		}, nil
	}

	logDetails := func(input types.ReviewResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume review",
			"resume_chars", len(input.ResumeText),
			"target_role", input.RoleOrDefault(),
			"industry", input.Industry,
			"experience_level", input.ExperienceLevel,
			"output_format", cfg.OutputFormat)
	}

	reviewOperation := func(ctx context.Context, input types.ReviewResumeInput) (types.ResumeReview, *ai.TokenUsage, error) {
		return aiService.ReviewResume(ctx, input)
	}

	review, err := common.RunAICommand(
		cmd.Context(),
		logger,
		reviewConfig,
		args,
		createInput,
		reviewOperation,
		logDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to review resume: %w", err)
	}

	if reviewOpts.reportDir != "" {
		path, err := writeReviewReport(common.NewFileProcessor(logger, 0), reviewOpts.reportDir, review, time.Now())
		if err != nil {
			return err
		}
		logger.Info("Review report saved", "file", path)
	}

	logger.Info("Resume review completed successfully",
		"overall_score", review.OverallScore,
		"verdict", review.Verdict())
	return nil
}

// reportFileName names a review report after the time it was written.
func reportFileName(now time.Time) string {
	return fmt.Sprintf("resume_analysis_%s.json", now.Format("20060102_150405"))
}

func writeReviewReport(fp *common.FileProcessor, dir string, review types.ResumeReview, now time.Time) (string, error) {
	path := filepath.Join(dir, reportFileName(now))
	if err := fp.ValidateOutputFile(path); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(review, "", "  ")
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeEncodeFailed, "Failed to encode review report", err)
	}

	if err := fp.WriteFile(path, string(data)+"\n"); err != nil {
		return "", err
	}
	return path, nil
}
