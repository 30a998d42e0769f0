package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/history"
	"resumelens/internal/textmetrics"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Compute text metrics for one or more documents",
	Long: `Analyze computes basic counts, sentiment, top keywords and Flesch
readability for each input document.

Inputs can be given as file arguments, as a doublestar pattern with --glob
(for example "resumes/**/*.md"), or read from standard input with --stdin.
Markdown files are reduced to plain text before they are measured; use
--markdown to treat every input as Markdown.

With --history FILE every analysis is appended to a bounded JSON history
kept in FILE.`,
	PreRunE: outputFormatPreRun(&analyzeConfig),
	RunE:    runAnalyze,
}

var (
	analyzeConfig common.CommandConfig
	analyzeOpts   analyzeOptions
)

type analyzeOptions struct {
	glob        string
	topKeywords int
	markdown    bool
	historyFile string
	stdin       bool
}

func init() {
	registerOutputFlags(analyzeCmd, &analyzeConfig)
	analyzeCmd.Flags().StringVar(&analyzeOpts.glob, "glob", "", "Doublestar pattern selecting input files")
	analyzeCmd.Flags().IntVar(&analyzeOpts.topKeywords, "top", 0, "Number of keywords to report (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.markdown, "markdown", false, "Strip Markdown from every input")
	analyzeCmd.Flags().StringVar(&analyzeOpts.historyFile, "history", "", "JSON file to append analyses to")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.stdin, "stdin", false, "Read the document from standard input")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	if err := common.ValidateTopKeywords(analyzeOpts.topKeywords); err != nil {
		return err
	}

	docs, err := readAnalyzeInputs(cmd, logger, analyzeConfig.MaxFileSize, args, analyzeOpts)
	if err != nil {
		return err
	}

	store, err := textmetrics.NewLexiconStore(cfg.Analysis.LexiconFile, cfg.Analysis.ReloadDebounce, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting text analysis",
		"documents", len(docs),
		"lexicon", store.Path(),
		"output_format", analyzeConfig.OutputFormat)

	results, err := analyzeDocuments(store.Engine(), docs, cfg.ClampTopKeywords(analyzeOpts.topKeywords))
	if err != nil {
		return err
	}

	if analyzeOpts.historyFile != "" {
		if err := appendHistory(cfg, analyzeOpts.historyFile, docs, results); err != nil {
			return err
		}
		logger.Info("History updated", "file", analyzeOpts.historyFile, "added", len(results))
	}

	var output any = results
	if len(results) == 1 {
		output = results[0].Analysis
	}

	handler := common.NewOutputHandlerWithWriter(logger, cmd.OutOrStdout())
	if err := handler.HandleOutput(output, analyzeConfig); err != nil {
		return err
	}

	logger.Info("Text analysis completed successfully", "documents", len(results))
	return nil
}

// readAnalyzeInputs collects the documents named on the command line, by
// --glob, or piped in with --stdin.
func readAnalyzeInputs(cmd *cobra.Command, logger *errors.Logger, maxFileSize int64, args []string, opts analyzeOptions) ([]common.Document, error) {
	fp := common.NewFileProcessor(logger, maxFileSize)

	if opts.stdin {
		if len(args) > 0 || opts.glob != "" {
			return nil, errors.NewInvalidArgumentError("--stdin cannot be combined with file arguments or --glob")
		}
		text, err := fp.ReadStdin(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		if opts.markdown {
			text = textmetrics.PlainText([]byte(text))
		}
		return []common.Document{{Source: common.StdinSource, Text: text}}, nil
	}

	paths, err := fp.ExpandInputs(args, opts.glob)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.NewInvalidArgumentError("no input documents: pass files, --glob or --stdin")
	}

	return fp.ReadDocuments(paths, opts.markdown)
}

func analyzeDocuments(engine *textmetrics.Engine, docs []common.Document, topN int) ([]types.DocumentAnalysis, error) {
	results := make([]types.DocumentAnalysis, 0, len(docs))
	for _, doc := range docs {
		analysis, err := engine.Analyze(doc.Text, topN)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze %s: %w", doc.Source, err)
		}
		results = append(results, types.DocumentAnalysis{Source: doc.Source, Analysis: analysis})
	}
	return results, nil
}

func appendHistory(cfg *config.Config, path string, docs []common.Document, results []types.DocumentAnalysis) error {
	h, err := history.Load(path, cfg.Analysis.HistoryLimit)
	if err != nil {
		return err
	}
	for i, result := range results {
		h = h.Append(history.NewEntry(result.Source, docs[i].Text, result.Analysis))
	}
	return history.Save(path, h)
}
