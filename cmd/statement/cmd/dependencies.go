package cmd

import (
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/statement-converter/internal/domain/categorization"
	"github.com/FACorreiaa/statement-converter/internal/domain/import/parser"
	importservice "github.com/FACorreiaa/statement-converter/internal/domain/import/service"
	"github.com/FACorreiaa/statement-converter/internal/domain/journal/store"
	"github.com/FACorreiaa/statement-converter/pkg/config"
)

// Dependencies holds everything a command needs
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	ScoreCache    *categorization.CachedScorer // nil when STATEMENT_SCORE_CACHE is off
	Formatter     *parser.Formatter
	Matcher       *categorization.Matcher
	ImportService *importservice.ImportService
}

// InitDependencies wires the services from the configuration
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	journalFormat, err := store.ParseFormat(cfg.Output.JournalFormat)
	if err != nil {
		return nil, fmt.Errorf("STATEMENT_JOURNAL_FORMAT: %w", err)
	}

	outputFormat, err := store.ParseFormat(cfg.Output.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("STATEMENT_OUTPUT_FORMAT: %w", err)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	var scorer categorization.Scorer = categorization.SequenceScorer{}
	if cfg.Matching.ScoreCache {
		deps.ScoreCache = categorization.NewCachedScorer(scorer)
		scorer = deps.ScoreCache
	}

	deps.Formatter = parser.NewFormatter(parser.DefaultFormatterConfig())
	deps.Matcher = categorization.NewMatcher(scorer, cfg.Matching.SimilarityThreshold)
	deps.ImportService = importservice.NewImportService(deps.Formatter, deps.Matcher, logger).
		WithJournalFormat(journalFormat).
		WithOutputFormat(outputFormat)

	logger.Debug("dependencies initialized",
		"threshold", deps.Matcher.Threshold(),
		"scoreCache", deps.ScoreCache != nil,
		"journalFormat", journalFormat)

	return deps, nil
}

// logScoreCache reports how many payee pairs were scored during the run
func (d *Dependencies) logScoreCache() {
	if d == nil || d.ScoreCache == nil {
		return
	}
	d.Logger.Debug("score cache", "pairs", d.ScoreCache.Size())
}
