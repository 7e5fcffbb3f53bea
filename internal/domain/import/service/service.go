// Package service orchestrates statement processing and journal building on top of the parser,
// categorization and journal store packages.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/statement-converter/internal/domain/categorization"
	"github.com/FACorreiaa/statement-converter/internal/domain/import/parser"
	"github.com/FACorreiaa/statement-converter/internal/domain/journal"
	"github.com/FACorreiaa/statement-converter/internal/domain/journal/store"
	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
)

// ErrNoJournalsLoaded is returned when every journal file of a batch failed to load
var ErrNoJournalsLoaded = errors.New("no journal files were processed")

// ProcessInput describes one statement conversion
type ProcessInput struct {
	RowsPath    string              // Extractor rows as CSV
	OutputPath  string              // Defaults to the rows path with a .transactions suffix
	JournalPath string              // Optional; a missing file skips categorization
	Fields      []transaction.Field // Output columns; all fields when empty
	Charset     string              // Encoding of the rows file
}

// ProcessResult summarises a statement conversion
type ProcessResult struct {
	OutputPath     string
	Records        int
	JournalEntries int
	Categorized    int
}

// FileStatus is the outcome of loading one journal file
type FileStatus struct {
	Path    string
	Entries int
	Err     error
}

// ImportResult contains the result of loading a batch of journal files
type ImportResult struct {
	JobID       uuid.UUID
	FilesTotal  int
	FilesLoaded int
	FilesFailed int
	Files       []FileStatus
	Entries     []journal.Entry
}

// BuildResult contains the result of building a journal
type BuildResult struct {
	Import     *ImportResult
	OutputPath string
	Cleaned    int // Entries left after cleanup
	Entries    int // Entries written after compaction
}

// ImportService converts statements and maintains journals
type ImportService struct {
	formatter     *parser.Formatter
	matcher       *categorization.Matcher
	logger        *slog.Logger
	journalFormat store.Format
	outputFormat  store.Format
}

// NewImportService creates a new import service
func NewImportService(formatter *parser.Formatter, matcher *categorization.Matcher, logger *slog.Logger) *ImportService {
	return &ImportService{
		formatter:     formatter,
		matcher:       matcher,
		logger:        logger,
		journalFormat: store.FormatSQLite,
		outputFormat:  store.FormatCSV,
	}
}

// WithJournalFormat sets the format used when a journal output path has no suffix
func (s *ImportService) WithJournalFormat(f store.Format) *ImportService {
	s.journalFormat = f
	return s
}

// WithOutputFormat sets the format of default statement output paths
func (s *ImportService) WithOutputFormat(f store.Format) *ImportService {
	s.outputFormat = f
	return s
}

// DefaultOutputPath derives the output path of a rows file
func (s *ImportService) DefaultOutputPath(rowsPath string) string {
	stem := strings.TrimSuffix(rowsPath, filepath.Ext(rowsPath))
	return stem + ".transactions" + s.outputFormat.Suffix()
}

// Process converts a statement rows file into a transaction table, copying categories from the
// journal when one is given and exists
func (s *ImportService) Process(ctx context.Context, in ProcessInput) (*ProcessResult, error) {
	fields := in.Fields
	if len(fields) == 0 {
		fields = transaction.DefaultFields()
	}

	output := in.OutputPath
	if output == "" {
		output = s.DefaultOutputPath(in.RowsPath)
	}
	if _, err := store.FormatFromPath(output); err != nil {
		return nil, err
	}

	f, err := os.Open(in.RowsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement rows: %w", err)
	}
	rows, err := parser.ReadRawRows(f, in.Charset)
	f.Close()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := s.formatter.Format(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to format statement: %w", err)
	}

	result := &ProcessResult{OutputPath: output, Records: len(records)}

	if in.JournalPath != "" {
		entries, err := s.loadJournal(in.JournalPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			s.logger.Info("journal not found, skipping categorization", "path", in.JournalPath)
		case err != nil:
			return nil, err
		default:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			records, result.Categorized = s.matcher.MatchCategories(records, entries)
			result.JournalEntries = len(entries)
		}
	}

	tbl, err := transaction.Project(records, fields)
	if err != nil {
		return nil, err
	}

	if err := store.Write(output, tbl); err != nil {
		return nil, err
	}

	s.logger.Info("statement processed",
		slog.String("output", output),
		slog.Int("records", result.Records),
		slog.Int("categorized", result.Categorized))

	return result, nil
}

func (s *ImportService) loadJournal(path string) ([]journal.Entry, error) {
	tbl, err := store.Read(path)
	if err != nil {
		return nil, err
	}
	return journal.FromTable(tbl)
}

// ImportJournals loads every journal file. Files that cannot be read or validated are
// recorded as failures and skipped; ErrNoJournalsLoaded is returned, along with the result,
// when none could be loaded.
func (s *ImportService) ImportJournals(ctx context.Context, paths []string) (*ImportResult, error) {
	result := &ImportResult{
		JobID:      uuid.New(),
		FilesTotal: len(paths),
		Files:      make([]FileStatus, 0, len(paths)),
		Entries:    make([]journal.Entry, 0),
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := s.loadJournal(path)
		if err != nil {
			result.FilesFailed++
			result.Files = append(result.Files, FileStatus{Path: path, Err: err})
			s.logger.Warn("failed to load journal", "jobID", result.JobID, "path", path, "error", err)
			continue
		}

		result.FilesLoaded++
		result.Files = append(result.Files, FileStatus{Path: path, Entries: len(entries)})
		result.Entries = append(result.Entries, entries...)
		s.logger.Debug("journal loaded", "jobID", result.JobID, "path", path, "entries", len(entries))
	}

	if result.FilesLoaded == 0 {
		return result, ErrNoJournalsLoaded
	}
	return result, nil
}

// BuildJournal imports journal files, cleans and compacts them, and writes a single journal.
// An output path without suffix gets the configured journal format; an unsupported suffix is
// rejected before any input is read.
func (s *ImportService) BuildJournal(ctx context.Context, paths []string, outputPath string) (*BuildResult, error) {
	output := store.WithDefaultSuffix(outputPath, s.journalFormat)
	if _, err := store.FormatFromPath(output); err != nil {
		return nil, err
	}

	imported, err := s.ImportJournals(ctx, paths)
	if err != nil {
		return &BuildResult{Import: imported, OutputPath: output}, err
	}

	cleaned := journal.Cleanup(imported.Entries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	compacted := s.matcher.Compact(cleaned)

	if err := store.Write(output, journal.ToTable(compacted)); err != nil {
		return nil, err
	}

	s.logger.Info("journal built",
		slog.String("jobID", imported.JobID.String()),
		slog.String("output", output),
		slog.Int("loaded", imported.FilesLoaded),
		slog.Int("failed", imported.FilesFailed),
		slog.Int("entries", len(compacted)))

	return &BuildResult{
		Import:     imported,
		OutputPath: output,
		Cleaned:    len(cleaned),
		Entries:    len(compacted),
	}, nil
}

// SearchJournal finds journal payees matching the query
func (s *ImportService) SearchJournal(ctx context.Context, path, query string, limit int) ([]categorization.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.loadJournal(path)
	if err != nil {
		return nil, err
	}
	return s.matcher.Search(entries, query, limit), nil
}
