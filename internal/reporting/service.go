// Package reporting runs branch reports end to end: read an export, map it,
// build the report and write it out.
package reporting

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cleared-dev/branchreport/internal/export"
	"github.com/cleared-dev/branchreport/internal/importer"
	"github.com/cleared-dev/branchreport/internal/ledger"
	"github.com/cleared-dev/branchreport/internal/model"
	"github.com/cleared-dev/branchreport/internal/report"
)

// exportDir is where batch runs write reports.
const exportDir = "exports"

// Service provides report generation over files.
type Service struct {
	engine  *report.Engine
	parsers *importer.Registry
	logger  *slog.Logger
}

// NewService creates a reporting Service. A nil logger uses slog.Default.
func NewService(engine *report.Engine, parsers *importer.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, parsers: parsers, logger: logger}
}

// Outcome is a built report plus what ingestion left out.
type Outcome struct {
	RunID   string
	Source  string
	Rows    int
	Skipped []ledger.Skip
	Report  *model.Report
}

// Generate reads the export at path and builds its report. Any failure
// aborts the whole report.
func (s *Service) Generate(path string) (*Outcome, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID, "source", filepath.Base(path))

	parser, err := s.parsers.ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	table, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mapped, err := ledger.Map(table)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	for _, sk := range mapped.Skipped {
		logger.Warn("row skipped", "row", sk.Row, "reason", sk.Reason)
	}

	rep, err := s.engine.Build(mapped.Transactions)
	if err != nil {
		return nil, fmt.Errorf("building report for %s: %w", path, err)
	}

	logger.Info("report built",
		"rows", len(table.Rows),
		"dropped", rep.Dropped,
		"skipped", len(mapped.Skipped),
		"dates", len(rep.Days()),
	)

	return &Outcome{
		RunID:   runID,
		Source:  path,
		Rows:    len(table.Rows),
		Skipped: mapped.Skipped,
		Report:  rep,
	}, nil
}

// Write serializes rep to path. The file is only created once the report
// has been fully encoded.
func (s *Service) Write(rep *model.Report, w export.Writer, path string) error {
	var buf bytes.Buffer
	if err := w.Write(&buf, rep); err != nil {
		return fmt.Errorf("encoding %s report: %w", w.Format(), err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// BatchResult describes one file handled by Batch.
type BatchResult struct {
	Source string
	Output string
	Err    error
}

// Batch builds one report per importable file under <repoRoot>/import,
// writes it to <repoRoot>/exports and moves the source to import/processed.
// A failing file is left in place and does not stop the others.
func (s *Service) Batch(repoRoot string, w export.Writer) ([]BatchResult, error) {
	files, err := s.parsers.Scan(repoRoot)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, 0, len(files))
	for _, fi := range files {
		res := BatchResult{Source: fi.Path}
		res.Output, res.Err = s.batchOne(repoRoot, fi, w)
		if res.Err != nil {
			s.logger.Error("report failed", "source", fi.Name, "error", res.Err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) batchOne(repoRoot string, fi importer.FileInfo, w export.Writer) (string, error) {
	out, err := s.Generate(fi.Path)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(repoRoot, exportDir, reportName(fi.Name, w.Format()))
	if err := s.Write(out.Report, w, outPath); err != nil {
		return "", err
	}
	if err := importer.MarkProcessed(repoRoot, fi.Name); err != nil {
		return outPath, err
	}
	return outPath, nil
}

// reportName names the export for a source file. The source extension is
// kept so that a.csv and a.xlsx do not write the same report.
func reportName(source, format string) string {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(source, ext)
	if ext = strings.ToLower(strings.TrimPrefix(ext, ".")); ext != "" {
		base += "-" + ext
	}
	return base + "-report." + format
}
