package dataprocessing

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "grantcli/internal/errors"
	"grantcli/internal/exporter"
)

// SummaryReport is a grouped-sum table over every loaded cleaned file
type SummaryReport struct {
	Dimension   string       `json:"dimension"`
	Groups      []GroupTotal `json:"groups"`
	TotalAmount float64      `json:"total_amount"`
	Records     int          `json:"records"`
	Files       []string     `json:"files"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Summarizer builds and writes grouped summaries for the terminal and for files
type Summarizer struct {
	logger *slog.Logger
	writer *exporter.CSVWriter
	clock  func() time.Time
}

// NewSummarizer creates a summarizer. A nil logger uses slog.Default.
func NewSummarizer(logger *slog.Logger, writer *exporter.CSVWriter) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if writer == nil {
		writer = exporter.NewCSVWriter(false)
	}
	return &Summarizer{logger: logger, writer: writer, clock: time.Now}
}

// Summarize groups the dataset's grant amounts by dimension
func (s *Summarizer) Summarize(ctx context.Context, ds *Dataset, dimension string) (*SummaryReport, error) {
	groups, err := NewAnalyzer(ds.Records).SupportBy(dimension)
	if err != nil {
		return nil, err
	}

	report := &SummaryReport{
		Dimension:   dimension,
		Groups:      groups,
		Records:     ds.Len(),
		Files:       ds.Files,
		GeneratedAt: s.clock().UTC(),
	}
	for _, g := range groups {
		report.TotalAmount += g.Amount
	}

	s.logger.InfoContext(ctx, "summary generated",
		slog.String("dimension", dimension),
		slog.Int("groups", len(groups)),
		slog.Int("records", report.Records))
	return report, nil
}

// Render writes the report as an aligned table
func (s *Summarizer) Render(w io.Writer, report *SummaryReport) error {
	table := exporter.NewTableWriter(report.Dimension, "applications", "amount").
		SetAlign(1, exporter.AlignRight).
		SetAlign(2, exporter.AlignRight)
	for _, g := range report.Groups {
		table.Append(g.Key, strconv.Itoa(g.Count), exporter.FormatMoney(g.Amount))
	}
	table.Append("Total", strconv.Itoa(report.Records), exporter.FormatMoney(report.TotalAmount))
	return table.Render(w)
}

// Export writes the report to path; .json files get JSON, anything else CSV
func (s *Summarizer) Export(ctx context.Context, path string, report *SummaryReport) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return s.WriteJSON(ctx, path, report)
	}
	return s.WriteCSV(ctx, path, report)
}

// WriteCSV writes one row per group
func (s *Summarizer) WriteCSV(ctx context.Context, path string, report *SummaryReport) error {
	records := make([][]string, len(report.Groups))
	for i, g := range report.Groups {
		records[i] = []string{g.Key, strconv.Itoa(g.Count), strconv.FormatFloat(g.Amount, 'f', 2, 64)}
	}

	if err := s.writer.WriteSimpleCSV(path, []string{report.Dimension, "applications", "amount"}, records); err != nil {
		return apperrors.NewStorageError("failed to write summary CSV", err).WithContext("path", path)
	}

	s.logger.InfoContext(ctx, "summary written", slog.String("path", path), slog.String("format", "csv"))
	return nil
}

// WriteJSON writes the whole report as indented JSON
func (s *Summarizer) WriteJSON(ctx context.Context, path string, report *SummaryReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for JSON output", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode summary", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write summary JSON", err).WithContext("path", path)
	}

	s.logger.InfoContext(ctx, "summary written", slog.String("path", path), slog.String("format", "json"))
	return nil
}
