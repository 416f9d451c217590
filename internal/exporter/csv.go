package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"grantcli/internal/config"
	"grantcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes cleaned files and other CSV reports
type CSVWriter struct {
	bom bool
}

// NewCSVWriter creates a new CSV writer. bom prefixes every file with a
// UTF-8 byte order mark for Excel.
func NewCSVWriter(bom bool) *CSVWriter {
	return &CSVWriter{bom: bom}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteResult describes a written cleaned file
type WriteResult struct {
	Path     string
	Rows     int
	NACounts map[string]int
	Content  []byte
}

// Encode writes headers and records as CSV to w
func Encode(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSV writes data to a CSV file, creating its directory
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	var buf bytes.Buffer
	if err := Encode(&buf, options); err != nil {
		return err
	}
	return writeFile(filePath, buf.Bytes())
}

// WriteSimpleCSV writes a CSV file with headers and records using the writer's BOM setting
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: w.bom,
	})
}

// WriteRecords writes cleaned records in schema order. The returned content
// is exactly the bytes on disk.
func (w *CSVWriter) WriteRecords(filePath string, records []*domain.ApplicationRecord) (*WriteResult, error) {
	rows := EncodeRecords(records)

	var buf bytes.Buffer
	if err := Encode(&buf, WriteOptions{Headers: Columns, Records: rows, BOMPrefix: w.bom}); err != nil {
		return nil, err
	}
	if err := writeFile(filePath, buf.Bytes()); err != nil {
		return nil, err
	}

	slog.Info("Cleaned file written",
		slog.String("path", filePath),
		slog.Int("rows", len(rows)),
		slog.Int("bytes", buf.Len()))

	return &WriteResult{
		Path:     filePath,
		Rows:     len(rows),
		NACounts: CountNA(rows),
		Content:  buf.Bytes(),
	}, nil
}

func writeFile(filePath string, content []byte) error {
	if err := config.EnsureDir(filepath.Dir(filePath)); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
