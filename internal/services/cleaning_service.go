package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"grantcli/internal/config"
	"grantcli/internal/dataprocessing"
	"grantcli/internal/enrich"
	apperrors "grantcli/internal/errors"
	"grantcli/internal/exporter"
	"grantcli/internal/files"
	"grantcli/internal/geocode"
	"grantcli/internal/infrastructure"
	"grantcli/internal/operations"
	"grantcli/internal/validation"
)

// CleaningService cleans intake files into _CLEANED.csv files
type CleaningService struct {
	pipeline config.PipelineConfig
	registry *operations.Registry
	tracer   *operations.StepTracer
	records  *validation.RecordValidator
	files    *validation.FileValidator
	writer   *exporter.CSVWriter
	logger   *slog.Logger
}

// CleanResult describes one finished run
type CleanResult struct {
	RunID    string         `json:"run_id"`
	Input    string         `json:"input"`
	Output   string         `json:"output"`
	Manifest string         `json:"manifest,omitempty"`
	Rows     int            `json:"rows"`
	Missing  []string       `json:"missing_columns,omitempty"`
	NACounts map[string]int `json:"na_counts"`
	Digest   string         `json:"digest"`
	Duration time.Duration  `json:"duration"`
}

// LoadZipTable loads the geocode reference named in cfg. When the file is
// not required a load failure is logged and an empty table returned, so
// every row gets null coordinates.
func LoadZipTable(cfg config.GeocodeConfig, logger *slog.Logger) (*geocode.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if !cfg.Required && !config.FileExists(cfg.Path) {
		logger.Info("No zip reference found, coordinates will be empty",
			slog.String("path", cfg.Path))
		return geocode.NewTable(nil), nil
	}

	zips, err := geocode.Load(cfg.Path)
	if err != nil {
		if cfg.Required {
			return nil, err
		}
		logger.Warn("Zip reference unavailable, coordinates will be empty",
			slog.String("path", cfg.Path),
			slog.String("error", err.Error()))
		return geocode.NewTable(nil), nil
	}

	logger.Info("Zip reference loaded",
		slog.String("path", cfg.Path),
		slog.Int("zips", zips.Len()))
	return zips, nil
}

// NewCleaningService creates a cleaning service. tracer may be nil.
func NewCleaningService(cfg *config.Config, zips *geocode.Table, tracer *operations.StepTracer, logger *slog.Logger) *CleaningService {
	if logger == nil {
		logger = slog.Default()
	}

	enricher := enrich.New(zips)
	enricher.Clock = cfg.TodayFunc()

	logger.Debug("CleaningService initialized",
		slog.String("sheet", cfg.Pipeline.SheetName),
		slog.String("output_dir", cfg.Pipeline.OutputDir),
		slog.Bool("write_manifest", cfg.Pipeline.WriteManifest))

	return &CleaningService{
		pipeline: cfg.Pipeline,
		registry: dataprocessing.NewStepRegistry(enricher),
		tracer:   tracer,
		records:  validation.NewRecordValidator(logger),
		files:    validation.NewFileValidator(logger),
		writer:   exporter.NewCSVWriter(cfg.Pipeline.BOM),
		logger:   infrastructure.WithComponent(logger, "cleaning_service"),
	}
}

// Steps returns the registered step ids in registration order
func (s *CleaningService) Steps() []string {
	return s.registry.ListIDs()
}

// Clean runs one intake file end to end and returns where the cleaned file went
func (s *CleaningService) Clean(ctx context.Context, input string) (*CleanResult, error) {
	runID := infrastructure.NewRunID()
	ctx = infrastructure.WithRunID(infrastructure.EnsureTraceID(ctx), runID)
	ctx, span := s.tracer.StartRun(ctx, runID, input)
	start := time.Now()

	manifest := operations.NewRunManifest(runID, input)
	result, err := s.clean(ctx, input, manifest)

	rows := 0
	if result != nil {
		rows = result.Rows
	}
	s.tracer.EndRun(ctx, span, rows, time.Since(start), err)

	if err != nil {
		manifest.Fail(err)
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Cleaning run failed",
			slog.String("run_id", runID),
			slog.String("input", input))
		return nil, err
	}

	result.Duration = time.Since(start)
	s.logger.InfoContext(ctx, "Cleaning run completed",
		slog.String("run_id", runID),
		slog.String("output", result.Output),
		slog.Int("rows", result.Rows),
		slog.String("digest", result.Digest),
		slog.Duration("duration", result.Duration))
	return result, nil
}

func (s *CleaningService) clean(ctx context.Context, input string, manifest *operations.RunManifest) (*CleanResult, error) {
	if err := s.files.ValidateInputFile(input); err != nil {
		return nil, err
	}

	table, err := dataprocessing.LoadTable(input, s.pipeline.SheetName)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Intake file loaded",
		slog.String("input", input),
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Header)))

	transformer := dataprocessing.NewTransformer(s.registry, s.tracer, dataprocessing.TransformOptions{
		AllowMissingColumns: s.pipeline.AllowMissingColumns,
	})
	transformed, err := transformer.Transform(ctx, table)
	if err != nil {
		return nil, err
	}

	violations, err := s.records.ValidateAll(transformed.Records)
	if err != nil {
		for _, v := range violations {
			infrastructure.RecordValidationFailure(ctx, s.tracer.Metrics(), v.Column)
		}
		return nil, err
	}

	if err := s.files.ValidateOutputDirectory(s.pipeline.OutputDir); err != nil {
		return nil, err
	}
	output := config.CleanedPath(input, s.pipeline.OutputDir)
	written, err := s.writer.WriteRecords(output, transformed.Records)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to write cleaned file", err).WithContext("path", output)
	}
	infrastructure.RecordNACounts(ctx, s.tracer.Metrics(), written.NACounts)

	result := &CleanResult{
		RunID:    manifest.RunID,
		Input:    input,
		Output:   output,
		Rows:     written.Rows,
		Missing:  transformed.Missing,
		NACounts: written.NACounts,
		Digest:   operations.Digest(written.Content),
	}

	manifest.Rows = written.Rows
	manifest.Columns = exporter.Columns
	manifest.Missing = transformed.Missing
	manifest.NACounts = written.NACounts
	manifest.Steps = transformed.Steps
	manifest.Complete(output, result.Digest)

	if s.pipeline.WriteManifest {
		path := config.ManifestPath(output)
		if err := manifest.SaveToFile(path); err != nil {
			return nil, apperrors.NewStorageError("failed to write run manifest", err).WithContext("path", path)
		}
		result.Manifest = path
	}

	return result, nil
}

// CleanDirectory cleans every intake file in dir, in name order. It stops at
// the first failure and returns the runs finished before it.
func (s *CleaningService) CleanDirectory(ctx context.Context, dir string) ([]*CleanResult, error) {
	if err := s.files.ValidateInputDirectory(dir); err != nil {
		return nil, err
	}

	inputs, err := files.NewDiscovery("").FindInputFiles(dir)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list input directory", err).WithContext("path", dir)
	}
	if len(inputs) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("intake files in %s", dir)).WithCause(ErrNoInputFiles)
	}

	results := make([]*CleanResult, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := s.Clean(ctx, in.Path)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
