package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"grantcli/internal/config"
	"grantcli/internal/dataprocessing"
	apperrors "grantcli/internal/errors"
	"grantcli/internal/exporter"
	"grantcli/internal/geocode"
	"grantcli/internal/infrastructure"
	"grantcli/internal/operations"
	"grantcli/internal/services"
	"grantcli/pkg/contracts"
)

const usage = `Usage:
  cleaner run [-out DIR] [-manifest] [-today YYYY-MM-DD] <input-file|dir>
  cleaner summary [-dir DIR] [-by COLUMN] [-out FILE]
  cleaner steps
  cleaner version
`

// cli carries what every subcommand needs
type cli struct {
	cfg    *config.Config
	logger *slog.Logger
	tracer *operations.StepTracer
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		return 1
	}
	defer providers.Shutdown(context.Background())

	tracer, err := operations.NewStepTracer(providers)
	if err != nil {
		logger.Warn("Step tracing disabled", slog.String("error", err.Error()))
	}

	c := &cli{cfg: cfg, logger: logger, tracer: tracer, stdout: os.Stdout, stderr: os.Stderr}
	return c.run(ctx, os.Args[1:])
}

// run dispatches a subcommand and returns the process exit code
func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		return c.fail(apperrors.NewUsageError("no command given"))
	}

	var err error
	switch args[0] {
	case "run":
		err = c.clean(ctx, args[1:])
	case "summary":
		err = c.summary(ctx, args[1:])
	case "steps":
		err = c.steps()
	case "version", "--version":
		fmt.Fprintln(c.stdout, contracts.GetFullVersionString())
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(c.stdout, usage)
		return 0
	default:
		err = apperrors.NewUsageError(fmt.Sprintf("unknown command %q", args[0]))
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return c.fail(err)
	}
	return 0
}

func (c *cli) fail(err error) int {
	fmt.Fprintf(c.stderr, "Error: %v\n", err)
	if apperrors.IsType(err, apperrors.ErrTypeUsage) {
		fmt.Fprint(c.stderr, usage)
	}
	return 1
}

// clean handles `cleaner run`
func (c *cli) clean(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	outDir := fs.String("out", c.cfg.Pipeline.OutputDir, "directory for the _CLEANED.csv files (default: next to the working directory)")
	manifest := fs.Bool("manifest", c.cfg.Pipeline.WriteManifest, "write a run manifest next to each cleaned file")
	today := fs.String("today", c.cfg.Pipeline.Today, "pin the date used for ages (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return apperrors.NewUsageError("no input file provided")
	}
	if fs.NArg() > 1 {
		return apperrors.NewUsageError(fmt.Sprintf("expected one input, got %d", fs.NArg()))
	}

	cfg := *c.cfg
	cfg.Pipeline.OutputDir = *outDir
	cfg.Pipeline.WriteManifest = *manifest
	cfg.Pipeline.Today = *today
	if err := cfg.Validate(); err != nil {
		return err
	}

	zips, err := services.LoadZipTable(cfg.Geocode, c.logger)
	if err != nil {
		return err
	}
	svc := services.NewCleaningService(&cfg, zips, c.tracer, c.logger)

	input := fs.Arg(0)
	if info, statErr := os.Stat(input); statErr == nil && info.IsDir() {
		results, err := svc.CleanDirectory(ctx, input)
		for _, res := range results {
			c.report(res)
		}
		return err
	}

	res, err := svc.Clean(ctx, input)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}

func (c *cli) report(res *services.CleanResult) {
	fmt.Fprintf(c.stdout, "Cleaned %s -> %s (%d rows)\n", res.Input, res.Output, res.Rows)
	if len(res.Missing) > 0 {
		fmt.Fprintf(c.stdout, "  missing columns: %v\n", res.Missing)
	}
	if res.Manifest != "" {
		fmt.Fprintf(c.stdout, "  manifest: %s\n", res.Manifest)
	}
}

// summary handles `cleaner summary`
func (c *cli) summary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	dir := fs.String("dir", c.cfg.Pipeline.DataDir, "directory holding _CLEANED.csv files")
	by := fs.String("by", "gender", "column to group grant amounts by")
	out := fs.String("out", "", "also write the table to FILE (.csv or .json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return apperrors.NewUsageError(fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}

	ds, err := services.LoadDirectory(ctx, *dir)
	if err != nil {
		return err
	}

	summarizer := dataprocessing.NewSummarizer(c.logger, exporter.NewCSVWriter(c.cfg.Pipeline.BOM))
	report, err := summarizer.Summarize(ctx, ds, *by)
	if err != nil {
		return err
	}
	if err := summarizer.Render(c.stdout, report); err != nil {
		return err
	}

	if *out != "" {
		if err := summarizer.Export(ctx, *out, report); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Summary written to %s\n", *out)
	}
	return nil
}

// steps handles `cleaner steps`
func (c *cli) steps() error {
	svc := services.NewCleaningService(c.cfg, geocode.NewTable(nil), nil, c.logger)
	for i, id := range svc.Steps() {
		fmt.Fprintf(c.stdout, "%2d. %s\n", i+1, id)
	}
	return nil
}
