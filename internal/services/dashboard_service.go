package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"grantcli/internal/dataprocessing"
	apperrors "grantcli/internal/errors"
	"grantcli/internal/exporter"
	"grantcli/internal/files"
	"grantcli/internal/infrastructure"
)

// DashboardService serves the read-only dashboard views over every cleaned
// file in a directory. The table is loaded once and never modified.
type DashboardService struct {
	dir     string
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger

	mu       sync.RWMutex
	dataset  *dataprocessing.Dataset
	analyzer *dataprocessing.Analyzer
	loadedAt time.Time
}

// DatasetStatus describes what the dashboard has loaded
type DatasetStatus struct {
	Dir      string    `json:"dir"`
	Loaded   bool      `json:"loaded"`
	Files    []string  `json:"files"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// ReviewResult lists pending applications for one signature filter. Rows
// carry the cleaned file's columns and text.
type ReviewResult struct {
	Filter string              `json:"filter"`
	Count  int                 `json:"count"`
	Rows   []map[string]string `json:"rows"`
}

// SupportResult is the grant total per value of one dimension
type SupportResult struct {
	Dimension string                      `json:"dimension"`
	Groups    []dataprocessing.GroupTotal `json:"groups"`
	Total     float64                     `json:"total"`
}

// LoadDirectory reads every cleaned file in dir into one dataset
func LoadDirectory(ctx context.Context, dir string) (*dataprocessing.Dataset, error) {
	found, err := files.NewDiscovery("").FindCleanedFiles(dir)
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("directory %s", dir)).WithCause(err)
	}
	if len(found) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("cleaned files in %s", dir)).WithCause(ErrNoCleanedFiles)
	}
	return dataprocessing.LoadCleanedFiles(ctx, files.Paths(found))
}

// NewDashboardService creates a dashboard over dir. metrics may be nil.
func NewDashboardService(dir string, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		dir:     dir,
		metrics: metrics,
		logger:  infrastructure.WithComponent(logger, "dashboard_service"),
	}
}

// Load reads the cleaned files. It is safe to call again to pick up new files.
func (s *DashboardService) Load(ctx context.Context) error {
	start := time.Now()
	ds, err := LoadDirectory(ctx, s.dir)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Dashboard load failed",
			slog.String("dir", s.dir))
		return err
	}

	s.mu.Lock()
	s.dataset = ds
	s.analyzer = dataprocessing.NewAnalyzer(ds.Records)
	s.loadedAt = time.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DashboardRowsLoaded.Record(ctx, int64(ds.Len()))
	}

	s.logger.InfoContext(ctx, "Dashboard data loaded",
		slog.String("dir", s.dir),
		slog.Int("files", len(ds.Files)),
		slog.Int("records", ds.Len()),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Status reports the loaded files and row count
func (s *DashboardService) Status() DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := DatasetStatus{Dir: s.dir, Files: []string{}}
	if s.dataset == nil {
		return status
	}
	status.Loaded = true
	status.Files = s.dataset.Files
	status.Records = s.dataset.Len()
	status.LoadedAt = s.loadedAt
	return status
}

func (s *DashboardService) current() (*dataprocessing.Analyzer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analyzer == nil {
		return nil, apperrors.NewNotFoundError("dashboard data").WithCause(ErrNotLoaded)
	}
	return s.analyzer, nil
}

// Dimensions returns the columns the support view groups by
func (s *DashboardService) Dimensions() []string {
	return dataprocessing.Dimensions()
}

// Review returns pending applications matching a signature filter
func (s *DashboardService) Review(ctx context.Context, filter string) (*ReviewResult, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = string(dataprocessing.SignatureAll)
	}

	records, err := a.ReadyForReview(dataprocessing.SignatureFilter(filter))
	if err != nil {
		return nil, err
	}

	result := &ReviewResult{
		Filter: filter,
		Count:  len(records),
		Rows:   make([]map[string]string, len(records)),
	}
	for i, rec := range records {
		cells := exporter.EncodeRecord(rec)
		row := make(map[string]string, len(cells))
		for j, col := range exporter.Columns {
			row[col] = cells[j]
		}
		result.Rows[i] = row
	}

	s.logger.DebugContext(ctx, "Review view served",
		slog.String("filter", filter),
		slog.Int("count", result.Count))
	return result, nil
}

// SupportBy returns grant totals grouped by dimension
func (s *DashboardService) SupportBy(ctx context.Context, dimension string) (*SupportResult, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	groups, err := a.SupportBy(dimension)
	if err != nil {
		return nil, err
	}

	result := &SupportResult{Dimension: dimension, Groups: groups}
	for _, g := range groups {
		result.Total += g.Amount
	}
	return result, nil
}

// Map returns the zip map points
func (s *DashboardService) Map(ctx context.Context) (*dataprocessing.MapView, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	view := a.Map()
	return &view, nil
}

// ResponseTime returns the days-to-support summary
func (s *DashboardService) ResponseTime(ctx context.Context) (*dataprocessing.ResponseTime, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	view := a.ResponseTime()
	return &view, nil
}

// Utilization returns the remaining balance view
func (s *DashboardService) Utilization(ctx context.Context) (*dataprocessing.Utilization, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	view := a.Utilization()
	return &view, nil
}

// Impact returns the all-time impact summary
func (s *DashboardService) Impact(ctx context.Context) (*dataprocessing.ImpactSummary, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	view := a.Impact()
	return &view, nil
}
