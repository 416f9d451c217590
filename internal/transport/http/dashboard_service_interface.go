package http

import (
	"context"

	"grantcli/internal/dataprocessing"
	"grantcli/internal/services"
)

// DashboardServiceInterface defines the read-only dashboard views
type DashboardServiceInterface interface {
	Status() services.DatasetStatus
	Dimensions() []string
	Review(ctx context.Context, filter string) (*services.ReviewResult, error)
	SupportBy(ctx context.Context, dimension string) (*services.SupportResult, error)
	Map(ctx context.Context) (*dataprocessing.MapView, error)
	ResponseTime(ctx context.Context) (*dataprocessing.ResponseTime, error)
	Utilization(ctx context.Context) (*dataprocessing.Utilization, error)
	Impact(ctx context.Context) (*dataprocessing.ImpactSummary, error)
}
