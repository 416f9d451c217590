package http

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "grantcli/internal/errors"
	"grantcli/internal/middleware"
	"grantcli/internal/services"
)

// reviewQuery is the query string of GET /api/review
type reviewQuery struct {
	Signature string `query:"signature" validate:"omitempty,oneof=All Signed 'Not Signed' Missing"`
}

// DashboardHandler serves the dashboard views as JSON
type DashboardHandler struct {
	service      DashboardServiceInterface
	queries      *middleware.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error handling
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		queries:      middleware.NewQueryValidator(logger),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes adds the dashboard routes to r
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.GetStatus)
	r.Get("/review", h.GetReview)
	r.Get("/support", h.GetDimensions)
	r.With(h.DimensionCtx).Get("/support/{dimension}", h.GetSupport)
	r.Get("/map", h.GetMap)
	r.Get("/response-time", h.GetResponseTime)
	r.Get("/utilization", h.GetUtilization)
	r.Get("/impact", h.GetImpact)
}

// DimensionCtx rejects dimensions the support view cannot group by
func (h *DashboardHandler) DimensionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dimension := chi.URLParam(r, "dimension")
		allowed := h.service.Dimensions()
		if !slices.Contains(allowed, dimension) {
			h.errorHandler.HandleError(w, r, apierrors.InvalidParameter("dimension", dimension, allowed))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStatus handles GET /api/status
func (h *DashboardHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Status(),
	})
}

// GetReview handles GET /api/review?signature=
func (h *DashboardHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	var q reviewQuery
	if err := h.queries.Bind(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Review(r.Context(), q.Signature)
	if err != nil {
		h.fail(w, r, "review", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
		"count":  result.Count,
	})
}

// GetDimensions handles GET /api/support
func (h *DashboardHandler) GetDimensions(w http.ResponseWriter, r *http.Request) {
	dims := h.service.Dimensions()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dims,
		"count":  len(dims),
	})
}

// GetSupport handles GET /api/support/{dimension}
func (h *DashboardHandler) GetSupport(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")
	result, err := h.service.SupportBy(r.Context(), dimension)
	if err != nil {
		h.fail(w, r, "support", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
		"count":  len(result.Groups),
	})
}

// GetMap handles GET /api/map
func (h *DashboardHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Map(r.Context())
	if err != nil {
		h.fail(w, r, "map", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Points),
	})
}

// GetResponseTime handles GET /api/response-time
func (h *DashboardHandler) GetResponseTime(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ResponseTime(r.Context())
	if err != nil {
		h.fail(w, r, "response_time", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetUtilization handles GET /api/utilization
func (h *DashboardHandler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Utilization(r.Context())
	if err != nil {
		h.fail(w, r, "utilization", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetImpact handles GET /api/impact
func (h *DashboardHandler) GetImpact(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Impact(r.Context())
	if err != nil {
		h.fail(w, r, "impact", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// fail logs a view failure and maps it to a problem response
func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, view string, err error) {
	h.logger.ErrorContext(r.Context(), "dashboard view failed",
		slog.String("view", view),
		slog.String("error", err.Error()),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)

	if errors.Is(err, services.ErrNotLoaded) {
		h.errorHandler.HandleError(w, r, apierrors.ErrDataNotFound)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}
