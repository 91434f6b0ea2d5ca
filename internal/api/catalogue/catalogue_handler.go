package catalogue

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type poiView struct {
	*types.POI
	Category              string `json:"category"`
	EstimatedVisitMinutes int    `json:"estimated_visit_minutes"`
}

type catalogueResponse struct {
	TotalCount     int            `json:"total_count"`
	Regions        []string       `json:"regions"`
	RegionCounts   map[string]int `json:"region_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
	POIs           []poiView      `json:"pois"`
}

// SearchPOIs godoc
// @Summary      Filter the POI catalogue
// @Description  Returns catalogue entries matching the interests, optionally restricted to regions and special requirements
// @Tags         Catalogue
// @Produce      json
// @Param        interests query string true  "Comma separated interests"
// @Param        regions   query string false "Comma separated regions"
// @Param        special   query string false "Comma separated special requirements"
// @Success      200 {object} catalogueResponse
// @Failure      400 {object} map[string]interface{} "Invalid query"
// @Failure      503 {object} map[string]interface{} "Catalogue unavailable"
// @Router       /pois [get]
func (h *Handler) SearchPOIs(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CatalogueHandler").Start(r.Context(), "SearchPOIs", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/pois"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchPOIs"))

	prefs := types.DefaultUserPreferences()
	prefs.Interests = splitQueryList(r.URL.Query().Get("interests"))
	prefs.Regions = splitQueryList(r.URL.Query().Get("regions"))
	prefs.SpecialRequirements = splitQueryList(r.URL.Query().Get("special"))
	if err := prefs.Validate(); err != nil {
		l.WarnContext(ctx, "Invalid catalogue query", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid query")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	organized, err := h.service.FilterAndOrganize(ctx, prefs)
	if err != nil {
		l.ErrorContext(ctx, "Failed to filter catalogue", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "filter failed")
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrDataLoad) {
			status = http.StatusServiceUnavailable
		}
		api.ErrorResponse(w, r, status, "POI catalogue unavailable")
		return
	}

	resp := catalogueResponse{
		TotalCount:     organized.TotalCount,
		Regions:        organized.Regions,
		RegionCounts:   organized.RegionCounts,
		CategoryCounts: organized.CategoryCounts,
		POIs:           make([]poiView, 0, organized.TotalCount),
	}
	for _, poi := range organized.AllPOIs() {
		resp.POIs = append(resp.POIs, poiView{
			POI:                   poi,
			Category:              poi.Category(),
			EstimatedVisitMinutes: poi.EstimatedVisitMinutes(),
		})
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func splitQueryList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
