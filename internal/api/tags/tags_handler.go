package tags

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

type tagsResponse struct {
	Tags    []string `json:"tags"`
	Regions []string `json:"regions"`
}

// GetTags godoc
// @Summary      List interest tags
// @Description  Returns the numbered interest tags and the known regions. With select, only the chosen tags are returned.
// @Tags         Tags
// @Produce      json
// @Param        select query string false "Tag numbers and ranges, e.g. 1,3-5"
// @Success      200 {object} tagsResponse
// @Failure      400 {object} map[string]interface{} "Invalid selection"
// @Router       /tags [get]
func (h *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TagsHandler").Start(r.Context(), "GetTags", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/tags"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetTags"))

	tags := types.AvailableTags
	if selection := r.URL.Query().Get("select"); selection != "" {
		selected, err := types.SelectTags(selection)
		if err != nil {
			l.WarnContext(ctx, "Invalid tag selection", slog.String("select", selection), slog.Any("error", err))
			span.SetStatus(codes.Error, "invalid selection")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		tags = selected
	}
	span.SetAttributes(attribute.Int("tags.count", len(tags)))

	api.WriteJSONResponse(w, r, http.StatusOK, tagsResponse{Tags: tags, Regions: types.KnownRegions})
}
