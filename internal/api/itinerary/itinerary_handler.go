package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-ireland-travel-planner/app/middleware"
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

// CreateItinerary godoc
// @Summary      Generate a travel plan
// @Description  Builds a day by day Ireland itinerary for the given preferences. Omitted fields take their defaults.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        preferences body types.UserPreferences true "Travel preferences"
// @Success      200 {object} types.TravelPlan
// @Failure      400 {object} map[string]interface{} "Invalid preferences"
// @Failure      503 {object} map[string]interface{} "Catalogue unavailable"
// @Failure      500 {object} map[string]interface{} "Internal Server Error"
// @Security     BearerAuth
// @Router       /itineraries [post]
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "CreateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateItinerary"))
	if subject, ok := appMiddleware.GetSubjectFromContext(ctx); ok && subject != "" {
		l = l.With(slog.String("subject", subject))
	}
	l.DebugContext(ctx, "Create itinerary handler invoked")

	prefs := types.DefaultUserPreferences()
	if err := api.DecodeJSONBody(w, r, &prefs); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("trip.duration", prefs.TripDuration),
		attribute.Int("trip.activities_per_day", prefs.ActivitiesPerDay),
		attribute.StringSlice("trip.interests", prefs.Interests))

	plan, err := h.service.PlanTrip(ctx, prefs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan failed")
		switch {
		case errors.Is(err, types.ErrInvalidPreferences):
			l.WarnContext(ctx, "Invalid travel preferences", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrDataLoad):
			l.ErrorContext(ctx, "POI catalogue unavailable", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "POI catalogue unavailable")
		default:
			l.ErrorContext(ctx, "Failed to generate travel plan", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate travel plan")
		}
		return
	}

	l.InfoContext(ctx, "Travel plan generated", slog.String("plan_id", plan.ID.String()))
	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}
