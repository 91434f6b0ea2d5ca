package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/catalogue"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// PlanTrip validates prefs, filters the catalogue and assembles a plan.
	PlanTrip(ctx context.Context, prefs types.UserPreferences) (*types.TravelPlan, error)
	// GenerateTravelPlan assembles a plan from an already filtered catalogue.
	GenerateTravelPlan(ctx context.Context, organized *types.OrganizedCatalogue, prefs types.UserPreferences) (*types.TravelPlan, error)
}

type ServiceImpl struct {
	catalogueService catalogue.Service
	organizer        Organizer
	dayPlanBuilder   *DayPlanBuilder
	summaryWriter    *SummaryWriter
	logger           *slog.Logger
	metrics          *metrics.AppMetrics
}

func NewServiceImpl(
	catalogueService catalogue.Service,
	organizer Organizer,
	dayPlanBuilder *DayPlanBuilder,
	summaryWriter *SummaryWriter,
	logger *slog.Logger,
	m *metrics.AppMetrics,
) *ServiceImpl {
	return &ServiceImpl{
		catalogueService: catalogueService,
		organizer:        organizer,
		dayPlanBuilder:   dayPlanBuilder,
		summaryWriter:    summaryWriter,
		logger:           logger,
		metrics:          m,
	}
}

func (s *ServiceImpl) PlanTrip(ctx context.Context, prefs types.UserPreferences) (*types.TravelPlan, error) {
	ctx, span := otel.Tracer("Itinerary").Start(ctx, "PlanTrip")
	defer span.End()

	prefs = prefs.Normalized()
	if err := prefs.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid preferences")
		return nil, err
	}

	organized, err := s.catalogueService.FilterAndOrganize(ctx, prefs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalogue unavailable")
		var loadErr *types.DataLoadError
		if errors.As(err, &loadErr) {
			s.metrics.RecordCatalogueLoadError(ctx, loadErr.Source)
		}
		return nil, err
	}

	return s.GenerateTravelPlan(ctx, organized, prefs)
}

func (s *ServiceImpl) GenerateTravelPlan(ctx context.Context, organized *types.OrganizedCatalogue, prefs types.UserPreferences) (*types.TravelPlan, error) {
	ctx, span := otel.Tracer("Itinerary").Start(ctx, "GenerateTravelPlan")
	defer span.End()

	prefs = prefs.Normalized()
	if err := prefs.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid preferences")
		return nil, err
	}

	start := time.Now()
	planID := uuid.New()
	l := s.logger.With(slog.String("plan_id", planID.String()))
	span.SetAttributes(attribute.String("plan.id", planID.String()))

	allPOIs := organized.AllPOIs()
	if needed := prefs.TotalActivities(); len(allPOIs) < needed {
		l.WarnContext(ctx, "Not enough POIs to fill the trip; plan will have fewer or shorter days",
			slog.Int("available", len(allPOIs)),
			slog.Int("needed", needed))
	}

	days := s.organizer.Organize(ctx, allPOIs, prefs)

	plan := &types.TravelPlan{
		ID:                planID,
		InterestsAccuracy: CalculateInterestsAccuracy(days, prefs.Interests),
		TripSummary:       s.summaryWriter.TripSummary(ctx, days, prefs),
		GeneralTips:       s.summaryWriter.GeneralTips(ctx, prefs, allPOIs),
		Days:              make([]types.DayPlan, 0, len(days)),
	}

	for i, dayPOIs := range days {
		dayPlan, err := s.dayPlanBuilder.Build(ctx, i+1, dayPOIs, prefs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "day plan failed")
			return nil, fmt.Errorf("building day %d: %w", i+1, err)
		}
		plan.Days = append(plan.Days, dayPlan)
	}

	elapsed := time.Since(start)
	s.metrics.RecordPlan(ctx, len(plan.Days), elapsed)
	span.SetAttributes(
		attribute.Int("plan.days", len(plan.Days)),
		attribute.Float64("plan.overall_accuracy", plan.InterestsAccuracy.OverallAccuracy))
	l.InfoContext(ctx, "Travel plan generated",
		slog.Int("days", len(plan.Days)),
		slog.Int("pois", plan.InterestsAccuracy.TotalPOIs),
		slog.Float64("overall_accuracy", plan.InterestsAccuracy.OverallAccuracy),
		slog.Duration("elapsed", elapsed))

	return plan, nil
}
