package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-ireland-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

const (
	VisitDuration = 120 * time.Minute
	BreakDuration = 30 * time.Minute
)

// DayPlanBuilder turns one day of POIs into a DayPlan with prose and a timetable.
type DayPlanBuilder struct {
	gateway     generativeAI.Gateway
	logger      *slog.Logger
	metrics     *metrics.AppMetrics
	concurrency int
}

// NewDayPlanBuilder creates a builder that requests at most concurrency descriptions at once.
func NewDayPlanBuilder(gateway generativeAI.Gateway, logger *slog.Logger, m *metrics.AppMetrics, concurrency int) *DayPlanBuilder {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DayPlanBuilder{
		gateway:     gateway,
		logger:      logger,
		metrics:     m,
		concurrency: concurrency,
	}
}

// Build never fails on text generation; failed texts become placeholders.
// The only error is an unparseable start time.
func (b *DayPlanBuilder) Build(ctx context.Context, dayNumber int, pois []*types.POI, prefs types.UserPreferences) (types.DayPlan, error) {
	ctx, span := otel.Tracer("Itinerary").Start(ctx, "BuildDayPlan")
	defer span.End()
	span.SetAttributes(attribute.Int("day.number", dayNumber), attribute.Int("day.activities", len(pois)))

	timings, err := ScheduleActivities(prefs.PreferredStartTime, len(pois))
	if err != nil {
		span.RecordError(err)
		return types.DayPlan{}, err
	}

	l := b.logger.With(slog.Int("day", dayNumber))

	summary := b.gateway.Generate(ctx, daySummarySystemPrompt, generateDaySummaryPrompt(pois))
	summary = degradeText(ctx, l, b.metrics, "day_summary", summary, daySummaryPlaceholder)

	descriptions := b.describe(ctx, l, pois)

	activities := make([]types.Activity, len(pois))
	for i, poi := range pois {
		activities[i] = types.Activity{
			Name:        poi.Name,
			Location:    poi.Location(),
			Description: descriptions[i],
			Timing:      timings[i],
		}
	}

	return types.DayPlan{
		DayNumber:  dayNumber,
		DaySummary: summary,
		Activities: activities,
	}, nil
}

// describe requests one description per POI concurrently; results keep the POI order.
func (b *DayPlanBuilder) describe(ctx context.Context, l *slog.Logger, pois []*types.POI) []string {
	descriptions := make([]string, len(pois))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, poi := range pois {
		g.Go(func() error {
			text := b.gateway.Generate(ctx, descriptionSystemPrompt, generatePOIDescriptionPrompt(poi))
			descriptions[i] = degradeText(ctx, l.With(slog.String("poi", poi.Name)), b.metrics, "description", text,
				fmt.Sprintf(descriptionPlaceholderFormat, poi.Name))
			return nil
		})
	}
	_ = g.Wait()

	return descriptions
}

func degradeText(ctx context.Context, l *slog.Logger, m *metrics.AppMetrics, field, text, placeholder string) string {
	text = strings.TrimSpace(text)
	if text != "" && !generativeAI.IsFailure(text) {
		return text
	}
	l.WarnContext(ctx, "Text generation degraded to placeholder", slog.String("field", field), slog.String("reply", text))
	m.RecordDegradedField(ctx, field)
	return placeholder
}

// ScheduleActivities lays out n fixed-length visits from start ("HH:MM") with a break between each.
// Times are not capped at the end of the day and wrap past midnight.
func ScheduleActivities(start string, n int) ([]string, error) {
	current, err := time.Parse(types.ClockLayout, start)
	if err != nil {
		return nil, &types.ConfigError{Field: "preferred_start_time", Reason: fmt.Sprintf("must be HH:MM, got %q", start)}
	}

	timings := make([]string, 0, n)
	for range n {
		end := current.Add(VisitDuration)
		timings = append(timings, current.Format(types.ClockLayout)+" - "+end.Format(types.ClockLayout))
		current = end.Add(BreakDuration)
	}
	return timings, nil
}
