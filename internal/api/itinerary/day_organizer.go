package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-ireland-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

var _ Organizer = (*OrganizerImpl)(nil)

// Organizer splits POIs into days. It always returns a usable grouping.
type Organizer interface {
	Organize(ctx context.Context, pois []*types.POI, prefs types.UserPreferences) types.OrganizedDays
}

type OrganizerImpl struct {
	gateway generativeAI.Gateway
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewOrganizer(gateway generativeAI.Gateway, logger *slog.Logger, m *metrics.AppMetrics) *OrganizerImpl {
	return &OrganizerImpl{gateway: gateway, logger: logger, metrics: m}
}

// Organize asks the LLM for a day grouping and falls back to FallbackDayGrouping when the
// reply cannot be turned into exactly TripDuration days of ActivitiesPerDay POIs.
func (o *OrganizerImpl) Organize(ctx context.Context, pois []*types.POI, prefs types.UserPreferences) types.OrganizedDays {
	ctx, span := otel.Tracer("Itinerary").Start(ctx, "Organize")
	defer span.End()

	candidates := SelectCandidates(pois, prefs)
	span.SetAttributes(attribute.Int("organizer.candidates", len(candidates)))

	if len(candidates) == 0 {
		o.logger.WarnContext(ctx, "No POIs available to organize")
		return types.OrganizedDays{}
	}

	reply := o.gateway.Generate(ctx, organizerSystemPrompt, generateDayGroupingPrompt(candidates, prefs))
	if generativeAI.IsFailure(reply) {
		return o.fallback(ctx, candidates, prefs, "gateway_failure", errors.New(reply))
	}

	days := ParseDayGrouping(reply, candidates)
	if err := ValidateDayGrouping(days, prefs.TripDuration, prefs.ActivitiesPerDay); err != nil {
		return o.fallback(ctx, candidates, prefs, "invalid_grouping", err)
	}

	span.SetAttributes(attribute.Bool("organizer.fallback", false))
	o.logger.DebugContext(ctx, "Using LLM day grouping", slog.Int("days", len(days)))
	return days
}

func (o *OrganizerImpl) fallback(ctx context.Context, candidates []*types.POI, prefs types.UserPreferences, reason string, cause error) types.OrganizedDays {
	o.logger.WarnContext(ctx, "LLM day grouping unusable, using fallback grouping",
		slog.String("reason", reason),
		slog.Any("error", cause))
	o.metrics.RecordOrganizerFallback(ctx, reason)
	return FallbackDayGrouping(candidates, prefs)
}

// SelectCandidates keeps the POIs matching at least one interest, or returns every POI when
// the matching set is too small to fill the whole trip.
func SelectCandidates(pois []*types.POI, prefs types.UserPreferences) []*types.POI {
	matching := make([]*types.POI, 0, len(pois))
	for _, poi := range pois {
		if poi.MatchesAny(prefs.Interests) {
			matching = append(matching, poi)
		}
	}
	if len(matching) < prefs.TotalActivities() {
		return pois
	}
	return matching
}

// ParseDayGrouping reads a reply of "Day N:" headers followed by POI lines.
//
// A line starting with "day " (any case) closes the current day; empty days are dropped.
// Every other line is assigned the first candidate whose name appears in it, case-insensitively.
// The same POI may be assigned on several lines.
func ParseDayGrouping(reply string, candidates []*types.POI) types.OrganizedDays {
	days := types.OrganizedDays{}
	var current []*types.POI

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "day ") {
			if len(current) > 0 {
				days = append(days, current)
			}
			current = nil
			continue
		}
		if poi := matchPOILine(lower, candidates); poi != nil {
			current = append(current, poi)
		}
	}
	if len(current) > 0 {
		days = append(days, current)
	}
	return days
}

func matchPOILine(lowerLine string, candidates []*types.POI) *types.POI {
	for _, poi := range candidates {
		name := strings.ToLower(poi.Name)
		if name != "" && strings.Contains(lowerLine, name) {
			return poi
		}
	}
	return nil
}

// ValidateDayGrouping checks the exact day and activity counts.
func ValidateDayGrouping(days types.OrganizedDays, tripDuration, activitiesPerDay int) error {
	if len(days) != tripDuration {
		return fmt.Errorf("expected %d days, got %d", tripDuration, len(days))
	}
	for i, day := range days {
		if len(day) != activitiesPerDay {
			return fmt.Errorf("day %d has %d activities, expected %d", i+1, len(day), activitiesPerDay)
		}
	}
	return nil
}

// FallbackDayGrouping ranks POIs by the number of matching interests (ties keep input order),
// keeps the top TripDuration*ActivitiesPerDay and chunks them into days.
// With too few POIs the result has fewer or shorter days.
func FallbackDayGrouping(pois []*types.POI, prefs types.UserPreferences) types.OrganizedDays {
	ranked := make([]*types.POI, len(pois))
	copy(ranked, pois)

	scores := make(map[*types.POI]int, len(ranked))
	for _, poi := range ranked {
		scores[poi] = poi.InterestScore(prefs.Interests)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	if needed := prefs.TotalActivities(); len(ranked) > needed {
		ranked = ranked[:needed]
	}

	days := types.OrganizedDays{}
	perDay := prefs.ActivitiesPerDay
	if perDay < 1 {
		return days
	}
	for start := 0; start < len(ranked); start += perDay {
		end := min(start+perDay, len(ranked))
		days = append(days, ranked[start:end:end])
	}
	return days
}
