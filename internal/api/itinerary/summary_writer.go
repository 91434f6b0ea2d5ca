package itinerary

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-ireland-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

// SummaryWriter produces the trip level prose: the overall summary and the general tips.
type SummaryWriter struct {
	gateway generativeAI.Gateway
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewSummaryWriter(gateway generativeAI.Gateway, logger *slog.Logger, m *metrics.AppMetrics) *SummaryWriter {
	return &SummaryWriter{gateway: gateway, logger: logger, metrics: m}
}

func (w *SummaryWriter) TripSummary(ctx context.Context, days types.OrganizedDays, prefs types.UserPreferences) string {
	var (
		regions    []string
		categories []string
		seenRegion = map[string]bool{}
		seenTag    = map[string]bool{}
	)
	for _, day := range days {
		for _, poi := range day {
			if !seenRegion[poi.Region] {
				seenRegion[poi.Region] = true
				regions = append(regions, poi.Region)
			}
			for _, tag := range poi.TagList() {
				if !seenTag[tag] {
					seenTag[tag] = true
					categories = append(categories, tag)
				}
			}
		}
	}

	text := w.gateway.Generate(ctx, tripSummarySystemPrompt,
		generateTripSummaryPrompt(days.TotalPOIs(), regions, categories, prefs))
	return degradeText(ctx, w.logger, w.metrics, "trip_summary", text, tripSummaryPlaceholder)
}

// GeneralTips covers the whole filtered catalogue, not only the POIs placed on a day.
func (w *SummaryWriter) GeneralTips(ctx context.Context, prefs types.UserPreferences, pois []*types.POI) string {
	var regions []string
	seen := map[string]bool{}
	for _, poi := range pois {
		if !seen[poi.Region] {
			seen[poi.Region] = true
			regions = append(regions, poi.Region)
		}
	}

	text := w.gateway.Generate(ctx, tipsSystemPrompt, generateTipsPrompt(prefs, len(pois), regions))
	return degradeText(ctx, w.logger, w.metrics, "general_tips", text, tipsPlaceholder)
}
