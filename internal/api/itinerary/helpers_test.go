package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Generate(ctx context.Context, systemPrompt, userPrompt string) string {
	return m.Called(ctx, systemPrompt, userPrompt).String(0)
}

// funcGateway answers every prompt with reply and records the calls.
type funcGateway struct {
	mu    sync.Mutex
	calls []string
	reply func(systemPrompt, userPrompt string) string
}

func (f *funcGateway) Generate(_ context.Context, systemPrompt, userPrompt string) string {
	f.mu.Lock()
	f.calls = append(f.calls, systemPrompt)
	f.mu.Unlock()
	return f.reply(systemPrompt, userPrompt)
}

func (f *funcGateway) callCount(systemPrompt string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == systemPrompt {
			n++
		}
	}
	return n
}

func failingGateway() *funcGateway {
	return &funcGateway{reply: func(string, string) string {
		return "Error: unable to generate text after 5 attempt(s): 503 service unavailable"
	}}
}

func newPOI(name, region, tags string) *types.POI {
	return &types.POI{
		ID:       types.POIIDFromName(name),
		Name:     name,
		Region:   region,
		Locality: name + " Town",
		Tags:     tags,
	}
}

func museumPOIs(n int) []*types.POI {
	pois := make([]*types.POI, 0, n)
	for i := 1; i <= n; i++ {
		pois = append(pois, newPOI(fmt.Sprintf("Museum %02d", i), "Dublin", "Museums and Attraction"))
	}
	return pois
}

func preferences(interests []string, days, perDay int) types.UserPreferences {
	prefs := types.DefaultUserPreferences()
	prefs.Interests = interests
	prefs.TripDuration = days
	prefs.ActivitiesPerDay = perDay
	return prefs
}

func dayNames(days types.OrganizedDays) [][]string {
	out := make([][]string, 0, len(days))
	for _, day := range days {
		out = append(out, poiNames(day))
	}
	return out
}
