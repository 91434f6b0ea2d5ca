package itinerary

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

func irishPOIs() []*types.POI {
	return []*types.POI{
		newPOI("Blarney Castle", "Cork", "Historic Houses and Castle,Gardens"),
		newPOI("Cork City Gaol", "Cork", "Museums and Attraction"),
		newPOI("Muckross House", "Kerry", "Historic Houses and Castle,Museums and Attraction"),
		newPOI("Inch Beach", "Kerry", "Beach,Swimming"),
		newPOI("Kylemore Abbey", "Galway", "Abbeys and Monastery,Gardens"),
		newPOI("Trinity College", "Dublin", "Learning,Literary Ireland"),
	}
}

func TestParseDayGrouping(t *testing.T) {
	candidates := irishPOIs()

	tests := []struct {
		name  string
		reply string
		want  [][]string
	}{
		{
			name:  "plain format",
			reply: "Day 1:\n- Blarney Castle\n- Cork City Gaol\n\nDay 2:\n- Muckross House\n- Inch Beach\n",
			want:  [][]string{{"Blarney Castle", "Cork City Gaol"}, {"Muckross House", "Inch Beach"}},
		},
		{
			name:  "case insensitive names inside prose",
			reply: "DAY 1: Cork\n1. Start at BLARNEY CASTLE (Cork) early\n2. Visit cork city gaol after lunch",
			want:  [][]string{{"Blarney Castle", "Cork City Gaol"}},
		},
		{
			name:  "empty days are dropped",
			reply: "Day 1:\nDay 2:\n- Kylemore Abbey",
			want:  [][]string{{"Kylemore Abbey"}},
		},
		{
			name:  "lines before the first header form a day",
			reply: "Here is a plan starting from Trinity College.\nDay 1:\n- Inch Beach",
			want:  [][]string{{"Trinity College"}, {"Inch Beach"}},
		},
		{
			name:  "unmatched lines are ignored",
			reply: "Day 1:\n- Cliffs of Moher\n- Muckross House\nEnjoy!",
			want:  [][]string{{"Muckross House"}},
		},
		{
			name:  "first candidate wins when a line names two POIs",
			reply: "Day 1:\n- Muckross House then Blarney Castle",
			want:  [][]string{{"Blarney Castle"}},
		},
		{
			name:  "duplicates across days are kept",
			reply: "Day 1:\n- Inch Beach\nDay 2:\n- Inch Beach",
			want:  [][]string{{"Inch Beach"}, {"Inch Beach"}},
		},
		{
			name:  "nothing parseable",
			reply: "I'm sorry, I can't help with that.",
			want:  [][]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDayGrouping(tt.reply, candidates)
			assert.Equal(t, tt.want, dayNames(got))
		})
	}

	t.Run("returns the candidate pointers", func(t *testing.T) {
		got := ParseDayGrouping("Day 1:\n- Inch Beach\nDay 2:\n- Inch Beach", candidates)
		require.Len(t, got, 2)
		assert.Same(t, candidates[3], got[0][0])
		assert.Same(t, got[0][0], got[1][0])
	})
}

func TestValidateDayGrouping(t *testing.T) {
	pois := irishPOIs()

	assert.NoError(t, ValidateDayGrouping(types.OrganizedDays{pois[:2], pois[2:4]}, 2, 2))
	assert.Error(t, ValidateDayGrouping(types.OrganizedDays{pois[:2]}, 2, 2))
	assert.Error(t, ValidateDayGrouping(types.OrganizedDays{pois[:2], pois[2:5]}, 2, 2))
	assert.Error(t, ValidateDayGrouping(types.OrganizedDays{}, 1, 1))
}

func TestSelectCandidates(t *testing.T) {
	pois := irishPOIs()

	t.Run("keeps matching POIs when there are enough", func(t *testing.T) {
		got := SelectCandidates(pois, preferences([]string{"castle", "museums"}, 1, 3))
		assert.Equal(t, []string{"Blarney Castle", "Cork City Gaol", "Muckross House"}, poiNames(got))
	})

	t.Run("uses every POI when too few match", func(t *testing.T) {
		got := SelectCandidates(pois, preferences([]string{"Beach"}, 2, 2))
		assert.Len(t, got, len(pois))
	})
}

func TestFallbackDayGrouping(t *testing.T) {
	pois := irishPOIs()
	prefs := preferences([]string{"Castle", "Museums", "Gardens"}, 2, 2)

	t.Run("ranks by interest score with stable ties", func(t *testing.T) {
		got := FallbackDayGrouping(pois, prefs)
		// Muckross: 2, Blarney: 2, Cork City Gaol: 1, Kylemore: 1
		assert.Equal(t, [][]string{
			{"Blarney Castle", "Muckross House"},
			{"Cork City Gaol", "Kylemore Abbey"},
		}, dayNames(got))
	})

	t.Run("is deterministic", func(t *testing.T) {
		first := FallbackDayGrouping(pois, prefs)
		for range 5 {
			assert.Equal(t, dayNames(first), dayNames(FallbackDayGrouping(pois, prefs)))
		}
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		before := poiNames(pois)
		FallbackDayGrouping(pois, prefs)
		assert.Equal(t, before, poiNames(pois))
	})

	t.Run("too few POIs gives shorter days", func(t *testing.T) {
		got := FallbackDayGrouping(pois[:3], preferences([]string{"Castle"}, 2, 2))
		require.Len(t, got, 2)
		assert.Len(t, got[0], 2)
		assert.Len(t, got[1], 1)
	})

	t.Run("no POIs gives no days", func(t *testing.T) {
		assert.Empty(t, FallbackDayGrouping(nil, prefs))
	})
}

func TestOrganizerImpl_Organize(t *testing.T) {
	ctx := context.Background()
	pois := irishPOIs()

	t.Run("uses a valid LLM grouping", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("Generate", mock.Anything, organizerSystemPrompt, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "EXACTLY 2 activities per day") &&
				strings.Contains(prompt, "- Blarney Castle (Cork) [Matches interests: Castle, Gardens]")
		})).Return("Day 1:\n- Kylemore Abbey\n- Blarney Castle\nDay 2:\n- Muckross House\n- Cork City Gaol").Once()

		organizer := NewOrganizer(gateway, testLogger(), nil)
		got := organizer.Organize(ctx, pois, preferences([]string{"Castle", "Gardens", "Museums"}, 2, 2))

		assert.Equal(t, [][]string{
			{"Kylemore Abbey", "Blarney Castle"},
			{"Muckross House", "Cork City Gaol"},
		}, dayNames(got))
		gateway.AssertExpectations(t)
	})

	t.Run("falls back when the day count is wrong", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("Generate", mock.Anything, organizerSystemPrompt, mock.Anything).
			Return("Day 1:\n- Kylemore Abbey\n- Blarney Castle").Once()

		prefs := preferences([]string{"Castle", "Museums", "Gardens"}, 2, 2)
		got := NewOrganizer(gateway, testLogger(), nil).Organize(ctx, pois, prefs)

		candidates := SelectCandidates(pois, prefs)
		assert.Equal(t, dayNames(FallbackDayGrouping(candidates, prefs)), dayNames(got))
		gateway.AssertExpectations(t)
	})

	t.Run("falls back when a day has the wrong size", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("Generate", mock.Anything, organizerSystemPrompt, mock.Anything).
			Return("Day 1:\n- Kylemore Abbey\nDay 2:\n- Muckross House\n- Cork City Gaol").Once()

		got := NewOrganizer(gateway, testLogger(), nil).Organize(ctx, pois, preferences([]string{"Castle"}, 2, 2))

		require.NoError(t, ValidateDayGrouping(got, 2, 2))
	})

	t.Run("falls back on gateway failure", func(t *testing.T) {
		gateway := failingGateway()
		got := NewOrganizer(gateway, testLogger(), nil).Organize(ctx, pois, preferences([]string{"Castle"}, 3, 2))

		require.NoError(t, ValidateDayGrouping(got, 3, 2))
		assert.Equal(t, 1, gateway.callCount(organizerSystemPrompt))
	})

	t.Run("skips the gateway when there is nothing to organize", func(t *testing.T) {
		gateway := new(MockGateway)
		got := NewOrganizer(gateway, testLogger(), nil).Organize(ctx, nil, preferences([]string{"Castle"}, 2, 2))

		assert.Empty(t, got)
		gateway.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrganizerImpl_Organize_AlwaysSatisfiesCounts(t *testing.T) {
	ctx := context.Background()
	replies := []string{
		"",
		"Day 1:\n- Museum 01",
		"Day 1:\n- Museum 01\n- Museum 02\nDay 2:\n- Museum 03\n- Museum 04\nDay 3:\n- Museum 05",
		"Error: unable to generate text",
	}

	for days := types.MinTripDuration; days <= 4; days++ {
		for perDay := types.MinActivitiesPerDay; perDay <= types.MaxActivitiesPerDay; perDay++ {
			for _, reply := range replies {
				gateway := &funcGateway{reply: func(string, string) string { return reply }}
				pois := museumPOIs(days * perDay)

				got := NewOrganizer(gateway, testLogger(), nil).
					Organize(ctx, pois, preferences([]string{"Museums"}, days, perDay))

				assert.NoError(t, ValidateDayGrouping(got, days, perDay), "days=%d perDay=%d reply=%q", days, perDay, reply)
			}
		}
	}
}
