package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

const (
	organizerSystemPrompt   = "You are a travel planning assistant that creates precise itineraries matching user requirements exactly."
	descriptionSystemPrompt = "You are a knowledgeable travel guide providing concise, engaging descriptions of points of interest in Ireland."
	daySummarySystemPrompt  = "You are a helpful travel planner creating concise day summaries for travelers in Ireland."
	tripSummarySystemPrompt = "You are a travel expert creating engaging trip summaries."
	tipsSystemPrompt        = "You are a knowledgeable travel advisor providing practical tips for traveling in Ireland."
)

const (
	descriptionPlaceholderFormat = "Description unavailable for %s"
	daySummaryPlaceholder        = "Day summary unavailable"
	tripSummaryPlaceholder       = "Trip summary unavailable"
	tipsPlaceholder              = "Itinerary tips unavailable"
)

func generateDayGroupingPrompt(candidates []*types.POI, prefs types.UserPreferences) string {
	var poiLines strings.Builder
	for _, poi := range candidates {
		fmt.Fprintf(&poiLines, "- %s (%s)", poi.Name, poi.Region)
		if matched := poi.MatchingInterests(prefs.Interests); len(matched) > 0 {
			fmt.Fprintf(&poiLines, " [Matches interests: %s]", strings.Join(matched, ", "))
		}
		poiLines.WriteString("\n")
	}

	return fmt.Sprintf(`
        Create a %[1]d-day travel plan with EXACTLY %[2]d activities per day.

        User interests: %[3]s
        Transportation: %[4]s
        Pace: %[5]s

        Requirements:
        1. MUST include EXACTLY %[2]d activities per day
        2. MUST be organized into EXACTLY %[1]d days
        3. Prioritize POIs that match user interests
        4. Consider geographical proximity for efficient travel
        5. Each day should be logistically feasible given the transportation method

        Available Points of Interest:
%[6]s
        Format your response as:
        Day 1:
        - [POI name exactly as provided]
        - [POI name exactly as provided]
        (etc. for each day)
        `,
		prefs.TripDuration, prefs.ActivitiesPerDay, strings.Join(prefs.Interests, ", "),
		prefs.Transportation, prefs.Pace, poiLines.String())
}

func generatePOIDescriptionPrompt(poi *types.POI) string {
	return fmt.Sprintf(`
        Create a brief, engaging description for this point of interest:
        Name: %s
        Location: %s, %s, Ireland
        Categories: %s

        Include:
        1. What makes this place special
        2. What visitors can see or do
        3. Any relevant historical or cultural significance
        4. A practical tip for visitors

        Keep the description concise but informative.
        `, poi.Name, poi.Locality, poi.Region, poi.Tags)
}

func generateDaySummaryPrompt(pois []*types.POI) string {
	return fmt.Sprintf(
		"Create a brief summary for a day of travel visiting these locations: %s. Include travel tips and suggested timing.",
		strings.Join(poiNames(pois), ", "))
}

func generateTripSummaryPrompt(totalPOIs int, regions, categories []string, prefs types.UserPreferences) string {
	return fmt.Sprintf(`
        Create a brief summary of a %d-day trip to Ireland covering:
        - %d points of interest
        - Regions: %s
        - Categories: %s
        - Transportation: %s
        - Pace: %s

        Include highlights and what makes this itinerary special.
        `, prefs.TripDuration, totalPOIs, strings.Join(regions, ", "), strings.Join(categories, ", "),
		prefs.Transportation, prefs.Pace)
}

func generateTipsPrompt(prefs types.UserPreferences, poiCount int, regions []string) string {
	breaks := "no"
	if prefs.RequireBreaks {
		breaks = "yes"
	}
	return fmt.Sprintf(`
        Create travel tips for an itinerary with these details:
        - Duration: %d days
        - Number of locations: %d
        - Regions covered: %s
        - Transportation: %s
        - Pace: %s
        - Budget: %s
        - Breaks between activities: %s
        - Special interests: %s

        Include:
        1. General travel tips
        2. Logistics advice
        3. Time management suggestions
        4. Weather and packing recommendations
        `, prefs.TripDuration, poiCount, strings.Join(regions, ", "), prefs.Transportation, prefs.Pace,
		prefs.Budget, breaks, strings.Join(prefs.Interests, ", "))
}

func poiNames(pois []*types.POI) []string {
	names := make([]string, 0, len(pois))
	for _, poi := range pois {
		names = append(names, poi.Name)
	}
	return names
}
