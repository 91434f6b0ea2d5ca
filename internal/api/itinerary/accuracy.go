package itinerary

import (
	"math"
	"slices"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

// CalculateInterestsAccuracy measures how well the organized days cover the requested interests.
// Every POI instance counts, so a POI placed on two days is counted twice.
func CalculateInterestsAccuracy(days types.OrganizedDays, interests []string) types.AccuracyReport {
	interestMatches := make(map[string]int, len(interests))
	for _, interest := range interests {
		interestMatches[interest] = 0
	}

	totalPOIs := 0
	for _, day := range days {
		for _, poi := range day {
			totalPOIs++
			for _, interest := range interests {
				if poi.MatchesInterest(interest) {
					interestMatches[interest]++
				}
			}
		}
	}

	accuracyPerInterest := make(map[string]float64, len(interests))
	totalMatches, used := 0, 0
	for _, interest := range interests {
		matches := interestMatches[interest]
		accuracyPerInterest[interest] = round2(percentage(matches, totalPOIs))
		totalMatches += matches
		if matches > 0 {
			used++
		}
	}

	return types.AccuracyReport{
		Interests:           slices.Clone(interests),
		OverallAccuracy:     round2(percentage(totalMatches, totalPOIs*len(interests))),
		AccuracyPerInterest: accuracyPerInterest,
		TotalPOIs:           totalPOIs,
		MatchesFound:        totalMatches,
		InterestMatches:     interestMatches,
		InterestsUsage: types.InterestsUsage{
			Used:       used,
			Total:      len(interests),
			Percentage: round2(percentage(used, len(interests))),
		},
	}
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
