package types

import "github.com/google/uuid"

// OrganizedCatalogue is the filtered catalogue grouped by region and by tag.
// A POI appears under every tag it carries.
type OrganizedCatalogue struct {
	TotalCount     int               `json:"total_count"`
	Regions        []string          `json:"regions"`
	ByRegion       map[string][]*POI `json:"by_region"`
	ByCategory     map[string][]*POI `json:"by_category"`
	RegionCounts   map[string]int    `json:"region_counts"`
	CategoryCounts map[string]int    `json:"category_counts"`
}

// AllPOIs flattens the region groups in first-seen region order.
func (c *OrganizedCatalogue) AllPOIs() []*POI {
	all := make([]*POI, 0, c.TotalCount)
	for _, region := range c.Regions {
		all = append(all, c.ByRegion[region]...)
	}
	return all
}

// OrganizedDays holds one bucket of POI references per day.
type OrganizedDays [][]*POI

// TotalPOIs counts POI instances across all days, duplicates included.
func (d OrganizedDays) TotalPOIs() int {
	total := 0
	for _, day := range d {
		total += len(day)
	}
	return total
}

type Activity struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Timing      string `json:"timing"`
}

type DayPlan struct {
	DayNumber  int        `json:"day_number"`
	DaySummary string     `json:"day_summary"`
	Activities []Activity `json:"activities"`
}

type InterestsUsage struct {
	Used       int     `json:"used"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AccuracyReport keys its maps by interest; Interests keeps the requested order.
type AccuracyReport struct {
	Interests           []string           `json:"interests"`
	OverallAccuracy     float64            `json:"overall_accuracy"`
	AccuracyPerInterest map[string]float64 `json:"accuracy_per_interest"`
	TotalPOIs           int                `json:"total_pois"`
	MatchesFound        int                `json:"matches_found"`
	InterestMatches     map[string]int     `json:"interest_matches"`
	InterestsUsage      InterestsUsage     `json:"interests_usage"`
}

// TravelPlan is the document written at the end of a run.
type TravelPlan struct {
	ID                uuid.UUID      `json:"-"`
	TripSummary       string         `json:"trip_summary"`
	GeneralTips       string         `json:"general_tips"`
	InterestsAccuracy AccuracyReport `json:"interests_accuracy"`
	Days              []DayPlan      `json:"days"`
	PosterURL         string         `json:"poster_url,omitempty"`
}
