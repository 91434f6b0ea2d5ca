package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Pace string

const (
	PaceSlow     Pace = "slow"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
)

type Transportation string

const (
	TransportationCar     Transportation = "car"
	TransportationPublic  Transportation = "public"
	TransportationWalking Transportation = "walking"
)

type BudgetLevel string

const (
	BudgetLow      BudgetLevel = "low"
	BudgetModerate BudgetLevel = "moderate"
	BudgetHigh     BudgetLevel = "high"
)

const (
	DefaultTripDuration     = 3
	DefaultActivitiesPerDay = 3
	DefaultStartTime        = "09:00"
	DefaultEndTime          = "18:00"

	MinTripDuration     = 1
	MaxTripDuration     = 14
	MinActivitiesPerDay = 1
	MaxActivitiesPerDay = 5

	ClockLayout = "15:04"
)

// UserPreferences drives a single planning run.
type UserPreferences struct {
	Interests           []string       `json:"interests" yaml:"interests"`
	TripDuration        int            `json:"trip_duration" yaml:"trip_duration"`
	ActivitiesPerDay    int            `json:"activities_per_day" yaml:"activities_per_day"`
	Pace                Pace           `json:"pace" yaml:"pace"`
	Transportation      Transportation `json:"transportation" yaml:"transportation"`
	Budget              BudgetLevel    `json:"budget" yaml:"budget"`
	Regions             []string       `json:"regions,omitempty" yaml:"regions,omitempty"`
	SpecialRequirements []string       `json:"special_requirements,omitempty" yaml:"special_requirements,omitempty"`
	PreferredStartTime  string         `json:"preferred_start_time" yaml:"preferred_start_time"`
	PreferredEndTime    string         `json:"preferred_end_time" yaml:"preferred_end_time"`
	RequireBreaks       bool           `json:"require_breaks" yaml:"require_breaks"`
}

// DefaultUserPreferences returns preferences with every optional field set to its default.
// Decode user input on top of this value so omitted fields keep their defaults.
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		TripDuration:       DefaultTripDuration,
		ActivitiesPerDay:   DefaultActivitiesPerDay,
		Pace:               PaceModerate,
		Transportation:     TransportationCar,
		Budget:             BudgetModerate,
		PreferredStartTime: DefaultStartTime,
		PreferredEndTime:   DefaultEndTime,
		RequireBreaks:      true,
	}
}

// TotalActivities is the number of POI slots in the whole trip.
func (p UserPreferences) TotalActivities() int {
	return p.TripDuration * p.ActivitiesPerDay
}

// Normalized returns a copy with surrounding whitespace trimmed from the list fields,
// so that matching and reporting key on the same interest names.
func (p UserPreferences) Normalized() UserPreferences {
	p.Interests = trimmed(p.Interests)
	p.Regions = trimmed(p.Regions)
	p.SpecialRequirements = trimmed(p.SpecialRequirements)
	return p
}

func trimmed(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// Validate checks every field and returns a *ConfigError for the first invalid one.
// Values are never clamped into range.
func (p UserPreferences) Validate() error {
	if len(p.Interests) == 0 {
		return &ConfigError{Field: "interests", Reason: "at least one interest must be specified"}
	}
	seen := make(map[string]struct{}, len(p.Interests))
	for _, interest := range p.Interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" {
			return &ConfigError{Field: "interests", Reason: "interests must not be blank"}
		}
		if _, dup := seen[key]; dup {
			return &ConfigError{Field: "interests", Reason: fmt.Sprintf("interest %q is listed more than once", interest)}
		}
		seen[key] = struct{}{}
	}

	if p.TripDuration < MinTripDuration || p.TripDuration > MaxTripDuration {
		return &ConfigError{
			Field:  "trip_duration",
			Reason: fmt.Sprintf("must be between %d and %d days, got %d", MinTripDuration, MaxTripDuration, p.TripDuration),
		}
	}
	if p.ActivitiesPerDay < MinActivitiesPerDay || p.ActivitiesPerDay > MaxActivitiesPerDay {
		return &ConfigError{
			Field:  "activities_per_day",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinActivitiesPerDay, MaxActivitiesPerDay, p.ActivitiesPerDay),
		}
	}
	if !slices.Contains([]Pace{PaceSlow, PaceModerate, PaceFast}, p.Pace) {
		return &ConfigError{Field: "pace", Reason: fmt.Sprintf("must be slow, moderate, or fast, got %q", p.Pace)}
	}
	if !slices.Contains([]Transportation{TransportationCar, TransportationPublic, TransportationWalking}, p.Transportation) {
		return &ConfigError{Field: "transportation", Reason: fmt.Sprintf("must be car, public, or walking, got %q", p.Transportation)}
	}
	if !slices.Contains([]BudgetLevel{BudgetLow, BudgetModerate, BudgetHigh}, p.Budget) {
		return &ConfigError{Field: "budget", Reason: fmt.Sprintf("must be low, moderate, or high, got %q", p.Budget)}
	}
	if _, err := time.Parse(ClockLayout, p.PreferredStartTime); err != nil {
		return &ConfigError{Field: "preferred_start_time", Reason: fmt.Sprintf("must be HH:MM, got %q", p.PreferredStartTime)}
	}
	if _, err := time.Parse(ClockLayout, p.PreferredEndTime); err != nil {
		return &ConfigError{Field: "preferred_end_time", Reason: fmt.Sprintf("must be HH:MM, got %q", p.PreferredEndTime)}
	}
	return nil
}
