package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

type planOptions struct {
	preferencesFile string
	interests       []string
	interestNumbers string
	days            int
	activities      int
	pace            string
	transport       string
	budget          string
	regions         []string
	special         []string
	start           string
	end             string
	noBreaks        bool
	outputDir       string
	outputFile      string
	poster          bool
	posterFile      string
}

func (o *planOptions) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&o.preferencesFile, "preferences", "p", "", "YAML file with travel preferences")
	flags.StringSliceVarP(&o.interests, "interests", "i", nil, "interests matched against POI tags, comma separated")
	flags.StringVar(&o.interestNumbers, "interest-numbers", "", `interest tag numbers from "planner tags", e.g. 1,9-11`)
	flags.IntVarP(&o.days, "days", "d", types.DefaultTripDuration, "trip duration in days (1-14)")
	flags.IntVarP(&o.activities, "activities", "a", types.DefaultActivitiesPerDay, "activities per day (1-5)")
	flags.StringVar(&o.pace, "pace", string(types.PaceModerate), "slow, moderate, or fast")
	flags.StringVar(&o.transport, "transport", string(types.TransportationCar), "car, public, or walking")
	flags.StringVar(&o.budget, "budget", string(types.BudgetModerate), "low, moderate, or high")
	flags.StringSliceVarP(&o.regions, "regions", "r", nil, "restrict to these regions, comma separated")
	flags.StringSliceVar(&o.special, "special", nil, "special requirements, each must appear in a POI's tags")
	flags.StringVar(&o.start, "start", types.DefaultStartTime, "preferred start time HH:MM")
	flags.StringVar(&o.end, "end", types.DefaultEndTime, "preferred end time HH:MM")
	flags.BoolVar(&o.noBreaks, "no-breaks", false, "do not ask for breaks in the tips")
	flags.StringVarP(&o.outputDir, "output-dir", "o", "", "directory for the plan JSON (overrides planner.output_dir)")
	flags.StringVar(&o.outputFile, "output-file", "", "plan file name (overrides planner.output_file)")
	flags.BoolVar(&o.poster, "poster", false, "generate a travel poster image")
	flags.StringVar(&o.posterFile, "poster-file", "", "download the poster to this path")
}

// preferences layers defaults, then the YAML file, then any flag set on the command line.
func (o *planOptions) preferences(flags *pflag.FlagSet) (types.UserPreferences, error) {
	prefs := types.DefaultUserPreferences()

	if o.preferencesFile != "" {
		raw, err := os.ReadFile(o.preferencesFile)
		if err != nil {
			return prefs, fmt.Errorf("reading preferences: %w", err)
		}
		if err := yaml.Unmarshal(raw, &prefs); err != nil {
			return prefs, fmt.Errorf("parsing preferences %s: %w", o.preferencesFile, err)
		}
	}

	if flags.Changed("interests") {
		prefs.Interests = trimAll(o.interests)
	}
	if flags.Changed("interest-numbers") {
		selected, err := types.SelectTags(o.interestNumbers)
		if err != nil {
			return prefs, err
		}
		prefs.Interests = appendMissing(prefs.Interests, selected)
	}
	if flags.Changed("days") {
		prefs.TripDuration = o.days
	}
	if flags.Changed("activities") {
		prefs.ActivitiesPerDay = o.activities
	}
	if flags.Changed("pace") {
		prefs.Pace = types.Pace(strings.ToLower(o.pace))
	}
	if flags.Changed("transport") {
		prefs.Transportation = types.Transportation(strings.ToLower(o.transport))
	}
	if flags.Changed("budget") {
		prefs.Budget = types.BudgetLevel(strings.ToLower(o.budget))
	}
	if flags.Changed("regions") {
		prefs.Regions = trimAll(o.regions)
	}
	if flags.Changed("special") {
		prefs.SpecialRequirements = trimAll(o.special)
	}
	if flags.Changed("start") {
		prefs.PreferredStartTime = o.start
	}
	if flags.Changed("end") {
		prefs.PreferredEndTime = o.end
	}
	if flags.Changed("no-breaks") {
		prefs.RequireBreaks = !o.noBreaks
	}

	prefs = prefs.Normalized()
	return prefs, prefs.Validate()
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func appendMissing(dst, values []string) []string {
	for _, v := range values {
		found := false
		for _, existing := range dst {
			if strings.EqualFold(existing, v) {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
