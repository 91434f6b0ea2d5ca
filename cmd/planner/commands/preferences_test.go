package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

func parsePlanFlags(t *testing.T, args ...string) (*planOptions, types.UserPreferences, error) {
	t.Helper()
	opts := &planOptions{}
	flags := pflag.NewFlagSet("plan", pflag.ContinueOnError)
	opts.bind(flags)
	require.NoError(t, flags.Parse(args))
	prefs, err := opts.preferences(flags)
	return opts, prefs, err
}

func TestPlanOptions_Preferences(t *testing.T) {
	t.Run("flags override defaults", func(t *testing.T) {
		_, prefs, err := parsePlanFlags(t,
			"--interests", "castle, museums", "--days", "2", "--activities", "4",
			"--pace", "FAST", "--regions", "Kerry,Cork", "--start", "10:30", "--no-breaks")
		require.NoError(t, err)

		assert.Equal(t, []string{"castle", "museums"}, prefs.Interests)
		assert.Equal(t, 2, prefs.TripDuration)
		assert.Equal(t, 4, prefs.ActivitiesPerDay)
		assert.Equal(t, types.PaceFast, prefs.Pace)
		assert.Equal(t, []string{"Kerry", "Cork"}, prefs.Regions)
		assert.Equal(t, "10:30", prefs.PreferredStartTime)
		assert.False(t, prefs.RequireBreaks)
		assert.Equal(t, types.TransportationCar, prefs.Transportation)
	})

	t.Run("interest numbers are added to named interests", func(t *testing.T) {
		_, prefs, err := parsePlanFlags(t, "--interests", "Castle", "--interest-numbers", "1,9-10")
		require.NoError(t, err)
		assert.Equal(t, []string{"Castle", "Walking", "Historic Houses and Castle"}, prefs.Interests)
	})

	t.Run("bad interest number", func(t *testing.T) {
		_, _, err := parsePlanFlags(t, "--interest-numbers", "99")
		assert.ErrorIs(t, err, types.ErrInvalidPreferences)
	})

	t.Run("no interests fails validation", func(t *testing.T) {
		_, _, err := parsePlanFlags(t, "--days", "2")
		assert.ErrorIs(t, err, types.ErrInvalidPreferences)
	})

	t.Run("yaml file then flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trip.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
interests: [Beach, Walking]
trip_duration: 5
activities_per_day: 2
transportation: public
regions: [Kerry]
`), 0o644))

		_, prefs, err := parsePlanFlags(t, "--preferences", path, "--days", "4")
		require.NoError(t, err)
		assert.Equal(t, []string{"Beach", "Walking"}, prefs.Interests)
		assert.Equal(t, 4, prefs.TripDuration)
		assert.Equal(t, 2, prefs.ActivitiesPerDay)
		assert.Equal(t, types.TransportationPublic, prefs.Transportation)
		assert.Equal(t, []string{"Kerry"}, prefs.Regions)
		assert.Equal(t, types.DefaultStartTime, prefs.PreferredStartTime)
	})

	t.Run("unreadable yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trip.yml")
		require.NoError(t, os.WriteFile(path, []byte("interests: [unclosed"), 0o644))
		_, _, err := parsePlanFlags(t, "--preferences", path)
		assert.ErrorContains(t, err, "parsing preferences")
	})
}
