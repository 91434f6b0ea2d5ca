package catalogue

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func samplePOIs() []*types.POI {
	return []*types.POI{
		{Name: "Blarney Castle", Region: "Cork", Locality: "Blarney", Tags: "Historic Houses and Castle,Gardens"},
		{Name: "Muckross House", Region: "Kerry", Locality: "Killarney", Tags: "Historic Houses and Castle,Museums and Attraction"},
		{Name: "Inch Beach", Region: "Kerry", Locality: "Inch", Tags: "Beach,Swimming"},
		{Name: "Trinity College", Region: "Dublin", Locality: "Dublin 2", Tags: "Learning,Museums and Attraction,Literary Ireland"},
		{Name: "Untagged Place", Region: "Dublin", Locality: "Dublin 1", Tags: ""},
	}
}

func TestFilterAndOrganize(t *testing.T) {
	t.Run("empty region list passes every region", func(t *testing.T) {
		prefs := types.DefaultUserPreferences()
		prefs.Interests = []string{"castle", "museums"}

		got := FilterAndOrganize(samplePOIs(), prefs)

		assert.Equal(t, 3, got.TotalCount)
		assert.Equal(t, []string{"Cork", "Kerry", "Dublin"}, got.Regions)
		assert.Equal(t, map[string]int{"Cork": 1, "Kerry": 1, "Dublin": 1}, got.RegionCounts)
		assert.Equal(t, 2, got.CategoryCounts["Historic Houses and Castle"])
		assert.Equal(t, 2, got.CategoryCounts["Museums and Attraction"])
		assert.Len(t, got.ByCategory["Museums and Attraction"], 2)
		assert.Equal(t, []string{"Blarney Castle", "Muckross House", "Trinity College"}, names(got.AllPOIs()))
	})

	t.Run("region allow list is exact", func(t *testing.T) {
		prefs := types.DefaultUserPreferences()
		prefs.Interests = []string{"Castle"}
		prefs.Regions = []string{"Kerry", "kerry "}

		got := FilterAndOrganize(samplePOIs(), prefs)

		assert.Equal(t, []string{"Muckross House"}, names(got.AllPOIs()))
	})

	t.Run("interest filter drops untagged and unmatched POIs", func(t *testing.T) {
		prefs := types.DefaultUserPreferences()
		prefs.Interests = []string{"Beach"}

		got := FilterAndOrganize(samplePOIs(), prefs)

		assert.Equal(t, []string{"Inch Beach"}, names(got.AllPOIs()))
	})

	t.Run("special requirements narrow further", func(t *testing.T) {
		prefs := types.DefaultUserPreferences()
		prefs.Interests = []string{"Castle", "Museums"}
		prefs.SpecialRequirements = []string{"garden"}

		got := FilterAndOrganize(samplePOIs(), prefs)

		assert.Equal(t, []string{"Blarney Castle"}, names(got.AllPOIs()))
	})

	t.Run("pointers are shared across groups", func(t *testing.T) {
		prefs := types.DefaultUserPreferences()
		prefs.Interests = []string{"Castle"}

		got := FilterAndOrganize(samplePOIs(), prefs)

		assert.Same(t, got.ByRegion["Cork"][0], got.ByCategory["Gardens"][0])
	})
}

func names(pois []*types.POI) []string {
	out := make([]string, 0, len(pois))
	for _, p := range pois {
		out = append(out, p.Name)
	}
	return out
}

func TestFileRepository_LoadPOIs(t *testing.T) {
	dir := t.TempDir()

	t.Run("decodes records with mixed field types", func(t *testing.T) {
		path := filepath.Join(dir, "pois.json")
		content := `[
			{"Name": "Blarney Castle", "AddressRegion": "Cork", "AddressLocality": "Blarney",
			 "Tags": "Castle,Gardens", "Latitude": 51.929, "Longitude": "-8.570", "Telephone": 353214385252, "Url": "https://blarneycastle.ie"},
			{"Name": "Inch Beach", "AddressRegion": "Kerry", "AddressLocality": "Inch", "Tags": "Beach",
			 "Latitude": "", "Longitude": null}
		]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		pois, err := NewFileRepository(path, testLogger()).LoadPOIs(context.Background())
		require.NoError(t, err)
		require.Len(t, pois, 2)

		assert.Equal(t, "Blarney Castle", pois[0].Name)
		assert.InDelta(t, 51.929, pois[0].Latitude, 1e-9)
		assert.InDelta(t, -8.570, pois[0].Longitude, 1e-9)
		assert.Equal(t, "353214385252", pois[0].Telephone)
		assert.Equal(t, types.POIIDFromName("Blarney Castle"), pois[0].ID)
		assert.Zero(t, pois[1].Latitude)
	})

	t.Run("missing file is a data load error", func(t *testing.T) {
		_, err := NewFileRepository(filepath.Join(dir, "missing.json"), testLogger()).LoadPOIs(context.Background())
		assert.ErrorIs(t, err, types.ErrDataLoad)
	})

	t.Run("malformed content is a data load error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Name": "not an array"`), 0o600))

		_, err := NewFileRepository(path, testLogger()).LoadPOIs(context.Background())
		var loadErr *types.DataLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, path, loadErr.Source)
	})

	t.Run("nameless record is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "nameless.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"Tags": "Beach"}]`), 0o600))

		_, err := NewFileRepository(path, testLogger()).LoadPOIs(context.Background())
		assert.ErrorIs(t, err, types.ErrDataLoad)
	})
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadPOIs(ctx context.Context) ([]*types.POI, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.POI), args.Error(1)
}

func setupCatalogueServiceTest() (*ServiceImpl, *MockRepository) {
	mockRepo := new(MockRepository)
	return NewServiceImpl(mockRepo, testLogger()), mockRepo
}

func TestServiceImpl_FilterAndOrganize(t *testing.T) {
	ctx := context.Background()
	prefs := types.DefaultUserPreferences()
	prefs.Interests = []string{"Museums"}

	t.Run("success", func(t *testing.T) {
		service, mockRepo := setupCatalogueServiceTest()
		mockRepo.On("LoadPOIs", mock.Anything).Return(samplePOIs(), nil).Once()

		got, err := service.FilterAndOrganize(ctx, prefs)
		require.NoError(t, err)
		assert.Equal(t, 2, got.TotalCount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("load failure is returned as is", func(t *testing.T) {
		service, mockRepo := setupCatalogueServiceTest()
		loadErr := &types.DataLoadError{Source: "pois.json", Err: errors.New("boom")}
		mockRepo.On("LoadPOIs", mock.Anything).Return(nil, loadErr).Once()

		got, err := service.FilterAndOrganize(ctx, prefs)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, types.ErrDataLoad)
		mockRepo.AssertExpectations(t)
	})
}
