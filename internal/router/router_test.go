package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	appMiddleware "github.com/FACorreiaa/go-ireland-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/catalogue"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/tags"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

const catalogueFixture = `[
  {"Name": "Blarney Castle", "AddressRegion": "Cork", "AddressLocality": "Blarney", "Tags": "Historic Houses and Castle,Gardens", "Latitude": 51.929, "Longitude": -8.571},
  {"Name": "Cork City Gaol", "AddressRegion": "Cork", "AddressLocality": "Cork", "Tags": "Museums and Attraction", "Latitude": "51.899", "Longitude": "-8.497"},
  {"Name": "Muckross House", "AddressRegion": "Kerry", "AddressLocality": "Killarney", "Tags": "Historic Houses and Castle,Museums and Attraction", "Latitude": 52.009, "Longitude": -9.503},
  {"Name": "Inch Beach", "AddressRegion": "Kerry", "AddressLocality": "Inch", "Tags": "Beach", "Latitude": 52.136, "Longitude": -9.977}
]`

// cannedGateway answers every prompt with the same text.
type cannedGateway struct{ reply string }

func (g cannedGateway) Generate(context.Context, string, string) string { return g.reply }

type RouterTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *http.Client
	secret []byte
}

func (s *RouterTestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	path := filepath.Join(s.T().TempDir(), "pois.json")
	s.Require().NoError(os.WriteFile(path, []byte(catalogueFixture), 0o644))

	catalogueService := catalogue.NewServiceImpl(catalogue.NewFileRepository(path, logger), logger)
	gateway := cannedGateway{reply: "Error: provider unavailable"}
	itineraryService := itinerary.NewServiceImpl(
		catalogueService,
		itinerary.NewOrganizer(gateway, logger, nil),
		itinerary.NewDayPlanBuilder(gateway, logger, nil, 2),
		itinerary.NewSummaryWriter(gateway, logger, nil),
		logger, nil)

	s.secret = []byte("router-test-secret")
	r := SetupRouter(&Config{
		CatalogueHandler:       catalogue.NewHandler(catalogueService, logger),
		ItineraryHandler:       itinerary.NewHandler(itineraryService, logger),
		TagsHandler:            tags.NewHandler(logger),
		AuthenticateMiddleware: appMiddleware.Authenticate(s.secret, "", logger),
	})

	s.server = httptest.NewServer(r)
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *RouterTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *RouterTestSuite) token() string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "router-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(s.secret)
	s.Require().NoError(err)
	return signed
}

func (s *RouterTestSuite) do(method, path, body, token string) (*http.Response, []byte) {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, raw
}

func (s *RouterTestSuite) TestPing() {
	resp, body := s.do(http.MethodGet, "/ping", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pong", string(body))
}

func (s *RouterTestSuite) TestTagsArePublic() {
	resp, body := s.do(http.MethodGet, "/api/v1/tags", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var got struct {
		Tags    []string `json:"tags"`
		Regions []string `json:"regions"`
	}
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Len(got.Tags, len(types.AvailableTags))
	s.Contains(got.Regions, "Kerry")
}

func (s *RouterTestSuite) TestSearchPOIs() {
	resp, body := s.do(http.MethodGet, "/api/v1/pois?interests=castle&regions=Kerry", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var got struct {
		TotalCount int `json:"total_count"`
		POIs       []struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		} `json:"pois"`
	}
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal(1, got.TotalCount)
	s.Equal("Muckross House", got.POIs[0].Name)
	s.Equal("Historic Houses and Castle", got.POIs[0].Category)
}

func (s *RouterTestSuite) TestSearchPOIsRequiresInterests() {
	resp, _ := s.do(http.MethodGet, "/api/v1/pois", "", "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RouterTestSuite) TestItineraryRequiresToken() {
	resp, _ := s.do(http.MethodPost, "/api/v1/itineraries", `{"interests":["Castle"]}`, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterTestSuite) TestCreateItinerary() {
	body, err := json.Marshal(map[string]any{
		"interests":          []string{"Castle", "Museums"},
		"trip_duration":      2,
		"activities_per_day": 1,
	})
	s.Require().NoError(err)

	resp, raw := s.do(http.MethodPost, "/api/v1/itineraries", string(body), s.token())
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	var plan types.TravelPlan
	s.Require().NoError(json.NewDecoder(bytes.NewReader(raw)).Decode(&plan))
	s.Len(plan.Days, 2)
	for _, day := range plan.Days {
		s.Len(day.Activities, 1)
		s.Equal("09:00 - 11:00", day.Activities[0].Timing)
	}
	s.Equal(2, plan.InterestsAccuracy.TotalPOIs)
	s.Equal("Trip summary unavailable", plan.TripSummary)
}

func (s *RouterTestSuite) TestCreateItineraryRejectsInvalidPreferences() {
	resp, raw := s.do(http.MethodPost, "/api/v1/itineraries", `{"interests":["Castle"],"activities_per_day":9}`, s.token())
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(string(raw), "activities_per_day")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
