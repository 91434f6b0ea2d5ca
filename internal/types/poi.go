package types

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	earthRadiusKm         = 6371.0
	defaultVisitMinutes   = 120
	UncategorizedCategory = "Uncategorized"
)

// poiNamespace scopes the deterministic ids given to POIs that were not loaded from the database.
var poiNamespace = uuid.MustParse("6f1c6c0e-4f4e-4a55-9c1e-0a8f3b2d7e11")

// POI is a single visitable place from the catalogue. Values are never mutated after loading,
// and the pipeline passes them around by pointer so that a POI keeps its identity across days.
type POI struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Locality  string    `json:"locality"`
	Tags      string    `json:"tags"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Telephone string    `json:"telephone,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// POIIDFromName derives a stable id for a POI from its name.
func POIIDFromName(name string) uuid.UUID {
	return uuid.NewSHA1(poiNamespace, []byte(strings.ToLower(strings.TrimSpace(name))))
}

// TagList splits the comma separated tag string, trimming whitespace and dropping empties.
func (p *POI) TagList() []string {
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Category is the first tag of the POI.
func (p *POI) Category() string {
	tags := p.TagList()
	if len(tags) == 0 {
		return UncategorizedCategory
	}
	return tags[0]
}

// Location renders "Locality, Region".
func (p *POI) Location() string {
	return p.Locality + ", " + p.Region
}

// MatchesInterest reports whether the interest is a case-insensitive substring of any tag.
func (p *POI) MatchesInterest(interest string) bool {
	needle := strings.ToLower(strings.TrimSpace(interest))
	if needle == "" {
		return false
	}
	for _, tag := range p.TagList() {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether at least one of the interests matches a tag.
func (p *POI) MatchesAny(interests []string) bool {
	for _, interest := range interests {
		if p.MatchesInterest(interest) {
			return true
		}
	}
	return false
}

// MatchingInterests returns the interests that match, in the order given.
func (p *POI) MatchingInterests(interests []string) []string {
	var matched []string
	for _, interest := range interests {
		if p.MatchesInterest(interest) {
			matched = append(matched, interest)
		}
	}
	return matched
}

// InterestScore counts how many interests match the POI.
func (p *POI) InterestScore(interests []string) int {
	return len(p.MatchingInterests(interests))
}

// DistanceTo returns the great-circle distance in kilometres.
func (p *POI) DistanceTo(other *POI) float64 {
	return HaversineKm(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}

// HaversineKm calculates the distance between two coordinates using the Haversine formula.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// visitMinutesByKeyword is checked in order; the first keyword found in the category wins.
var visitMinutesByKeyword = []struct {
	keyword string
	minutes int
}{
	{"Museum", 180},
	{"Castle", 120},
	{"Park", 90},
	{"Church", 45},
	{"Gallery", 60},
	{"Garden", 60},
	{"Historic", 90},
	{"Walking", 120},
}

// EstimatedVisitMinutes guesses how long a visit takes from the POI category.
// Scheduling uses a fixed slot length instead; this value is informational.
func (p *POI) EstimatedVisitMinutes() int {
	category := strings.ToLower(p.Category())
	for _, entry := range visitMinutesByKeyword {
		if strings.Contains(category, strings.ToLower(entry.keyword)) {
			return entry.minutes
		}
	}
	return defaultVisitMinutes
}
