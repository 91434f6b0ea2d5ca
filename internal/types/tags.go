package types

import (
	"fmt"
	"strconv"
	"strings"
)

// AvailableTags are the interests offered to travellers. They mirror the tag vocabulary of the catalogue.
var AvailableTags = []string{
	"Walking", "Forest Park", "Park and Forest Walk", "National Park",
	"National and Forest Park", "Public Park", "Nature and Wildlife",
	"Natural Landscape", "Castle", "Historic Houses and Castle",
	"Ruins", "Museums and Attraction", "Learning", "Movies",
	"Cinema", "Venue", "Activity Operator", "Art Gallery",
	"Music", "Literary Ireland", "Church Abbey", "Monastery",
	"Churches", "Abbeys and Monastery", "Public Sculpture",
	"Bird Watching", "Photography", "Transport", "Coach",
	"Road", "Food and Drink", "Restaurant", "Food Shops",
	"Shopping", "Gardens", "Garden", "Craft", "Tracing Your Ancestors",
	"Embarkation Point", "Island", "Offshore Island", "Boat",
	"Tour", "Gaa", "Stadium", "Sports Venue", "Sports Venues",
	"Zoos and Aquarium", "Swimming", "Swimming Pools and Water Park",
	"Beach", "Fishing", "Angling", "Horse Riding", "Equestrian",
	"Kayaking", "Cruising", "Visitor Farm", "Agriculture",
	"Traditionally Irish", "Discovery Point", "River",
}

var KnownRegions = []string{"Dublin", "Kerry", "Galway", "Cork", "Clare", "Donegal", "Wicklow"}

// SelectTags resolves a selection such as "1,5,10-12" of 1-based AvailableTags numbers.
// The result follows AvailableTags order and contains each tag once.
func SelectTags(selection string) ([]string, error) {
	chosen := make(map[int]bool)
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		start, end := part, part
		if before, after, found := strings.Cut(part, "-"); found {
			start, end = strings.TrimSpace(before), strings.TrimSpace(after)
		}
		from, err := strconv.Atoi(start)
		if err != nil {
			return nil, &ConfigError{Field: "interests", Reason: fmt.Sprintf("%q is not a tag number", part)}
		}
		to, err := strconv.Atoi(end)
		if err != nil {
			return nil, &ConfigError{Field: "interests", Reason: fmt.Sprintf("%q is not a tag number", part)}
		}
		if from < 1 || to > len(AvailableTags) || from > to {
			return nil, &ConfigError{
				Field:  "interests",
				Reason: fmt.Sprintf("%q is out of range 1-%d", part, len(AvailableTags)),
			}
		}
		for i := from; i <= to; i++ {
			chosen[i-1] = true
		}
	}
	if len(chosen) == 0 {
		return nil, &ConfigError{Field: "interests", Reason: "select at least one interest"}
	}

	tags := make([]string, 0, len(chosen))
	for i, tag := range AvailableTags {
		if chosen[i] {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
