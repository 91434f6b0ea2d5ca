package catalogue

import (
	"slices"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

// FilterAndOrganize applies the region, interest and special-requirement filters and groups the survivors.
//
// The region filter is skipped when prefs.Regions is empty. The interest filter always applies, so a POI
// without any matching tag is dropped. Special requirements, when given, must also match at least one tag.
func FilterAndOrganize(pois []*types.POI, prefs types.UserPreferences) *types.OrganizedCatalogue {
	out := &types.OrganizedCatalogue{
		ByRegion:       make(map[string][]*types.POI),
		ByCategory:     make(map[string][]*types.POI),
		RegionCounts:   make(map[string]int),
		CategoryCounts: make(map[string]int),
	}

	for _, poi := range pois {
		if !keepPOI(poi, prefs) {
			continue
		}

		if _, seen := out.ByRegion[poi.Region]; !seen {
			out.Regions = append(out.Regions, poi.Region)
		}
		out.ByRegion[poi.Region] = append(out.ByRegion[poi.Region], poi)
		out.RegionCounts[poi.Region]++

		for _, tag := range poi.TagList() {
			out.ByCategory[tag] = append(out.ByCategory[tag], poi)
			out.CategoryCounts[tag]++
		}
		out.TotalCount++
	}
	return out
}

func keepPOI(poi *types.POI, prefs types.UserPreferences) bool {
	if len(prefs.Regions) > 0 && !slices.Contains(prefs.Regions, poi.Region) {
		return false
	}
	if !poi.MatchesAny(prefs.Interests) {
		return false
	}
	if len(prefs.SpecialRequirements) > 0 && !poi.MatchesAny(prefs.SpecialRequirements) {
		return false
	}
	return true
}
