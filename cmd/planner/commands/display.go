package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.FgYellow)
	faint   = color.New(color.Faint)
	good    = color.New(color.FgGreen)
)

func printCatalogueSummary(w io.Writer, organized *types.OrganizedCatalogue) {
	heading.Fprintf(w, "Found %d matching places\n", organized.TotalCount)
	for _, region := range organized.Regions {
		fmt.Fprintf(w, "  %-12s %d\n", region, organized.RegionCounts[region])
	}

	categories := make([]string, 0, len(organized.CategoryCounts))
	for category := range organized.CategoryCounts {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		ci, cj := organized.CategoryCounts[categories[i]], organized.CategoryCounts[categories[j]]
		if ci != cj {
			return ci > cj
		}
		return categories[i] < categories[j]
	})
	if len(categories) > 8 {
		categories = categories[:8]
	}
	for _, category := range categories {
		faint.Fprintf(w, "    %s (%d)\n", category, organized.CategoryCounts[category])
	}
	fmt.Fprintln(w)
}

// printPlan lists per-interest accuracy in the order the interests were requested.
func printPlan(w io.Writer, plan *types.TravelPlan) {
	heading.Fprintln(w, "Trip summary")
	fmt.Fprintln(w, plan.TripSummary)
	fmt.Fprintln(w)

	for _, day := range plan.Days {
		heading.Fprintf(w, "Day %d\n", day.DayNumber)
		faint.Fprintln(w, day.DaySummary)
		for _, activity := range day.Activities {
			label.Fprintf(w, "  %s  ", activity.Timing)
			fmt.Fprintf(w, "%s (%s)\n", activity.Name, activity.Location)
			fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(activity.Description, "\n", "\n    "))
		}
		fmt.Fprintln(w)
	}

	heading.Fprintln(w, "Tips")
	fmt.Fprintln(w, plan.GeneralTips)
	fmt.Fprintln(w)

	printAccuracy(w, plan.InterestsAccuracy)
}

func printAccuracy(w io.Writer, report types.AccuracyReport) {
	heading.Fprintln(w, "Interest coverage")
	good.Fprintf(w, "  overall %.2f%%", report.OverallAccuracy)
	fmt.Fprintf(w, " over %d places, %d/%d interests used\n",
		report.TotalPOIs, report.InterestsUsage.Used, report.InterestsUsage.Total)

	for _, interest := range report.Interests {
		fmt.Fprintf(w, "  %-24s %6.2f%%  (%d)\n", interest, report.AccuracyPerInterest[interest], report.InterestMatches[interest])
	}
}

const tagColumns = 3

func printTags(w io.Writer) {
	heading.Fprintln(w, "Interest tags")
	rows := (len(types.AvailableTags) + tagColumns - 1) / tagColumns
	for row := range rows {
		for col := range tagColumns {
			i := col*rows + row
			if i >= len(types.AvailableTags) {
				break
			}
			label.Fprintf(w, "%3d ", i+1)
			fmt.Fprintf(w, "%-30s", types.AvailableTags[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "Regions")
	fmt.Fprintln(w, strings.Join(types.KnownRegions, ", "))
}

func printPOIs(w io.Writer, organized *types.OrganizedCatalogue) {
	for _, region := range organized.Regions {
		heading.Fprintf(w, "%s (%d)\n", region, organized.RegionCounts[region])
		for _, poi := range organized.ByRegion[region] {
			fmt.Fprintf(w, "  %s", poi.Name)
			faint.Fprintf(w, "  %s, ~%d min\n", poi.Category(), poi.EstimatedVisitMinutes())
		}
	}
}
