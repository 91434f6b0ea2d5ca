package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/container"
)

var PlanCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a travel plan and write it as JSON",
		Example: `  planner plan --interests castle,museums --days 3 --activities 3
  planner plan --interest-numbers 9-12 --regions Kerry,Cork --poster
  planner plan --preferences trip.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	prefs, err := opts.preferences(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := container.NewContainer(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	out := cmd.OutOrStdout()

	organized, err := c.CatalogueService.FilterAndOrganize(ctx, prefs)
	if err != nil {
		return err
	}
	printCatalogueSummary(out, organized)

	color.New(color.Faint).Fprintf(out, "Generating a %d day plan with %s...\n\n", prefs.TripDuration, cfg.LLM.Provider)
	plan, err := c.ItineraryService.GenerateTravelPlan(ctx, organized, prefs)
	if err != nil {
		return err
	}

	if opts.poster {
		attachPoster(ctx, cmd, c, opts.posterFile, plan.TripSummary, prefs.Interests, &plan.PosterURL)
	}

	dir := firstSet(opts.outputDir, cfg.Planner.OutputDir, itinerary.DefaultOutputDir)
	file := firstSet(opts.outputFile, cfg.Planner.OutputFile, itinerary.DefaultOutputFile)
	path, err := itinerary.SavePlanToFile(plan, dir, file)
	if err != nil {
		return err
	}

	printPlan(out, plan)
	fmt.Fprintln(out)
	color.New(color.FgGreen).Fprintf(out, "Plan saved to %s\n", path)
	return nil
}

// attachPoster is best effort; a failed poster never fails the plan.
func attachPoster(ctx context.Context, cmd *cobra.Command, c *container.Container, posterFile, summary string, interests []string, url *string) {
	if c.Poster == nil {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "Poster skipped: set llm.poster_api_key or OPENAI_API_KEY")
		return
	}
	posterURL, err := c.Poster.GeneratePoster(ctx, summary, interests)
	if err != nil {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Poster generation failed: %v\n", err)
		return
	}
	*url = posterURL
	if posterFile == "" {
		return
	}
	if err := c.Poster.DownloadPoster(ctx, posterURL, posterFile); err != nil {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Poster download failed: %v\n", err)
		return
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Poster saved to %s\n", posterFile)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
