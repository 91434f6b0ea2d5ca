package commands

import (
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/container"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

var POIsCmd = newPOIsCmd()

func newPOIsCmd() *cobra.Command {
	var interests, regions, special []string
	cmd := &cobra.Command{
		Use:     "pois",
		Aliases: []string{"catalogue"},
		Short:   "Show the catalogue entries matching some interests",
		Example: "  planner pois --interests beach,walking --regions Kerry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs := types.DefaultUserPreferences()
			prefs.Interests = trimAll(interests)
			prefs.Regions = trimAll(regions)
			prefs.SpecialRequirements = trimAll(special)
			if err := prefs.Validate(); err != nil {
				return err
			}

			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			c, err := container.NewCatalogueContainer(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			organized, err := c.CatalogueService.FilterAndOrganize(cmd.Context(), prefs)
			if err != nil {
				return err
			}
			printCatalogueSummary(cmd.OutOrStdout(), organized)
			printPOIs(cmd.OutOrStdout(), organized)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&interests, "interests", "i", nil, "interests matched against POI tags, comma separated")
	cmd.Flags().StringSliceVarP(&regions, "regions", "r", nil, "restrict to these regions")
	cmd.Flags().StringSliceVar(&special, "special", nil, "special requirements")
	_ = cmd.MarkFlagRequired("interests")
	return cmd
}
