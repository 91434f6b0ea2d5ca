package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/catalogue"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/container"
)

var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the POI catalogue JSON file into Postgres",
	Long: `import upserts every record of the catalogue JSON file (--catalogue, or
catalogue.path) into the pois table, keyed by name. Migrations are applied
first. Afterwards set catalogue.source to postgres to plan from the database.`,
	Example: "  planner import --catalogue data/pois.json",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()

		path := cfg.Catalogue.Path
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		pois, err := catalogue.DecodePOIs(raw)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}

		cfg.Catalogue.Source = container.CatalogueSourcePostgres
		c, err := container.NewCatalogueContainer(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		defer c.Close()

		n, err := c.Importer.ImportPOIs(cmd.Context(), pois)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d places from %s\n", n, path)
		return nil
	},
}
