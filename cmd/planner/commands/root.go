package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-ireland-travel-planner/app/logger"
	"github.com/FACorreiaa/go-ireland-travel-planner/config"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/container"
)

var (
	cataloguePath string
	provider      string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Ireland travel planner",
	Long: `planner builds a day by day Ireland itinerary from the POI catalogue.
Interests are matched against catalogue tags, the matching places are grouped
into days by an LLM and every activity gets a generated description.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cataloguePath, "catalogue", "", "path to the POI catalogue JSON (overrides catalogue.path)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "LLM provider: gemini, openai-3.5, openai-4, openai-4o-mini, groq, ollama")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(PlanCmd)
	rootCmd.AddCommand(TagsCmd)
	rootCmd.AddCommand(POIsCmd)
	rootCmd.AddCommand(ImportCmd)
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		return err
	}
	return nil
}

// setup loads .env and the config, applies the persistent flags and builds a stderr logger
// so stdout stays readable.
func setup() (*config.Config, *slog.Logger, func() error, error) {
	_ = godotenv.Load()

	cfg, err := config.InitConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if cataloguePath != "" {
		cfg.Catalogue.Source = container.CatalogueSourceFile
		cfg.Catalogue.Path = cataloguePath
	}
	if provider != "" {
		cfg.LLM.Provider = provider
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	} else if logCfg.Level == "" || logCfg.Level == "debug" {
		logCfg.Level = "warn"
	}
	logger, closeLog := appLogger.New(os.Stderr, cfg.Mode, logCfg)
	slog.SetDefault(logger)
	return &cfg, logger, closeLog, nil
}
