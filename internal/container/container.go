package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-ireland-travel-planner/app/db"
	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-ireland-travel-planner/config"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/catalogue"
	generativeAI "github.com/FACorreiaa/go-ireland-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/tags"
)

const (
	CatalogueSourceFile     = "file"
	CatalogueSourcePostgres = "postgres"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.AppMetrics
	// Pool is nil when the catalogue is read from a file.
	Pool *pgxpool.Pool

	CatalogueRepository catalogue.Repository
	// Importer is set only for the postgres catalogue source.
	Importer         *catalogue.PostgresRepository
	CatalogueService catalogue.Service
	Gateway          generativeAI.Gateway
	ItineraryService itinerary.Service
	// Poster is nil when no image generation key is configured.
	Poster *generativeAI.PosterGenerator

	CatalogueHandler *catalogue.Handler
	ItineraryHandler *itinerary.Handler
	TagsHandler      *tags.Handler
}

// NewContainer wires the catalogue, the text generation gateway and the itinerary
// pipeline. m may be nil, in which case nothing is recorded.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics) (*Container, error) {
	c, err := NewCatalogueContainer(ctx, cfg, logger, m)
	if err != nil {
		return nil, err
	}

	provider, err := generativeAI.NewProvider(ctx, cfg.LLM)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	c.Gateway = c.newGateway(provider)

	organizer := itinerary.NewOrganizer(c.Gateway, logger, m)
	dayPlanBuilder := itinerary.NewDayPlanBuilder(c.Gateway, logger, m, cfg.Planner.DescriptionConcurrency)
	summaryWriter := itinerary.NewSummaryWriter(c.Gateway, logger, m)
	c.ItineraryService = itinerary.NewServiceImpl(c.CatalogueService, organizer, dayPlanBuilder, summaryWriter, logger, m)

	if key := firstNonEmpty(cfg.LLM.PosterAPIKey, os.Getenv("OPENAI_API_KEY")); key != "" {
		c.Poster = generativeAI.NewPosterGenerator(key, "", cfg.LLM.PosterModel, logger)
	}

	c.ItineraryHandler = itinerary.NewHandler(c.ItineraryService, logger)

	logger.InfoContext(ctx, "Container initialised",
		slog.String("catalogue_source", cfg.Catalogue.Source),
		slog.String("llm_provider", provider.Name()),
		slog.Bool("poster_enabled", c.Poster != nil))
	return c, nil
}

// NewCatalogueContainer wires only the catalogue side, which needs no LLM credentials.
// ItineraryService, Gateway, Poster and ItineraryHandler stay nil.
func NewCatalogueContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Metrics: m}
	if err := c.initCatalogue(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.CatalogueHandler = catalogue.NewHandler(c.CatalogueService, logger)
	c.TagsHandler = tags.NewHandler(logger)
	return c, nil
}

func (c *Container) initCatalogue(ctx context.Context) error {
	switch c.Config.Catalogue.Source {
	case "", CatalogueSourceFile:
		c.CatalogueRepository = catalogue.NewFileRepository(c.Config.Catalogue.Path, c.Logger)
	case CatalogueSourcePostgres:
		dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
		if err != nil {
			return err
		}
		if err = database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
			return err
		}
		pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
		if err != nil {
			return err
		}
		c.Pool = pool
		if !database.WaitForDB(ctx, pool, c.Logger) {
			return errors.New("database not ready")
		}
		c.Importer = catalogue.NewPostgresRepository(pool, c.Logger)
		c.CatalogueRepository = c.Importer
	default:
		return fmt.Errorf("unknown catalogue source %q", c.Config.Catalogue.Source)
	}

	c.CatalogueService = catalogue.NewServiceImpl(c.CatalogueRepository, c.Logger)
	return nil
}

func (c *Container) newGateway(provider generativeAI.Provider) generativeAI.Gateway {
	llm := c.Config.LLM
	policy := generativeAI.DefaultRetryPolicy()
	if llm.MaxAttempts > 0 {
		policy.MaxAttempts = llm.MaxAttempts
	}
	if llm.InitialBackoff > 0 {
		policy.InitialBackoff = llm.InitialBackoff
	}
	if llm.RequestTimeout > 0 {
		policy.RequestTimeout = llm.RequestTimeout
	}

	var gateway generativeAI.Gateway = generativeAI.NewGateway(provider, c.Logger,
		generativeAI.WithRetryPolicy(policy),
		generativeAI.WithRateLimit(llm.RequestsPerSecond, llm.Burst),
		generativeAI.WithMetrics(c.Metrics))
	if llm.CacheTTL > 0 {
		gateway = generativeAI.NewCachedGateway(gateway, llm.CacheTTL, c.Logger, c.Metrics)
	}
	return gateway
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
