package catalogue

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	FilterAndOrganize(ctx context.Context, prefs types.UserPreferences) (*types.OrganizedCatalogue, error)
}

type ServiceImpl struct {
	repository Repository
	logger     *slog.Logger
}

func NewServiceImpl(repository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repository: repository,
		logger:     logger,
	}
}

// FilterAndOrganize loads the catalogue and returns the POIs matching prefs.
// A load failure is returned unchanged so callers can detect types.ErrDataLoad.
func (s *ServiceImpl) FilterAndOrganize(ctx context.Context, prefs types.UserPreferences) (*types.OrganizedCatalogue, error) {
	ctx, span := otel.Tracer("CatalogueService").Start(ctx, "FilterAndOrganize")
	defer span.End()

	pois, err := s.repository.LoadPOIs(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalogue load failed")
		return nil, err
	}

	organized := FilterAndOrganize(pois, prefs)
	span.SetAttributes(
		attribute.Int("catalogue.loaded", len(pois)),
		attribute.Int("catalogue.matched", organized.TotalCount),
	)
	s.logger.InfoContext(ctx, "POI catalogue filtered",
		slog.Int("loaded", len(pois)),
		slog.Int("matched", organized.TotalCount),
		slog.Int("regions", len(organized.Regions)))
	if organized.TotalCount == 0 {
		s.logger.WarnContext(ctx, "No POIs match the requested interests", slog.Any("interests", prefs.Interests))
	}
	return organized, nil
}
