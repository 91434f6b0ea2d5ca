package catalogue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

var (
	_ Repository = (*FileRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
)

// Repository loads the raw POI catalogue. Implementations return a *types.DataLoadError on any failure.
type Repository interface {
	LoadPOIs(ctx context.Context) ([]*types.POI, error)
}

// poiRecord is the on-disk shape of a catalogue entry.
type poiRecord struct {
	Name            string     `json:"Name"`
	AddressRegion   string     `json:"AddressRegion"`
	AddressLocality string     `json:"AddressLocality"`
	Tags            string     `json:"Tags"`
	Latitude        flexFloat  `json:"Latitude"`
	Longitude       flexFloat  `json:"Longitude"`
	Telephone       flexString `json:"Telephone"`
	URL             flexString `json:"Url"`
}

func (r poiRecord) toPOI() *types.POI {
	return &types.POI{
		ID:        types.POIIDFromName(r.Name),
		Name:      strings.TrimSpace(r.Name),
		Region:    strings.TrimSpace(r.AddressRegion),
		Locality:  strings.TrimSpace(r.AddressLocality),
		Tags:      r.Tags,
		Latitude:  float64(r.Latitude),
		Longitude: float64(r.Longitude),
		Telephone: string(r.Telephone),
		URL:       string(r.URL),
	}
}

// flexFloat accepts a JSON number, a numeric string, an empty string or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexString accepts a string, a number (phone numbers exported from spreadsheets) or null.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = flexString(n.String())
	}
	return nil
}

// FileRepository reads the catalogue from a JSON array on disk.
type FileRepository struct {
	path   string
	logger *slog.Logger
}

func NewFileRepository(path string, logger *slog.Logger) *FileRepository {
	return &FileRepository{path: path, logger: logger}
}

func (r *FileRepository) LoadPOIs(ctx context.Context) ([]*types.POI, error) {
	ctx, span := otel.Tracer("CatalogueRepository").Start(ctx, "LoadPOIs.File")
	defer span.End()
	span.SetAttributes(attribute.String("catalogue.path", r.path))

	raw, err := os.ReadFile(r.path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		r.logger.ErrorContext(ctx, "Failed to read POI catalogue", slog.String("path", r.path), slog.Any("error", err))
		return nil, &types.DataLoadError{Source: r.path, Err: err}
	}

	pois, err := DecodePOIs(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		r.logger.ErrorContext(ctx, "Failed to decode POI catalogue", slog.String("path", r.path), slog.Any("error", err))
		return nil, &types.DataLoadError{Source: r.path, Err: err}
	}

	span.SetAttributes(attribute.Int("catalogue.size", len(pois)))
	r.logger.DebugContext(ctx, "POI catalogue loaded", slog.String("path", r.path), slog.Int("count", len(pois)))
	return pois, nil
}

// DecodePOIs parses a JSON array of catalogue records. Records without a name are rejected.
func DecodePOIs(raw []byte) ([]*types.POI, error) {
	var records []poiRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding catalogue json: %w", err)
	}
	pois := make([]*types.POI, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("record %d has no Name", i)
		}
		pois = append(pois, rec.toPOI())
	}
	return pois, nil
}

// DB is the subset of *pgxpool.Pool used by PostgresRepository.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository reads the catalogue from the pois table.
type PostgresRepository struct {
	pgpool DB
	logger *slog.Logger
}

func NewPostgresRepository(pgpool DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{pgpool: pgpool, logger: logger}
}

const selectPOIsQuery = `
	SELECT id, name, address_region, address_locality, tags, latitude, longitude,
	       COALESCE(telephone, ''), COALESCE(url, '')
	FROM pois
	ORDER BY position`

func (r *PostgresRepository) LoadPOIs(ctx context.Context) ([]*types.POI, error) {
	ctx, span := otel.Tracer("CatalogueRepository").Start(ctx, "LoadPOIs.Postgres")
	defer span.End()

	rows, err := r.pgpool.Query(ctx, selectPOIsQuery)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		r.logger.ErrorContext(ctx, "Failed to query pois", slog.Any("error", err))
		return nil, &types.DataLoadError{Source: "postgres", Err: err}
	}
	defer rows.Close()

	var pois []*types.POI
	for rows.Next() {
		var (
			p  types.POI
			id uuid.UUID
		)
		if err := rows.Scan(&id, &p.Name, &p.Region, &p.Locality, &p.Tags, &p.Latitude, &p.Longitude, &p.Telephone, &p.URL); err != nil {
			span.RecordError(err)
			r.logger.ErrorContext(ctx, "Failed to scan poi row", slog.Any("error", err))
			return nil, &types.DataLoadError{Source: "postgres", Err: err}
		}
		p.ID = id
		pois = append(pois, &p)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		r.logger.ErrorContext(ctx, "Error iterating poi rows", slog.Any("error", err))
		return nil, &types.DataLoadError{Source: "postgres", Err: err}
	}
	if len(pois) == 0 {
		err := fmt.Errorf("pois table is empty")
		span.SetStatus(codes.Error, err.Error())
		return nil, &types.DataLoadError{Source: "postgres", Err: err}
	}

	span.SetAttributes(attribute.Int("catalogue.size", len(pois)))
	return pois, nil
}

const upsertPOIQuery = `
	INSERT INTO pois (id, name, address_region, address_locality, tags, latitude, longitude, telephone, url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
	ON CONFLICT (name) DO UPDATE SET
		address_region = EXCLUDED.address_region,
		address_locality = EXCLUDED.address_locality,
		tags = EXCLUDED.tags,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		telephone = EXCLUDED.telephone,
		url = EXCLUDED.url,
		updated_at = NOW()`

// ImportPOIs upserts the given POIs by name inside a single transaction.
func (r *PostgresRepository) ImportPOIs(ctx context.Context, pois []*types.POI) (int, error) {
	ctx, span := otel.Tracer("CatalogueRepository").Start(ctx, "ImportPOIs")
	defer span.End()

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.WarnContext(ctx, "Failed to rollback import transaction", slog.Any("error", err))
		}
	}()

	imported := 0
	for _, p := range pois {
		var tag pgconn.CommandTag
		tag, err = tx.Exec(ctx, upsertPOIQuery,
			p.ID, p.Name, p.Region, p.Locality, p.Tags, p.Latitude, p.Longitude, p.Telephone, p.URL)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upsert failed")
			return 0, fmt.Errorf("failed to upsert poi %q: %w", p.Name, err)
		}
		imported += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	span.SetAttributes(attribute.Int("catalogue.imported", imported))
	r.logger.InfoContext(ctx, "POI catalogue imported", slog.Int("count", imported))
	return imported, nil
}
