package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const DefaultPosterModel = openai.CreateImageModelDallE3

// PosterGenerator renders a travel poster for a finished plan.
type PosterGenerator struct {
	client     *openai.Client
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewPosterGenerator(apiKey, baseURL, model string, logger *slog.Logger) *PosterGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = DefaultPosterModel
	}
	return &PosterGenerator{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

func posterPrompt(tripSummary string, interests []string) string {
	var b strings.Builder
	b.WriteString("Create a stunning and vibrant thumbnail for a trip to Ireland, based on a trip summary. ")
	b.WriteString("You don't need to visualize all points of interest, instead try to pick up a general theme.\n")
	if len(interests) > 0 {
		fmt.Fprintf(&b, "The traveller is interested in: %s.\n", strings.Join(interests, ", "))
	}
	fmt.Fprintf(&b, "The trip summary is: %s.", tripSummary)
	return b.String()
}

// GeneratePoster returns the URL of a 1024x1024 image themed on the trip summary.
func (g *PosterGenerator) GeneratePoster(ctx context.Context, tripSummary string, interests []string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GeneratePoster")
	defer span.End()

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         posterPrompt(tripSummary, interests),
		Model:          g.model,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "image generation failed")
		g.logger.ErrorContext(ctx, "Failed to generate poster", slog.Any("error", err))
		return "", fmt.Errorf("failed to generate poster: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		span.SetStatus(codes.Error, "empty image response")
		return "", errors.New("image api returned no poster")
	}
	return resp.Data[0].URL, nil
}

// DownloadPoster saves the image at url to path, creating parent directories.
func (g *PosterGenerator) DownloadPoster(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build poster request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download poster: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create poster directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create poster file: %w", err)
	}
	_, copyErr := io.Copy(f, resp.Body)
	if err := errors.Join(copyErr, f.Close()); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write poster: %w", err)
	}
	g.logger.InfoContext(ctx, "Poster saved", slog.String("path", path))
	return nil
}
