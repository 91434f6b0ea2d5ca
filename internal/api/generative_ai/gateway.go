package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
)

// FailurePrefix starts every text returned by a Gateway whose call could not be completed.
const FailurePrefix = "Error:"

// IsFailure reports whether text is a gateway failure marker rather than generated content.
func IsFailure(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), FailurePrefix)
}

// Gateway is the text generation boundary used by the planner.
// Generate never fails: when the backend cannot answer it returns a string starting with FailurePrefix.
type Gateway interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) string
}

var _ Gateway = (*GatewayImpl)(nil)

type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	RequestTimeout time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    5,
		InitialBackoff: 2 * time.Second,
		RequestTimeout: 60 * time.Second,
	}
}

type GatewayImpl struct {
	provider Provider
	policy   RetryPolicy
	limiter  *rate.Limiter
	logger   *slog.Logger
	metrics  *metrics.AppMetrics
	sleep    func(ctx context.Context, d time.Duration) error
}

type GatewayOption func(*GatewayImpl)

func WithRetryPolicy(policy RetryPolicy) GatewayOption {
	return func(g *GatewayImpl) {
		if policy.MaxAttempts < 1 {
			policy.MaxAttempts = 1
		}
		g.policy = policy
	}
}

// WithRateLimit caps outgoing calls. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) GatewayOption {
	return func(g *GatewayImpl) {
		if rps <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithMetrics(m *metrics.AppMetrics) GatewayOption {
	return func(g *GatewayImpl) { g.metrics = m }
}

func NewGateway(provider Provider, logger *slog.Logger, opts ...GatewayOption) *GatewayImpl {
	g := &GatewayImpl{
		provider: provider,
		policy:   DefaultRetryPolicy(),
		limiter:  rate.NewLimiter(rate.Inf, 0),
		logger:   logger,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends the prompts to the provider, retrying transient failures with a doubling backoff.
func (g *GatewayImpl) Generate(ctx context.Context, systemPrompt, userPrompt string) string {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("llm.provider", g.provider.Name()),
		attribute.Int("llm.prompt.length", len(systemPrompt)+len(userPrompt)),
	))
	defer span.End()

	l := g.logger.With(slog.String("provider", g.provider.Name()))
	start := time.Now()
	backoff := g.policy.InitialBackoff

	var (
		lastErr  error
		attempts int
	)
	for attempts = 1; attempts <= g.policy.MaxAttempts; attempts++ {
		if err := g.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		text, err := g.call(ctx, systemPrompt, userPrompt)
		if err == nil {
			span.SetAttributes(attribute.Int("llm.attempts", attempts), attribute.Int("llm.response.length", len(text)))
			g.metrics.RecordLLMRequest(ctx, g.provider.Name(), "success", attempts, time.Since(start))
			return text
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempts == g.policy.MaxAttempts {
			break
		}

		l.WarnContext(ctx, "Text generation failed, retrying",
			slog.Int("attempt", attempts),
			slog.Int("max_attempts", g.policy.MaxAttempts),
			slog.Duration("wait_duration", backoff),
			slog.Any("error", err))
		if err := g.sleep(ctx, backoff); err != nil {
			lastErr = err
			break
		}
		backoff *= 2
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, "text generation failed")
	span.SetAttributes(attribute.Int("llm.attempts", attempts))
	g.metrics.RecordLLMRequest(ctx, g.provider.Name(), "failure", attempts, time.Since(start))
	l.ErrorContext(ctx, "Text generation failed", slog.Int("attempts", attempts), slog.Any("error", lastErr))

	return fmt.Sprintf("%s unable to generate text after %d attempt(s): %v", FailurePrefix, attempts, lastErr)
}

func (g *GatewayImpl) call(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.policy.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.policy.RequestTimeout)
		defer cancel()
	}
	return g.provider.GenerateText(ctx, systemPrompt, userPrompt)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
