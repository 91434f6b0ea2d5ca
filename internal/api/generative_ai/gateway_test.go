package generativeAI

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// setupGatewayTest returns a gateway whose backoff sleeps are recorded instead of waited.
func setupGatewayTest() (*GatewayImpl, *MockProvider, *[]time.Duration) {
	provider := new(MockProvider)
	gateway := NewGateway(provider, testLogger())
	var slept []time.Duration
	gateway.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return gateway, provider, &slept
}

func rateLimited() error {
	return &ProviderError{Provider: "mock", StatusCode: http.StatusTooManyRequests, Err: errors.New("slow down")}
}

func TestGatewayImpl_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		gateway, provider, slept := setupGatewayTest()
		provider.On("GenerateText", mock.Anything, "system", "user").Return("Day 1:\n- Blarney Castle", nil).Once()

		got := gateway.Generate(ctx, "system", "user")

		assert.Equal(t, "Day 1:\n- Blarney Castle", got)
		assert.False(t, IsFailure(got))
		assert.Empty(t, *slept)
		provider.AssertExpectations(t)
	})

	t.Run("retries transient failures with doubling backoff", func(t *testing.T) {
		gateway, provider, slept := setupGatewayTest()
		provider.On("GenerateText", mock.Anything, "system", "user").Return("", rateLimited()).Twice()
		provider.On("GenerateText", mock.Anything, "system", "user").Return("finally", nil).Once()

		got := gateway.Generate(ctx, "system", "user")

		assert.Equal(t, "finally", got)
		assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
		provider.AssertExpectations(t)
	})

	t.Run("returns failure marker after exhausting attempts", func(t *testing.T) {
		gateway, provider, slept := setupGatewayTest()
		serverErr := &ProviderError{Provider: "mock", StatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")}
		provider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("", serverErr).Times(5)

		got := gateway.Generate(ctx, "system", "user")

		assert.True(t, IsFailure(got))
		assert.Contains(t, got, "5 attempt(s)")
		assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}, *slept)
		provider.AssertExpectations(t)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		gateway, provider, slept := setupGatewayTest()
		badRequest := &ProviderError{Provider: "mock", StatusCode: http.StatusBadRequest, Err: errors.New("bad prompt")}
		provider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("", badRequest).Once()

		got := gateway.Generate(ctx, "system", "user")

		assert.True(t, IsFailure(got))
		assert.Empty(t, *slept)
		provider.AssertExpectations(t)
	})

	t.Run("stops when the context is cancelled during backoff", func(t *testing.T) {
		gateway, provider, _ := setupGatewayTest()
		gateway.sleep = sleepContext
		gateway.policy.InitialBackoff = time.Hour

		cancelCtx, cancel := context.WithCancel(ctx)
		provider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return("", rateLimited()).Once()

		got := gateway.Generate(cancelCtx, "system", "user")

		assert.True(t, IsFailure(got))
		provider.AssertExpectations(t)
	})

	t.Run("custom retry policy", func(t *testing.T) {
		provider := new(MockProvider)
		gateway := NewGateway(provider, testLogger(),
			WithRetryPolicy(RetryPolicy{MaxAttempts: 2, InitialBackoff: time.Millisecond}),
			WithRateLimit(1000, 10))
		provider.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("", rateLimited()).Times(2)

		got := gateway.Generate(ctx, "system", "user")

		assert.True(t, IsFailure(got))
		provider.AssertExpectations(t)
	})
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", rateLimited(), true},
		{"server error", &ProviderError{StatusCode: http.StatusServiceUnavailable, Err: errors.New("down")}, true},
		{"unauthorized", &ProviderError{StatusCode: http.StatusUnauthorized, Err: errors.New("key")}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"empty response", ErrEmptyResponse, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsFailure(t *testing.T) {
	assert.True(t, IsFailure("Error: unable to generate text"))
	assert.True(t, IsFailure("  Error: leading space"))
	assert.False(t, IsFailure("A day of errors and castles"))
	assert.False(t, IsFailure(""))
}

type countingGateway struct {
	calls int
	reply string
}

func (c *countingGateway) Generate(context.Context, string, string) string {
	c.calls++
	return c.reply
}

func TestCachedGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("serves repeated prompts from cache", func(t *testing.T) {
		next := &countingGateway{reply: "Cliffs and castles"}
		cached := NewCachedGateway(next, time.Minute, testLogger(), nil)

		require.Equal(t, "Cliffs and castles", cached.Generate(ctx, "s", "u"))
		require.Equal(t, "Cliffs and castles", cached.Generate(ctx, "s", "u"))
		assert.Equal(t, 1, next.calls)

		cached.Generate(ctx, "s", "other")
		assert.Equal(t, 2, next.calls)
	})

	t.Run("never caches failures", func(t *testing.T) {
		next := &countingGateway{reply: FailurePrefix + " provider down"}
		cached := NewCachedGateway(next, time.Minute, testLogger(), nil)

		cached.Generate(ctx, "s", "u")
		cached.Generate(ctx, "s", "u")
		assert.Equal(t, 2, next.calls)
	})

	t.Run("system and user prompts are keyed separately", func(t *testing.T) {
		assert.NotEqual(t, promptCacheKey("ab", "c"), promptCacheKey("a", "bc"))
	})
}
