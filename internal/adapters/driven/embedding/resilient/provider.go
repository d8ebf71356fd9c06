// Package resilient wraps an encoder with the behaviour the matching
// engine relies on: an explicit start-up check, a degraded random-vector
// mode when the encoder is unavailable, request throttling and a circuit
// breaker.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
	"github.com/custodia-labs/petmatch/internal/logger"
	"github.com/custodia-labs/petmatch/internal/metrics"
)

// Ensure Provider implements the interfaces.
var (
	_ driven.EmbeddingService    = (*Provider)(nil)
	_ driven.DegradationReporter = (*Provider)(nil)
)

// Default configuration values.
const (
	DefaultFailureThreshold = 5
	DefaultOpenTimeout      = 30 * time.Second
	DefaultSeed             = 1
)

// Config holds configuration for the provider.
type Config struct {
	// RatePerSecond caps encoder calls; 0 means unlimited.
	RatePerSecond float64

	// Burst is the limiter burst size (default: 1 when limited).
	Burst int

	// FailureThreshold is the number of consecutive failures that opens
	// the breaker (default: 5).
	FailureThreshold uint32

	// OpenTimeout is how long the breaker stays open before probing (default: 30s).
	OpenTimeout time.Duration

	// Dimensions is used for degraded vectors when there is no encoder.
	Dimensions int

	// Seed seeds the degraded-mode random source (default: 1).
	Seed uint64
}

// Provider is the embedding provider handed to the matching engine.
// Construct it once, call Init, and share it.
type Provider struct {
	encoder driven.EmbeddingService
	breaker *gobreaker.CircuitBreaker[[][]float32]
	limiter *rate.Limiter
	dims    int

	degraded atomic.Bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New wraps encoder. A nil encoder starts degraded once Init is called.
func New(encoder driven.EmbeddingService, cfg Config) *Provider {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = DefaultOpenTimeout
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		if cfg.Burst <= 0 {
			cfg.Burst = 1
		}
	}

	dims := cfg.Dimensions
	name := "embedding"
	if encoder != nil {
		dims = encoder.Dimensions()
		name = encoder.ModelName()
	}

	p := &Provider{
		encoder: encoder,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		dims:    dims,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}

	p.breaker = gobreaker.NewCircuitBreaker[[][]float32](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l := logger.With("embedding")
			l.Warn().Str("encoder", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.Set(float64(to))
		},
	})

	return p
}

// Init checks the encoder once. On failure the provider switches to
// degraded mode and the error is returned for the caller to report;
// the provider stays usable either way.
func (p *Provider) Init(ctx context.Context) error {
	if p.encoder == nil {
		p.setDegraded(true)
		return fmt.Errorf("%w: no encoder configured", domain.ErrEmbeddingUnavailable)
	}
	if err := p.encoder.Ping(ctx); err != nil {
		p.setDegraded(true)
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	p.setDegraded(false)
	return nil
}

// IsDegraded returns true when vectors are random rather than encoded.
func (p *Provider) IsDegraded() bool {
	return p.degraded.Load()
}

func (p *Provider) setDegraded(v bool) {
	p.degraded.Store(v)
	metrics.SetDegraded(v)
	if v {
		logger.Warn("Embedding encoder unavailable, using random vectors (degraded mode)")
	}
}

// Embed returns the vector for text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch returns vectors for texts, in order. In degraded mode each
// vector is drawn uniformly from [0,1) per dimension.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if p.IsDegraded() {
		metrics.RecordEmbedding("degraded")
		return p.randomVectors(len(texts)), nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		metrics.RecordEmbedding("rejected")
		return nil, fmt.Errorf("embedding throttle: %w", err)
	}

	out, err := p.breaker.Execute(func() ([][]float32, error) {
		return p.encoder.EmbedBatch(ctx, texts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordEmbedding("rejected")
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		metrics.RecordEmbedding("error")
		return nil, err
	}

	if len(out) != len(texts) {
		metrics.RecordEmbedding("error")
		return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(out), len(texts))
	}
	for i, v := range out {
		if p.dims > 0 && len(v) != p.dims {
			metrics.RecordEmbedding("error")
			return nil, fmt.Errorf("encoder returned %d dimensions for text %d, want %d", len(v), i, p.dims)
		}
	}

	metrics.RecordEmbedding("success")
	return out, nil
}

func (p *Provider) randomVectors(n int) [][]float32 {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()

	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, p.dims)
		for j := range v {
			v[j] = p.rng.Float32()
		}
		out[i] = v
	}
	return out
}

// Dimensions returns the vector size.
func (p *Provider) Dimensions() int {
	return p.dims
}

// ModelName returns the wrapped encoder's model name.
func (p *Provider) ModelName() string {
	if p.encoder == nil {
		return "none"
	}
	return p.encoder.ModelName()
}

// Ping checks the wrapped encoder.
func (p *Provider) Ping(ctx context.Context) error {
	if p.encoder == nil {
		return domain.ErrEmbeddingUnavailable
	}
	return p.encoder.Ping(ctx)
}

// BreakerState returns the circuit breaker state name.
func (p *Provider) BreakerState() string {
	return p.breaker.State().String()
}

// Close closes the wrapped encoder.
func (p *Provider) Close() error {
	if p.encoder == nil {
		return nil
	}
	return p.encoder.Close()
}
