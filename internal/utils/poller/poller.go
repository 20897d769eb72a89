package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/rs/zerolog/log"
)

type PollFunc func(ctx context.Context) error

type Option func(*Poller)

// WithImmediateStart runs the first pass when Start is called instead of
// one interval later.
func WithImmediateStart() Option {
	return func(p *Poller) {
		p.immediate = true
	}
}

// Poller runs a pass on a fixed interval. Passes never overlap: a pass that
// outlives the interval delays the next one.
type Poller struct {
	name      string
	interval  time.Duration
	immediate bool
	pollFunc  PollFunc
	quit      chan struct{}
	stopOnce  sync.Once
}

func NewPoller(name string, interval time.Duration, pollFunc PollFunc, opts ...Option) *Poller {
	p := &Poller{
		name:     name,
		interval: interval,
		pollFunc: pollFunc,
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start blocks until ctx is cancelled or Stop is called. Every pass gets its
// own trace id.
func (p *Poller) Start(ctx context.Context) {
	logger := log.With().Str("poller", p.name).Logger()
	logger.Info().Stringer("interval", p.interval).Bool("immediate", p.immediate).Msg("starting poller")

	if p.immediate {
		p.poll(ctx)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			logger.Info().Msg("poller stopped, context cancelled")
			return
		case <-p.quit:
			logger.Info().Msg("poller stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	ctx = tracing.InjectTraceID(ctx)
	logger := log.Ctx(ctx).With().Str("poller", p.name).Logger()

	startTime := time.Now()
	if err := p.pollFunc(ctx); err != nil {
		logger.Error().Err(err).Dur("took", time.Since(startTime)).Msg("poll pass failed")
		return
	}
	logger.Debug().Dur("took", time.Since(startTime)).Msg("poll pass done")
}

// Stop ends Start. It is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}
