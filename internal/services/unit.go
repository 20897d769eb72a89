package services

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// unit collects the side effects of one attempt of an atomic operation that
// cannot join the store transaction.
type unit struct {
	compensations []func(ctx context.Context) error
	afterCommit   []func(ctx context.Context) error
}

func (u *unit) onRollback(f func(ctx context.Context) error) {
	u.compensations = append(u.compensations, f)
}

func (u *unit) onCommit(f func(ctx context.Context) error) {
	u.afterCommit = append(u.afterCommit, f)
}

func run(ctx context.Context, fs []func(ctx context.Context) error, msg string) {
	// the unit is already decided, a cancelled caller must not stop it
	ctx = context.WithoutCancel(ctx)
	for _, f := range fs {
		if err := f(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg(msg)
		}
	}
}

// runUnit executes fn as one atomic unit of work and retries the whole unit
// with backoff when it lost a race on a pool or a position.
func (s *Service) runUnit(
	ctx context.Context, op types.Operation, fn func(ctx context.Context, u *unit) error,
) error {
	maxAttempts := s.cfg.Staking.MaxRetryTimes
	err := retry.Do(
		func() error {
			u := &unit{}
			err := s.db.WithTransaction(ctx, func(ctx context.Context) error {
				return fn(ctx, u)
			})
			if err != nil {
				run(ctx, u.compensations, "failed to compensate ledger call")
				return err
			}
			run(ctx, u.afterCommit, "failed to run post commit action")
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(s.cfg.Staking.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isConflict),
		retry.OnRetry(func(n uint, err error) {
			metrics.IncConflictRetries(op.String())
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", maxAttempts).
				Stringer("operation", op).
				Err(err).
				Msg("unit of work lost a race, retrying")
		}),
	)

	serviceErr := toServiceError(err)
	if serviceErr != nil {
		metrics.RecordStakingOperation(op.String(), serviceErr.ErrorCode.String())
		return serviceErr
	}
	metrics.RecordStakingOperation(op.String(), "")
	return nil
}

func isConflict(err error) bool {
	return db.IsConflictError(err) || types.HasCode(err, types.ConcurrencyConflict)
}

// debit takes amount from the owner balance inside the unit. Debits of a non
// transactional ledger are credited back when the unit fails.
func (s *Service) debit(ctx context.Context, u *unit, ownerID string, amount decimal.Decimal) error {
	if err := s.ledger.Debit(ctx, ownerID, amount); err != nil {
		return err
	}
	if !s.ledger.Transactional() {
		u.onRollback(func(ctx context.Context) error {
			return s.ledger.Credit(ctx, ownerID, amount)
		})
	}
	return nil
}

// credit gives amount to the owner. A non transactional ledger is credited
// only once the unit committed.
func (s *Service) credit(ctx context.Context, u *unit, ownerID string, amount decimal.Decimal) error {
	if s.ledger.Transactional() {
		return s.ledger.Credit(ctx, ownerID, amount)
	}
	u.onCommit(func(ctx context.Context) error {
		return s.ledger.Credit(ctx, ownerID, amount)
	})
	return nil
}
