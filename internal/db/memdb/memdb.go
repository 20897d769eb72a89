// Package memdb is an in-memory implementation of db.DbInterface. It keeps
// the conditional write semantics of the mongo store and serializes
// transactions behind a single lock.
package memdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rewardstack/staking-engine/internal/db"
	"github.com/rewardstack/staking-engine/internal/db/model"
	"github.com/shopspring/decimal"
)

type txKey struct{}

type state struct {
	pools      map[string]*model.StakingPoolDocument
	positions  map[string]*model.StakePositionDocument
	rewards    map[string]*model.RewardRecordDocument
	autoStakes map[string]*model.AutoStakingConfigDocument
	balances   map[string]decimal.Decimal
	requests   map[string]*model.RequestDocument
	failures   map[string]*model.AccrualFailureDocument
}

func newState() *state {
	return &state{
		pools:      make(map[string]*model.StakingPoolDocument),
		positions:  make(map[string]*model.StakePositionDocument),
		rewards:    make(map[string]*model.RewardRecordDocument),
		autoStakes: make(map[string]*model.AutoStakingConfigDocument),
		balances:   make(map[string]decimal.Decimal),
		requests:   make(map[string]*model.RequestDocument),
		failures:   make(map[string]*model.AccrualFailureDocument),
	}
}

// remember records how to restore key of m if the running transaction
// fails. It must be called before the first write to key and does nothing
// outside a transaction, so rollback cost follows the keys a unit touches.
func remember[K comparable, V any](s *Store, m map[K]V, key K, clone func(V) V) {
	if !s.inTx {
		return
	}
	old, existed := m[key]
	if existed {
		old = clone(old)
	}
	s.undo = append(s.undo, func() {
		if existed {
			m[key] = old
		} else {
			delete(m, key)
		}
	})
}

// Store must be created with New.
type Store struct {
	mu    sync.Mutex
	state *state
	// inTx and undo are guarded by mu
	inTx bool
	undo []func()
}

var _ db.DbInterface = (*Store)(nil)

func New() *Store {
	return &Store{state: newState()}
}

// lock is a no-op inside WithTransaction, the transaction already holds mu.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// WithTransaction holds the store lock while fn runs and undoes every write
// of fn when it fails or panics. fn must not hand its context to other
// goroutines.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inTx = true
	committed := false
	defer func() {
		if !committed {
			for i := len(s.undo) - 1; i >= 0; i-- {
				s.undo[i]()
			}
		}
		s.inTx = false
		s.undo = nil
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		return err
	}
	committed = true

	return nil
}

func clonePool(p *model.StakingPoolDocument) *model.StakingPoolDocument {
	c := *p
	if p.MaximumStake != nil {
		m := *p.MaximumStake
		c.MaximumStake = &m
	}
	if p.AvailableSlots != nil {
		slots := *p.AvailableSlots
		c.AvailableSlots = &slots
	}
	return &c
}

func cloneAutoStake(c *model.AutoStakingConfigDocument) *model.AutoStakingConfigDocument {
	cfg := *c
	return &cfg
}

func cloneRequest(r *model.RequestDocument) *model.RequestDocument {
	c := *r
	return &c
}

func cloneFailure(f *model.AccrualFailureDocument) *model.AccrualFailureDocument {
	c := *f
	return &c
}

func sameBalance(d decimal.Decimal) decimal.Decimal {
	return d
}

func cloneReward(r *model.RewardRecordDocument) *model.RewardRecordDocument {
	c := *r
	if r.ClaimedAt != nil {
		t := *r.ClaimedAt
		c.ClaimedAt = &t
	}
	return &c
}

func now() time.Time {
	return time.Now().UTC()
}

func sortPositionsByID(positions []*model.StakePositionDocument) {
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].ID < positions[j].ID
	})
}
