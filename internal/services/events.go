package services

import (
	"context"

	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rs/zerolog/log"
)

// publishFunc returns a post commit action pushing ev. A failed push is
// logged and never undoes the committed unit.
func (s *Service) publishFunc(ev *queue.PositionEvent) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := s.eventConsumer.PushPositionEvent(ctx, ev); err != nil {
			log.Ctx(ctx).Warn().
				Err(err).
				Str("position_id", ev.PositionID).
				Str("event_type", string(ev.EventType)).
				Msg("failed to push position event")
		}
		return nil
	}
}
