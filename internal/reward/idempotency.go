package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
)

// BuildKey derives a deterministic idempotency key from the triggering
// occurrence. Callers that retry the same trigger produce the same key and
// therefore the same single grant.
func BuildKey(triggerID, characterID, rewardType string) string {
	return strings.Join([]string{triggerID, characterID, rewardType}, ":")
}

// awaitExistingResult handles the duplicate-key path. The original request
// reserved the key; if it already committed, its stored result is returned
// unchanged with Replayed set. A key reused for a different character or
// reward type is a conflict, never a replay. If the original is still
// pending we poll briefly, since reservation and grant commit atomically and
// the winner is usually milliseconds away. Past the deadline the caller gets
// a transient error and may retry with the same key.
func (s *service) awaitExistingResult(ctx context.Context, req domain.GrantRequest) (*domain.GrantResult, error) {
	log := logger.FromContext(ctx)
	key := req.IdempotencyKey

	for attempt := 0; attempt < PendingPollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(PendingPollInterval):
			}
		}

		request, err := s.repo.GetRequest(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load idempotency record: %w", err)
		}
		if request == nil {
			// The holder rolled back and freed the key; retry the reservation
			return nil, fmt.Errorf("reservation released: %w", domain.ErrTransientStore)
		}

		if request.CharacterID != req.CharacterID || request.RewardType != req.Reason {
			log.Warn(LogMsgKeyConflict,
				"idempotency_key", key,
				"character_id", req.CharacterID,
				"stored_character_id", request.CharacterID)
			return nil, fmt.Errorf("%w: key %s belongs to another grant", domain.ErrResultConflict, key)
		}

		if request.Status == domain.RequestCompleted {
			var result domain.GrantResult
			if err := json.Unmarshal(request.Result, &result); err != nil {
				return nil, fmt.Errorf("failed to decode stored grant result: %w", err)
			}
			result.Replayed = true
			log.Info(LogMsgGrantReplayed, "idempotency_key", key)
			return &result, nil
		}
	}

	log.Warn(LogMsgGrantInFlight, "idempotency_key", key)
	return nil, fmt.Errorf("%w: %w", domain.ErrGrantInFlight, domain.ErrTransientStore)
}
