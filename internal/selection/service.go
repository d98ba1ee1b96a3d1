package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/repository"
	"github.com/classforge/engine/internal/reward"
	"github.com/classforge/engine/internal/utils"
)

// RewardConfig describes the reward automatically granted to the selected
// character. The grant's idempotency key is derived from the selection
// record, so every completed selection is its own grant and a retried
// record cannot double-grant.
type RewardConfig struct {
	XP    int64 `json:"xp"`
	Coins int64 `json:"coins"`
}

// Options tunes a single selection call
type Options struct {
	// ExcludeRecent skips characters appearing in the last N selection
	// records for the class. Zero means no exclusion.
	ExcludeRecent int
	Reward        *RewardConfig
}

// Service defines the interface for random student selection
type Service interface {
	SelectRandom(ctx context.Context, classID string, opts Options) (*domain.SelectionRecord, error)
	ListRecent(ctx context.Context, classID string, limit int) ([]domain.SelectionRecord, error)
}

type service struct {
	repo      repository.Selection
	rewards   reward.Service
	publisher event.Bus
	rng       func(n int) int // uniform index draw, injected for deterministic tests
}

// NewService creates a new selection service
func NewService(repo repository.Selection, rewards reward.Service, publisher event.Bus) Service {
	return &service{
		repo:      repo,
		rewards:   rewards,
		publisher: publisher,
		rng:       utils.RandomIndex,
	}
}

// SelectRandom draws one character uniformly from the eligible roster and
// writes exactly one audit record per completed call. An empty pool writes
// nothing.
func (s *service) SelectRandom(ctx context.Context, classID string, opts Options) (*domain.SelectionRecord, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(classID) == "" {
		return nil, fmt.Errorf("%w: class id is required", domain.ErrInvalidArgument)
	}
	if opts.ExcludeRecent < 0 {
		return nil, fmt.Errorf("%w: exclusion window must be non-negative", domain.ErrInvalidArgument)
	}
	if opts.ExcludeRecent > MaxExcludeRecent {
		opts.ExcludeRecent = MaxExcludeRecent
	}

	eligible, err := s.repo.ListEligible(ctx, classID, opts.ExcludeRecent)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible characters: %w", err)
	}
	if len(eligible) == 0 {
		log.Info(LogMsgEmptyPool, "class_id", classID, "exclude_recent", opts.ExcludeRecent)
		return nil, fmt.Errorf("%w: class %s", domain.ErrEmptyPool, classID)
	}

	chosen := eligible[s.rng(len(eligible))]

	record := &domain.SelectionRecord{
		ID:          uuid.NewString(),
		ClassID:     classID,
		CharacterID: chosen.ID,
		StudentID:   chosen.StudentID,
		Method:      domain.SelectionMethodUniform,
	}

	if opts.Reward != nil {
		key := reward.BuildKey(record.ID, chosen.ID, domain.ReasonRandomDraw)
		_, err := s.rewards.GrantReward(ctx, domain.GrantRequest{
			CharacterID:    chosen.ID,
			XP:             opts.Reward.XP,
			Coins:          opts.Reward.Coins,
			Reason:         domain.ReasonRandomDraw,
			IdempotencyKey: key,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to grant selection reward: %w", err)
		}
		record.RewardKey = &key
		log.Info(LogMsgRewardAttached, "character_id", chosen.ID, "idempotency_key", key)
	}

	if err := s.repo.InsertRecord(ctx, record); err != nil {
		// The reward, if any, already committed under its own key
		log.Error(LogMsgRecordFailed, "class_id", classID, "character_id", chosen.ID, "error", err)
		return nil, err
	}

	_ = s.publisher.Publish(ctx, event.NewStudentSelectedEvent(*record))

	log.Info(LogMsgStudentSelected,
		"class_id", classID,
		"character_id", chosen.ID,
		"student_id", chosen.StudentID,
		"pool_size", len(eligible))
	return record, nil
}

func (s *service) ListRecent(ctx context.Context, classID string, limit int) ([]domain.SelectionRecord, error) {
	if strings.TrimSpace(classID) == "" {
		return nil, fmt.Errorf("%w: class id is required", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, classID, limit)
}
