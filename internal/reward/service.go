package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/classforge/engine/internal/database"
	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/leveling"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/metrics"
	"github.com/classforge/engine/internal/repository"
)

// Service defines the interface for reward dispatch operations
type Service interface {
	// GrantReward applies a grant exactly once per idempotency key. Replays
	// return the originally stored result with Replayed set.
	GrantReward(ctx context.Context, req domain.GrantRequest) (*domain.GrantResult, error)
}

type service struct {
	repo      repository.Reward
	publisher event.Bus
	txTimeout time.Duration
}

// NewService creates a new reward dispatcher service. txTimeout bounds each
// grant transaction attempt; zero disables the deadline.
func NewService(repo repository.Reward, publisher event.Bus, txTimeout time.Duration) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		txTimeout: txTimeout,
	}
}

func (s *service) GrantReward(ctx context.Context, req domain.GrantRequest) (*domain.GrantResult, error) {
	log := logger.FromContext(ctx)

	if err := validateGrant(req); err != nil {
		log.Warn(LogMsgInvalidGrant, "error", err)
		return nil, err
	}

	var result *domain.GrantResult
	err := database.WithRetry(ctx, "grant_reward", s.txTimeout, func(ctx context.Context) error {
		var applyErr error
		result, applyErr = s.applyGrant(ctx, req)
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		s.publishOutcome(ctx, req, *result)
		metrics.RewardsGranted.WithLabelValues(req.Reason).Inc()
		log.Info(LogMsgGrantApplied,
			"character_id", req.CharacterID,
			"xp", result.XPGranted,
			"coins", result.CoinsApplied,
			"new_level", result.NewLevel,
			"idempotency_key", req.IdempotencyKey)
	} else {
		metrics.RewardsReplayed.Inc()
	}

	return result, nil
}

// applyGrant runs one attempt of the grant transaction. The character row is
// locked before the ledger account so the reward and equip paths take locks
// in the same order.
func (s *service) applyGrant(ctx context.Context, req domain.GrantRequest) (*domain.GrantResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin grant transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	reserved, err := tx.ReserveRequest(ctx, domain.RewardRequest{
		Key:         req.IdempotencyKey,
		CharacterID: req.CharacterID,
		RewardType:  req.Reason,
		Status:      domain.RequestPending,
	})
	if err != nil {
		return nil, err
	}
	if !reserved {
		// Another request holds this key. Release our transaction before
		// waiting on the winner's commit.
		repository.SafeRollback(ctx, tx)
		return s.awaitExistingResult(ctx, req)
	}

	character, err := tx.GetCharacterForUpdate(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}
	if character.Archived() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterArchived, character.ID)
	}

	result := domain.GrantResult{
		CharacterID:   character.ID,
		XPGranted:     req.XP,
		CoinsApplied:  req.Coins,
		PreviousLevel: character.Level,
	}

	if req.XP > 0 {
		s.applyExperience(ctx, character, req.XP, &result)
		if err := tx.UpdateCharacterProgress(ctx, *character); err != nil {
			return nil, err
		}
	} else {
		result.NewXP = character.XP
		result.NewLevel = character.Level
	}

	balance, err := tx.GetBalanceForUpdate(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}
	result.NewBalance = balance

	if req.Coins != 0 {
		newBalance := balance + req.Coins
		if newBalance < 0 {
			log.Warn(LogMsgInsufficientBalance,
				"character_id", req.CharacterID,
				"balance", balance,
				"debit", -req.Coins)
			return nil, fmt.Errorf("%w: balance %d, debit %d", domain.ErrInsufficientFunds, balance, -req.Coins)
		}

		if err := tx.AppendLedgerEntry(ctx, buildLedgerEntry(req, *character)); err != nil {
			return nil, err
		}
		if err := tx.UpdateBalance(ctx, req.CharacterID, newBalance); err != nil {
			return nil, err
		}
		result.NewBalance = newBalance
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grant result: %w", err)
	}
	if err := tx.CompleteRequest(ctx, req.IdempotencyKey, payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit grant: %w", err)
	}

	return &result, nil
}

// applyExperience advances xp, recomputes the level, and applies level-up
// bonuses to the character in place.
func (s *service) applyExperience(ctx context.Context, character *domain.Character, xp int64, result *domain.GrantResult) {
	character.XP += xp
	progress := leveling.LevelFor(character.XP)

	result.NewXP = character.XP
	result.NewLevel = progress.Level

	if progress.Level <= character.Level {
		character.Level = progress.Level
		return
	}

	levelsGained := progress.Level - character.Level
	reward := domain.LevelUpReward{
		MaxLightGained: levelsGained * LightPerLevel,
	}

	for l := character.Level + 1; l <= progress.Level; l++ {
		if l%StatBonusLevelInterval == 0 {
			reward.StatsGained = reward.StatsGained.Add(domain.StatBlock{
				Discipline: 1, Intellect: 1, Strength: 1, Charisma: 1,
			})
		}
	}

	character.Level = progress.Level
	character.MaxLight += reward.MaxLightGained
	character.Light = character.MaxLight // level-up refills light
	character.Stats = character.Stats.Add(reward.StatsGained)

	result.LeveledUp = true
	result.LevelUpReward = &reward

	logger.FromContext(ctx).Info(LogMsgLevelUp,
		"character_id", character.ID,
		"previous_level", progress.Level-levelsGained,
		"new_level", progress.Level)
}

func (s *service) publishOutcome(ctx context.Context, req domain.GrantRequest, result domain.GrantResult) {
	character, err := s.repo.GetCharacter(ctx, req.CharacterID)
	classID := ""
	if err == nil && character != nil {
		classID = character.ClassID
	}

	_ = s.publisher.Publish(ctx, event.NewXPGrantedEvent(req.CharacterID, classID, result, req.IdempotencyKey))
	if result.LeveledUp {
		_ = s.publisher.Publish(ctx, event.NewLevelUpEvent(req.CharacterID, classID, result))
	}
}

func buildLedgerEntry(req domain.GrantRequest, character domain.Character) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		CharacterID:   character.ID,
		ClassID:       character.ClassID,
		Direction:     domain.DirectionCredit,
		Amount:        req.Coins,
		Reason:        req.Reason,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		ActorID:       req.ActorID,
	}
	if req.Coins < 0 {
		entry.Direction = domain.DirectionDebit
		entry.Amount = -req.Coins
	}
	return entry
}

func validateGrant(req domain.GrantRequest) error {
	if strings.TrimSpace(req.CharacterID) == "" {
		return fmt.Errorf("%w: character id is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return fmt.Errorf("%w: idempotency key is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", domain.ErrInvalidArgument)
	}
	if req.XP < 0 {
		return fmt.Errorf("%w: xp must be non-negative", domain.ErrInvalidArgument)
	}
	if req.XP > MaxXPPerGrant {
		return fmt.Errorf("%w: xp exceeds per-grant cap of %d", domain.ErrInvalidArgument, MaxXPPerGrant)
	}
	if req.XP == 0 && req.Coins == 0 {
		return fmt.Errorf("%w: grant must carry xp or coins", domain.ErrInvalidArgument)
	}
	return nil
}
