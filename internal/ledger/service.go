package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/metrics"
	"github.com/classforge/engine/internal/repository"
)

// Service defines the read surface of the currency ledger
type Service interface {
	GetBalance(ctx context.Context, characterID string) (int64, error)
	GetStatement(ctx context.Context, characterID string, filter domain.LedgerFilter) (*domain.Statement, error)
	// VerifyConservation recomputes credits minus debits for the account and
	// compares the sum to the cached balance
	VerifyConservation(ctx context.Context, characterID string) (*domain.ConservationReport, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, characterID string) (int64, error) {
	if strings.TrimSpace(characterID) == "" {
		return 0, fmt.Errorf("%w: character id is required", domain.ErrInvalidArgument)
	}
	return s.repo.GetBalance(ctx, characterID)
}

func (s *service) GetStatement(ctx context.Context, characterID string, filter domain.LedgerFilter) (*domain.Statement, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(characterID) == "" {
		return nil, fmt.Errorf("%w: character id is required", domain.ErrInvalidArgument)
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultStatementLimit
	}
	if filter.Limit > MaxStatementLimit {
		filter.Limit = MaxStatementLimit
	}

	statement, err := s.repo.GetStatement(ctx, characterID, filter)
	if err != nil {
		return nil, err
	}

	log.Debug(LogMsgStatementServed,
		"character_id", characterID,
		"entries", len(statement.Entries))
	return statement, nil
}

func (s *service) VerifyConservation(ctx context.Context, characterID string) (*domain.ConservationReport, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(characterID) == "" {
		return nil, fmt.Errorf("%w: character id is required", domain.ErrInvalidArgument)
	}

	report, err := s.repo.GetConservation(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if report.Consistent {
		log.Debug(LogMsgConservationVerified, "character_id", characterID)
		return report, nil
	}

	metrics.ConservationFailures.Inc()
	log.Error(LogMsgConservationViolation,
		"character_id", characterID,
		"cached_balance", report.CachedBalance,
		"derived_sum", report.DerivedSum)
	return report, nil
}
