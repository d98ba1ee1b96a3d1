package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/character"
	"github.com/classforge/engine/internal/config"
	"github.com/classforge/engine/internal/database/postgres"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/eventlog"
	"github.com/classforge/engine/internal/inventory"
	"github.com/classforge/engine/internal/item"
	"github.com/classforge/engine/internal/ledger"
	"github.com/classforge/engine/internal/repository"
	"github.com/classforge/engine/internal/reward"
	"github.com/classforge/engine/internal/selection"
	"github.com/classforge/engine/internal/server"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Character repository.Character
	Item      repository.Item
	Inventory repository.Inventory
	Ledger    repository.Ledger
	Reward    repository.Reward
	Selection repository.Selection
	EventLog  repository.EventLog
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Character: postgres.NewCharacterRepository(dbPool),
		Item:      postgres.NewItemRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
		Ledger:    postgres.NewLedgerRepository(dbPool),
		Reward:    postgres.NewRewardRepository(dbPool),
		Selection: postgres.NewSelectionRepository(dbPool),
		EventLog:  postgres.NewEventLogRepository(dbPool),
	}
}

// InitializeServices wires the service layer on top of the repositories.
// Services publish committed outcomes through the resilient publisher; the
// configured TxTimeout bounds every mutating transaction attempt.
func InitializeServices(cfg *config.Config, repos *Repositories, publisher event.Bus) server.Services {
	itemService := item.NewService(repos.Item)
	rewardService := reward.NewService(repos.Reward, publisher, cfg.TxTimeout)

	return server.Services{
		Character: character.NewService(repos.Character),
		Item:      itemService,
		Reward:    rewardService,
		Inventory: inventory.NewService(repos.Inventory, repos.Character, itemService, publisher, cfg.TxTimeout),
		Ledger:    ledger.NewService(repos.Ledger),
		Selection: selection.NewService(repos.Selection, rewardService, publisher),
		EventLog:  eventlog.NewService(repos.EventLog),
	}
}
