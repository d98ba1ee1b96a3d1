package worker

import (
	"context"
	"sync"
	"time"

	"github.com/classforge/engine/internal/ledger"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/repository"
)

// ConservationAuditWorker periodically recomputes every account balance from
// its ledger entries and reports divergence. Mismatches are logged and
// counted but never auto-corrected; the ledger is the source of truth and a
// divergent cached balance needs a human decision.
type ConservationAuditWorker struct {
	ledgerSvc ledger.Service
	accounts  repository.Ledger
	interval  time.Duration
	batchSize int

	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	timer    *time.Timer
}

// NewConservationAuditWorker creates a new audit worker. Zero values for
// interval and batchSize fall back to the defaults.
func NewConservationAuditWorker(ledgerSvc ledger.Service, accounts repository.Ledger, interval time.Duration, batchSize int) *ConservationAuditWorker {
	if interval <= 0 {
		interval = DefaultAuditInterval
	}
	if batchSize <= 0 {
		batchSize = DefaultAuditBatchSize
	}
	return &ConservationAuditWorker{
		ledgerSvc: ledgerSvc,
		accounts:  accounts,
		interval:  interval,
		batchSize: batchSize,
		shutdown:  make(chan struct{}),
	}
}

// Start schedules the first sweep
func (w *ConservationAuditWorker) Start() {
	w.scheduleNext()
}

func (w *ConservationAuditWorker) scheduleNext() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.interval, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.executeSweep()
		w.scheduleNext()
	})
}

// executeSweep runs one full pass over all accounts in a tracked goroutine
func (w *ConservationAuditWorker) executeSweep() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		if err := w.RunSweep(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgAuditSweepFailed, "error", err)
		}
	}()
}

// RunSweep pages through every ledger account and verifies conservation.
// Exported so operators can trigger an immediate sweep.
func (w *ConservationAuditWorker) RunSweep(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAuditSweepStarting, "batch_size", w.batchSize)

	checked := 0
	mismatches := 0

	for offset := 0; ; offset += w.batchSize {
		ids, err := w.accounts.ListAccountCharacterIDs(ctx, w.batchSize, offset)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			break
		}

		for _, characterID := range ids {
			report, err := w.ledgerSvc.VerifyConservation(ctx, characterID)
			if err != nil {
				return err
			}
			checked++
			if !report.Consistent {
				mismatches++
				log.Error(LogMsgAuditMismatchFound,
					"character_id", characterID,
					"cached_balance", report.CachedBalance,
					"derived_sum", report.DerivedSum)
			}
		}

		if len(ids) < w.batchSize {
			break
		}
	}

	log.Info(LogMsgAuditSweepCompleted, "accounts_checked", checked, "mismatches", mismatches)
	return nil
}

// Shutdown cancels the pending sweep timer and waits for an in-flight sweep
func (w *ConservationAuditWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down conservation audit worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Conservation audit worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Conservation audit worker shutdown timeout")
		return ctx.Err()
	}
}
