package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
)

// SafeRollback rolls back tx. A rollback after commit reports the
// transaction as closed; that is the normal deferred-rollback path and is
// not logged. Anything else is.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || err.Error() == domain.ErrMsgTxClosed {
		return
	}
	logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
}
