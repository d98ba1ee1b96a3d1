package repository

import "context"

// Tx defines the contract shared by all transactional handles
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
