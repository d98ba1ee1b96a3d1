package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgCharacterArchived = "character is archived"

	// Item errors
	ErrMsgItemNotFound       = "item not found"
	ErrMsgItemNotOwned       = "item not in inventory"
	ErrMsgDefinitionNotFound = "item definition not found"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgBalanceMismatch   = "ledger balance mismatch"
	ErrMsgAccountNotFound   = "ledger account not found"

	// Reward errors
	ErrMsgInvalidArgument = "invalid argument"
	ErrMsgGrantInFlight   = "grant already in flight"
	ErrMsgResultConflict  = "idempotency key resolved to a different outcome"

	// Equip errors
	ErrMsgSlotMismatch       = "item category does not match slot"
	ErrMsgLevelRequirement   = "level requirement not met"
	ErrMsgPreconditionFailed = "precondition failed"

	// Selection errors
	ErrMsgEmptyPool = "no eligible students in pool"

	// Store errors
	ErrMsgTransientStore = "transient store error"
	ErrMsgTxClosed       = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the engine.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Character errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrCharacterArchived = errors.New(ErrMsgCharacterArchived)

	// Item errors
	ErrItemNotFound       = errors.New(ErrMsgItemNotFound)
	ErrItemNotOwned       = errors.New(ErrMsgItemNotOwned)
	ErrDefinitionNotFound = errors.New(ErrMsgDefinitionNotFound)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrBalanceMismatch   = errors.New(ErrMsgBalanceMismatch)
	ErrAccountNotFound   = errors.New(ErrMsgAccountNotFound)

	// Reward errors
	ErrInvalidArgument = errors.New(ErrMsgInvalidArgument)
	ErrGrantInFlight   = errors.New(ErrMsgGrantInFlight)
	ErrResultConflict  = errors.New(ErrMsgResultConflict)

	// Equip errors
	ErrSlotMismatch       = errors.New(ErrMsgSlotMismatch)
	ErrLevelRequirement   = errors.New(ErrMsgLevelRequirement)
	ErrPreconditionFailed = errors.New(ErrMsgPreconditionFailed)

	// Selection errors
	ErrEmptyPool = errors.New(ErrMsgEmptyPool)

	// Store errors
	ErrTransientStore = errors.New(ErrMsgTransientStore)
)
