package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidTimeParam  = "Invalid %s parameter, expected RFC 3339 timestamp"

	// Character error messages
	ErrMsgCreateCharacterFailed = "Failed to create character"
	ErrMsgGetCharacterFailed    = "Failed to get character"
	ErrMsgGetRosterFailed       = "Failed to get roster"
	ErrMsgArchiveFailed         = "Failed to archive character"

	// Reward error messages
	ErrMsgGrantRewardFailed = "Failed to grant reward"

	// Inventory error messages
	ErrMsgAcquireItemFailed  = "Failed to acquire item"
	ErrMsgEquipItemFailed    = "Failed to equip item"
	ErrMsgUnequipItemFailed  = "Failed to unequip item"
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgInvalidSlot        = "Invalid equipment slot '%s'"

	// Catalog error messages
	ErrMsgListCatalogFailed      = "Failed to list item catalog"
	ErrMsgCreateDefinitionFailed = "Failed to create item definition"

	// Ledger error messages
	ErrMsgGetBalanceFailed   = "Failed to get balance"
	ErrMsgGetStatementFailed = "Failed to get statement"
	ErrMsgVerifyFailed       = "Failed to verify ledger"

	// Selection error messages
	ErrMsgSelectStudentFailed = "Failed to select student"
	ErrMsgListRecentFailed    = "Failed to list recent selections"
)

// Success messages for API responses
const (
	MsgCharacterArchivedSuccess = "Character archived successfully"
	MsgItemEquippedSuccess      = "Item equipped successfully"
	MsgItemUnequippedSuccess    = "Item unequipped successfully"
	MsgEquipmentAppliedSuccess  = "Equipment configuration applied successfully"
)
