package item

import "time"

// Catalog cache configuration
const (
	// DefaultCacheSize is the maximum number of cached item definitions
	DefaultCacheSize = 256

	// DefaultCacheTTL is the time-to-live for cached definitions
	DefaultCacheTTL = 5 * time.Minute
)

// Log message constants
const (
	LogMsgDefinitionCacheHit = "Item definition served from cache"
	LogMsgDefinitionLoaded   = "Item definition loaded from store"
	LogMsgDefinitionCreated  = "Item definition created"
	LogMsgCatalogListed      = "Item catalog listed"
	LogMsgInvalidDefinition  = "Rejected invalid item definition"
	LogMsgCacheInvalidated   = "Item definition cache invalidated"
)
