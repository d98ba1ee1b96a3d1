package inventory

// Log message constants
const (
	LogMsgItemAcquired   = "Item added to inventory"
	LogMsgItemEquipped   = "Item equipped"
	LogMsgItemUnequipped = "Item unequipped"
	LogMsgEquipNoOp      = "Item already in requested state"
	LogMsgBatchApplied   = "Equipment configuration applied"
	LogMsgInvalidEquip   = "Rejected invalid equip request"
)
