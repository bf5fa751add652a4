package history

// Listing limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Error Messages
const (
	ErrMsgFailedToRecordSettlement = "failed to record settlement"
	ErrMsgFailedToDecodeSettlement = "failed to decode settlement payload"
)

// Log Messages
const (
	LogMsgSettlementRecorded = "Settlement recorded"
)
