package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidPeriod         = "Invalid period"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidPlayer         = "Invalid player"
	ErrMsgSSEUnsupported        = "Streaming unsupported"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
	ErrMsgAlreadySettledError    = "Period has already been settled"
	ErrMsgNoEligiblePlayersError = "No eligible players for this period"
	ErrMsgFuturePeriodError      = "Only periods that have ended can be settled"
	ErrMsgSettlementNotFoundErr  = "Settlement not found"
	ErrMsgOverflowError          = "Amount is too large"
	ErrMsgInsufficientFundsError = "Not enough funds"
	ErrMsgAccountNotFoundError   = "Account not found"
	ErrMsgPoolTooSmallError      = "Reward pool balance is too low"
	ErrMsgPercentageTooHighError = "Reward percentage exceeds the maximum of 3000 basis points"
	ErrMsgBonusOutOfRangeError   = "Bonus is out of range"
	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgQuestNotFoundError     = "Quest not found"
	ErrMsgLevelTooLowError       = "Character level is too low for this quest"
	ErrMsgTransferFailedError    = "Transfer failed. Please try again."
)

// Success messages for API responses
const (
	MsgRewardConfigUpdated = "Reward config updated"
	MsgMultiplierUpdated   = "Multiplier updated"
	MsgRolloverAdvanced    = "Season advanced to a new period"
	MsgRolloverUnchanged   = "Season already in the current period"
)

// Log messages
const (
	LogMsgEncodeResponseFailed = "Failed to encode JSON response"
	LogMsgWriteResponseFailed  = "Failed to write response buffer"
	LogMsgReadinessFailed      = "Readiness check failed"
	LogMsgRequestFailed        = "Request failed"
	LogMsgForceSettle          = "Admin force settle"
)

// Query and path parameter names
const (
	ParamPeriod = "period"
	ParamPlayer = "player"
	ParamLimit  = "limit"
)
