package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeNumericOutOfRange is raised when a BIGINT balance would overflow
	PgErrorCodeNumericOutOfRange = "22003"
)

// Ledger entry reasons
const (
	LedgerReasonCredit = "credit"
	LedgerReasonDebit  = "debit"
	LedgerReasonPayout = "payout"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Account Operations
const (
	ErrMsgFailedToCreditAccount   = "failed to credit account"
	ErrMsgFailedToDebitAccount    = "failed to debit account"
	ErrMsgFailedToGetBalance      = "failed to get balance"
	ErrMsgFailedToRecordLedgerRow = "failed to record ledger entry"
	ErrMsgFailedToCheckAccount    = "failed to check account"
	ErrMsgFailedToQueryAccounts   = "failed to query accounts"
	ErrMsgFailedToScanAccount     = "failed to scan account"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToUpsertCharacter = "failed to upsert character"
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToCheckQualifying = "failed to check qualifying characters"
)

// Error Messages - Settlement Operations
const (
	ErrMsgFailedToMarshalPayouts   = "failed to marshal payouts"
	ErrMsgFailedToUnmarshalPayouts = "failed to unmarshal payouts"
	ErrMsgFailedToInsertSettlement = "failed to insert settlement"
	ErrMsgFailedToGetSettlement    = "failed to get settlement"
	ErrMsgFailedToQuerySettlements = "failed to query settlements"
	ErrMsgFailedToScanSettlement   = "failed to scan settlement"
)

// Error Messages - Iteration
const (
	ErrMsgRowIteration = "row iteration error"
)
