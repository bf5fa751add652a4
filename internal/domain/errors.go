package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Settlement errors
	ErrMsgAlreadySettled         = "period already settled"
	ErrMsgNoEligiblePlayers      = "no eligible players"
	ErrMsgFuturePeriodSettlement = "only past periods can be settled"
	ErrMsgSettlementNotFound     = "settlement not found"

	// Arithmetic errors
	ErrMsgArithmeticOverflow = "arithmetic overflow"

	// Transfer errors
	ErrMsgTransferFailed      = "transfer failed"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgAccountNotFound     = "account not found"
	ErrMsgInsufficientBalance = "insufficient pool balance"

	// Admin configuration errors
	ErrMsgPercentageTooHigh = "reward percentage exceeds maximum"
	ErrMsgBonusOutOfRange   = "bonus out of range"

	// Character and quest errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgQuestNotFound     = "quest not found"
	ErrMsgLevelTooLow       = "character level too low"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Settlement errors
	ErrAlreadySettled         = errors.New(ErrMsgAlreadySettled)
	ErrNoEligiblePlayers      = errors.New(ErrMsgNoEligiblePlayers)
	ErrFuturePeriodSettlement = errors.New(ErrMsgFuturePeriodSettlement)
	ErrSettlementNotFound     = errors.New(ErrMsgSettlementNotFound)

	// ErrArithmeticOverflow aborts the triggering operation; no state is mutated.
	ErrArithmeticOverflow = errors.New(ErrMsgArithmeticOverflow)

	// Transfer errors
	ErrTransferFailed      = errors.New(ErrMsgTransferFailed)
	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrAccountNotFound     = errors.New(ErrMsgAccountNotFound)
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)

	// Admin configuration errors
	ErrPercentageTooHigh = errors.New(ErrMsgPercentageTooHigh)
	ErrBonusOutOfRange   = errors.New(ErrMsgBonusOutOfRange)

	// Character and quest errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrQuestNotFound     = errors.New(ErrMsgQuestNotFound)
	ErrLevelTooLow       = errors.New(ErrMsgLevelTooLow)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
