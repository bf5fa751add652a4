package season

// Log messages
const (
	LogMsgPeriodRolledOver     = "Period rolled over"
	LogMsgRolloverNoWinners    = "Rollover found no eligible players, period left unsettled"
	LogMsgRolloverSettleFailed = "Rollover settlement failed"
	LogMsgPeriodSettled        = "Period settled"
	LogMsgPayoutFailed         = "Payout failed, settlement aborted"
	LogMsgCompensationFailed   = "Failed to reverse payout credit"
	LogMsgAssetLookupFailed    = "Qualifying asset lookup failed"
	LogMsgPoolDeposit          = "Reward pool deposit"
	LogMsgRewardConfigUpdated  = "Reward config updated"
	LogMsgMultiplierUpdated    = "Reward multiplier updated"
)
