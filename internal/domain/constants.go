package domain

// Basis points used for every percentage in the reward economy (10000 = 100%)
const BasisPoints = 10000

// Multiplier and reward limits
const (
	// BaseWeight is the weight every eligible player starts with
	BaseWeight = BasisPoints

	// MaxNFTBonus caps the admin-set NFT bonus (30%)
	MaxNFTBonus = 3000

	// MaxActivityBonus caps the admin-set activity bonus (20%)
	MaxActivityBonus = 2000

	// MaxRewardPercentage caps the share of the pool paid out per settlement (30%)
	MaxRewardPercentage = 3000

	// LeaderboardSize is the number of ranked slots per period
	LeaderboardSize = 10
)

