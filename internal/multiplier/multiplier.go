// Package multiplier derives a player's reward weight from their admin-set bonuses.
package multiplier

import (
	"fmt"

	"github.com/osse101/questledger/internal/domain"
)

// Factors are the facts a weight is computed from
type Factors struct {
	Multiplier domain.RewardMultiplier
	// OwnsQualifyingAsset gates the NFT bonus
	OwnsQualifyingAsset bool
	// State is the player's score state, nil if they never scored
	State *domain.PlayerPeriodState
	// Period is the period the activity bonus is judged against
	Period uint64
	// ParticipationThreshold is the period score that unlocks the activity bonus
	ParticipationThreshold uint64
}

// ActivityEligible reports whether the player scored at least threshold in period.
// A player with no state, or whose state belongs to another period, is not eligible.
func ActivityEligible(state *domain.PlayerPeriodState, period, threshold uint64) bool {
	if state == nil || state.Period != period {
		return false
	}
	return state.Score >= threshold
}

// EffectiveWeight returns 10000 plus the bonuses the factors unlock.
// The result is bounded by BaseWeight+MaxNFTBonus+MaxActivityBonus for validated multipliers.
func EffectiveWeight(f Factors) uint64 {
	weight := uint64(domain.BaseWeight)
	if f.OwnsQualifyingAsset {
		weight += f.Multiplier.NFT
	}
	if ActivityEligible(f.State, f.Period, f.ParticipationThreshold) {
		weight += f.Multiplier.Activity
	}
	// Staking is reserved and contributes nothing
	return weight
}

// Validate checks admin-set bonuses against their caps
func Validate(m domain.RewardMultiplier) error {
	if m.NFT > domain.MaxNFTBonus {
		return fmt.Errorf("%w: nft bonus %d exceeds %d", domain.ErrBonusOutOfRange, m.NFT, domain.MaxNFTBonus)
	}
	if m.Activity > domain.MaxActivityBonus {
		return fmt.Errorf("%w: activity bonus %d exceeds %d", domain.ErrBonusOutOfRange, m.Activity, domain.MaxActivityBonus)
	}
	if m.Staking != 0 {
		return fmt.Errorf("%w: staking bonus is not supported", domain.ErrBonusOutOfRange)
	}
	return nil
}

// Registry holds per-player multipliers. Absent players have zero bonuses.
// Not safe for concurrent use.
type Registry struct {
	multipliers map[string]domain.RewardMultiplier
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{multipliers: make(map[string]domain.RewardMultiplier)}
}

// Get returns the player's multiplier, zero bonuses when never set
func (r *Registry) Get(player string) domain.RewardMultiplier {
	return r.multipliers[player]
}

// Set validates and stores the player's multiplier
func (r *Registry) Set(player string, m domain.RewardMultiplier) error {
	if err := Validate(m); err != nil {
		return err
	}
	if m == (domain.RewardMultiplier{}) {
		delete(r.multipliers, player)
		return nil
	}
	r.multipliers[player] = m
	return nil
}
