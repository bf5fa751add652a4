package multiplier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
)

func TestEffectiveWeight(t *testing.T) {
	bonus := domain.RewardMultiplier{NFT: 3000, Activity: 2000}
	scored := &domain.PlayerPeriodState{Period: 5, Score: 120}

	tests := []struct {
		name     string
		factors  Factors
		expected uint64
	}{
		{"no config", Factors{}, 10000},
		{"nft without asset", Factors{Multiplier: bonus}, 10000},
		{"nft with asset", Factors{Multiplier: bonus, OwnsQualifyingAsset: true}, 13000},
		{
			name:     "activity above threshold",
			factors:  Factors{Multiplier: bonus, State: scored, Period: 5, ParticipationThreshold: 100},
			expected: 12000,
		},
		{
			name:     "activity at threshold",
			factors:  Factors{Multiplier: bonus, State: scored, Period: 5, ParticipationThreshold: 120},
			expected: 12000,
		},
		{
			name:     "activity below threshold",
			factors:  Factors{Multiplier: bonus, State: scored, Period: 5, ParticipationThreshold: 121},
			expected: 10000,
		},
		{
			name:     "activity in stale period",
			factors:  Factors{Multiplier: bonus, State: scored, Period: 6, ParticipationThreshold: 0},
			expected: 10000,
		},
		{
			name: "all bonuses",
			factors: Factors{
				Multiplier: bonus, OwnsQualifyingAsset: true,
				State: scored, Period: 5, ParticipationThreshold: 50,
			},
			expected: 15000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveWeight(tt.factors))
		})
	}
}

func TestActivityEligible_NoState(t *testing.T) {
	assert.False(t, ActivityEligible(nil, 0, 0))
	assert.True(t, ActivityEligible(&domain.PlayerPeriodState{Period: 0, Score: 0}, 0, 0))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(domain.RewardMultiplier{NFT: 3000, Activity: 2000}))

	err := Validate(domain.RewardMultiplier{NFT: 3001})
	assert.ErrorIs(t, err, domain.ErrBonusOutOfRange)

	err = Validate(domain.RewardMultiplier{Activity: 2001})
	assert.ErrorIs(t, err, domain.ErrBonusOutOfRange)

	err = Validate(domain.RewardMultiplier{Staking: 1})
	assert.ErrorIs(t, err, domain.ErrBonusOutOfRange)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, domain.RewardMultiplier{}, r.Get("alice"))

	require.NoError(t, r.Set("alice", domain.RewardMultiplier{NFT: 1500}))
	assert.Equal(t, uint64(1500), r.Get("alice").NFT)

	err := r.Set("alice", domain.RewardMultiplier{NFT: 9000})
	assert.ErrorIs(t, err, domain.ErrBonusOutOfRange)
	assert.Equal(t, uint64(1500), r.Get("alice").NFT, "rejected update must not change the stored value")

	require.NoError(t, r.Set("alice", domain.RewardMultiplier{}))
	assert.Equal(t, domain.RewardMultiplier{}, r.Get("alice"))
}
