package season

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
)

// staticCharacters answers asset ownership from a fixed set
type staticCharacters map[string]bool

func (s staticCharacters) OwnsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	return s[player], nil
}

func (s staticCharacters) LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	return nil, nil
}

// failingReversal refuses every debit so compensation cannot succeed
type failingReversal struct {
	*fakeTransfer
}

func (f failingReversal) DebitFrom(ctx context.Context, account string, amount uint64) error {
	return errors.New("debit rejected")
}

func TestSettle_EqualWeights(t *testing.T) {
	te := newTestEngine(t, domain.RewardConfig{RewardPercentage: 1000}, nil)
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "A", 300)
	te.score(t, "B", 200)

	dist, err := te.Settle(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(100), dist.Budget)
	assert.Equal(t, uint64(20000), dist.TotalWeight)
	require.Len(t, dist.Payouts, 2)
	for _, p := range dist.Payouts {
		assert.Equal(t, uint64(10000), p.Weight)
		assert.Equal(t, uint64(5000), p.Share)
		assert.Equal(t, uint64(50), p.Amount)
	}
	assert.Equal(t, uint64(100), dist.Total)
	assert.Zero(t, dist.Dust)
	assert.Equal(t, uint64(1000), dist.PoolBefore)
	assert.Equal(t, uint64(900), te.PoolBalance())
	assert.Equal(t, uint64(50), te.transfer.Balance("A"))
	assert.Equal(t, uint64(50), te.transfer.Balance("B"))
	assert.True(t, te.Leaderboard(1).Settled)
	assert.Equal(t, "settlement-1", dist.ID)
}

func TestSettle_WeightedSkewLeavesDust(t *testing.T) {
	chars := new(MockCharacterData)
	chars.On("OwnsQualifyingAsset", mock.Anything, "X").Return(false, nil)
	chars.On("OwnsQualifyingAsset", mock.Anything, "Y").Return(false, nil)
	chars.On("OwnsQualifyingAsset", mock.Anything, "Z").Return(true, nil)

	te := newTestEngine(t, domain.RewardConfig{RewardPercentage: 1000}, chars)
	ctx := context.Background()
	require.NoError(t, te.SetMultiplier(ctx, "Z", domain.RewardMultiplier{NFT: 3000}))
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "X", 300)
	te.score(t, "Y", 200)
	te.score(t, "Z", 100)

	dist, err := te.Settle(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(33000), dist.TotalWeight)
	require.Len(t, dist.Payouts, 3)

	// paid in rank order
	assert.Equal(t, []string{"X", "Y", "Z"}, []string{dist.Payouts[0].Player, dist.Payouts[1].Player, dist.Payouts[2].Player})
	assert.Equal(t, uint64(3030), dist.Payouts[0].Share)
	assert.Equal(t, uint64(3030), dist.Payouts[1].Share)
	assert.Equal(t, uint64(3939), dist.Payouts[2].Share)
	assert.Equal(t, uint64(30), dist.Payouts[0].Amount)
	assert.Equal(t, uint64(30), dist.Payouts[1].Amount)
	assert.Equal(t, uint64(39), dist.Payouts[2].Amount)

	assert.Equal(t, uint64(99), dist.Total)
	assert.Equal(t, uint64(1), dist.Dust)
	assert.Equal(t, uint64(901), te.PoolBalance(), "dust stays in the pool")
	chars.AssertExpectations(t)
}

func TestSettle_ActivityBonusUsesSettledPeriodScore(t *testing.T) {
	te := newTestEngine(t, domain.RewardConfig{RewardPercentage: 1000, ParticipationThreshold: 150}, nil)
	ctx := context.Background()
	require.NoError(t, te.SetMultiplier(ctx, "A", domain.RewardMultiplier{Activity: 2000}))
	require.NoError(t, te.SetMultiplier(ctx, "B", domain.RewardMultiplier{Activity: 2000}))
	te.fundPool(t, 1000)

	te.atPeriod(1)
	te.score(t, "A", 200)
	te.score(t, "B", 100)

	te.atPeriod(2)
	_, err := te.Advance(ctx)
	require.NoError(t, err)

	dist := te.publisher.OfType("period.settled")[0].Payload.(domain.Distribution)
	assert.Equal(t, uint64(12000), dist.Payouts[0].Weight)
	assert.Equal(t, uint64(10000), dist.Payouts[1].Weight)
}

func TestSettle_MinimumScoreCutIsPositional(t *testing.T) {
	te := newTestEngine(t, domain.RewardConfig{RewardPercentage: 1000, MinimumScore: 50}, nil)
	te.fundPool(t, 1000)
	te.atPeriod(1)
	for i, s := range []uint64{200, 100, 40, 30, 20} {
		te.score(t, fmt.Sprintf("p%d", i), s)
	}

	dist, err := te.Settle(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, dist.Payouts, 2)
	assert.Equal(t, "p0", dist.Payouts[0].Player)
	assert.Equal(t, "p1", dist.Payouts[1].Player)
	assert.Zero(t, te.transfer.Balance("p2"))
}

func TestEligibleEntries(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{Position: 0, Player: "a", Score: 200},
		{Position: 1, Player: "b", Score: 100},
		{Position: 2, Player: "c", Score: 40},
		{Position: 3, Player: "d", Score: 90}, // unreachable behind the cut
	}
	got := eligibleEntries(entries, 50)
	assert.Len(t, got, 2)
	assert.Empty(t, eligibleEntries(entries, 500))
	assert.Len(t, eligibleEntries(entries, 0), 4)
	assert.Empty(t, eligibleEntries(nil, 0))
}

func TestSettle_Idempotent(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "A", 100)

	_, err := te.Settle(context.Background(), 1)
	require.NoError(t, err)
	pool := te.PoolBalance()

	_, err = te.Settle(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)

	te.atPeriod(2)
	_, err = te.ForceSettle(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)

	assert.Equal(t, pool, te.PoolBalance())
	assert.Equal(t, 1, te.transfer.CreditCount())
}

func TestSettle_NoEligiblePlayers(t *testing.T) {
	te := newTestEngine(t, domain.RewardConfig{RewardPercentage: 1000, MinimumScore: 500}, nil)
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "A", 100)

	_, err := te.Settle(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNoEligiblePlayers)
	assert.False(t, te.Leaderboard(1).Settled)
	assert.Equal(t, uint64(1000), te.PoolBalance())

	_, err = te.Settle(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNoEligiblePlayers)

	// lowering the floor makes the period settleable
	require.NoError(t, te.UpdateRewardConfig(context.Background(), domain.RewardConfig{RewardPercentage: 1000, MinimumScore: 100}))
	_, err = te.Settle(context.Background(), 1)
	assert.NoError(t, err)
}

func TestSettle_EmptyPoolStillSettles(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	te.atPeriod(1)
	te.score(t, "A", 100)

	dist, err := te.Settle(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, dist.Total)
	assert.Zero(t, te.transfer.CreditCount(), "zero payouts are not sent")
	assert.True(t, te.Leaderboard(1).Settled)
}

func TestForceSettle_RejectsCurrentAndFuturePeriods(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	te.fundPool(t, 1000)
	te.atPeriod(3)
	te.score(t, "A", 100)

	_, err := te.ForceSettle(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrFuturePeriodSettlement)
	_, err = te.ForceSettle(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrFuturePeriodSettlement)
	assert.False(t, te.Leaderboard(3).Settled)
}

func TestSettle_PartialFailureReversesCredits(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "A", 300)
	te.score(t, "B", 200)
	te.score(t, "C", 100)
	te.transfer.FailFor("B", errTransferDown)

	_, err := te.Settle(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.ErrorIs(t, err, errTransferDown)

	assert.Zero(t, te.transfer.Balance("A"), "A's credit must be reversed")
	assert.Zero(t, te.transfer.Balance("C"))
	assert.Equal(t, uint64(1000), te.PoolBalance())
	assert.False(t, te.Leaderboard(1).Settled, "period stays retryable")

	te.transfer.FailFor("B", nil)
	dist, err := te.Settle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), dist.Total)
}

func TestSettle_FailedReversalIsReported(t *testing.T) {
	ft := newFakeTransfer()
	te := newTestEngineWithTransfer(t, defaultRewards(), nil, ft, failingReversal{ft})
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "A", 300)
	te.score(t, "B", 200)
	ft.FailFor("B", errTransferDown)

	_, err := te.Settle(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.Contains(t, err.Error(), "reverse credit to A")
	assert.False(t, te.Leaderboard(1).Settled)
}

func TestSettle_PrefersBatchCrediter(t *testing.T) {
	ft := newFakeTransfer()
	batch := &fakeBatchTransfer{fakeTransfer: ft}
	te := newTestEngineWithTransfer(t, defaultRewards(), nil, ft, batch)
	te.fundPool(t, 1000)
	te.atPeriod(1)
	te.score(t, "A", 300)
	te.score(t, "B", 200)

	ft.FailFor("B", errTransferDown)
	_, err := te.Settle(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.Zero(t, ft.Balance("A"))

	ft.FailFor("B", nil)
	_, err = te.Settle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, batch.batches)
	assert.Equal(t, uint64(50), ft.Balance("A"))
	assert.Equal(t, uint64(50), ft.Balance("B"))
}

func TestSettle_ConservationAndRounding(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		owners := staticCharacters{}
		rewards := domain.RewardConfig{
			RewardPercentage: uint64(rng.Intn(domain.MaxRewardPercentage + 1)),
			MinimumScore:     uint64(rng.Intn(20)),
		}
		te := newTestEngine(t, rewards, owners)
		ctx := context.Background()

		pool := uint64(rng.Int63n(1_000_000_000_000))
		te.fundPool(t, pool)
		te.atPeriod(1)

		n := 1 + rng.Intn(15)
		for i := 0; i < n; i++ {
			player := fmt.Sprintf("p%d", i)
			owners[player] = rng.Intn(2) == 0
			require.NoError(t, te.SetMultiplier(ctx, player, domain.RewardMultiplier{
				NFT:      uint64(rng.Intn(domain.MaxNFTBonus + 1)),
				Activity: uint64(rng.Intn(domain.MaxActivityBonus + 1)),
			}))
			te.score(t, player, uint64(20+rng.Intn(1000)))
		}

		dist, err := te.Settle(ctx, 1)
		require.NoError(t, err)

		var paid uint64
		for _, p := range dist.Payouts {
			paid += p.Amount
			assert.Equal(t, p.Amount, te.transfer.Balance(p.Player))
		}
		budget := pool * rewards.RewardPercentage / domain.BasisPoints

		assert.Equal(t, paid, dist.Total)
		assert.Equal(t, budget, dist.Budget)
		assert.LessOrEqual(t, dist.Total, budget)
		assert.Equal(t, budget-dist.Total, dist.Dust)
		assert.Equal(t, pool-dist.Total, te.PoolBalance())
		assert.LessOrEqual(t, len(dist.Payouts), domain.LeaderboardSize)
	}
}
