package season

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
)

func TestDeposit(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	te.transfer.balances["treasury"] = 500
	ctx := context.Background()

	balance, err := te.Deposit(ctx, "treasury", 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), balance)
	assert.Equal(t, uint64(300), te.transfer.Balance("treasury"))

	deposits := te.publisher.OfType(event.PoolDeposit)
	require.Len(t, deposits, 1)
	payload := deposits[0].Payload.(domain.PoolDepositPayload)
	assert.Equal(t, domain.DepositSourceExternal, payload.Source)
	assert.Equal(t, "treasury", payload.Account)
}

func TestDeposit_Failures(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	te.transfer.balances["treasury"] = 100
	ctx := context.Background()

	_, err := te.Deposit(ctx, "treasury", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = te.Deposit(ctx, "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = te.Deposit(ctx, "treasury", 1000)
	assert.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Zero(t, te.PoolBalance())

	te.fundPool(t, math.MaxUint64)
	_, err = te.Deposit(ctx, "treasury", 1)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
	assert.Equal(t, uint64(100), te.transfer.Balance("treasury"), "overflow is detected before the debit")
}

func TestSkimFee(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	ctx := context.Background()

	balance, err := te.SkimFee(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), balance)

	balance, err = te.SkimFee(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), balance)
	assert.Len(t, te.publisher.OfType(event.PoolDeposit), 1, "empty fees are not announced")

	_, err = te.SkimFee(ctx, math.MaxUint64)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
	assert.Equal(t, uint64(12), te.PoolBalance())
}

func TestUpdateRewardConfig(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	ctx := context.Background()

	err := te.UpdateRewardConfig(ctx, domain.RewardConfig{RewardPercentage: domain.MaxRewardPercentage + 1})
	assert.ErrorIs(t, err, domain.ErrPercentageTooHigh)
	assert.Equal(t, defaultRewards(), te.RewardConfig())

	cfg := domain.RewardConfig{RewardPercentage: domain.MaxRewardPercentage, MinimumScore: 10, ParticipationThreshold: 20}
	require.NoError(t, te.UpdateRewardConfig(ctx, cfg))
	assert.Equal(t, cfg, te.RewardConfig())

	require.NoError(t, te.SetRewardPercentage(ctx, 500))
	assert.Equal(t, uint64(500), te.RewardConfig().RewardPercentage)
	assert.Equal(t, uint64(10), te.RewardConfig().MinimumScore)

	require.NoError(t, te.SetMinimumScore(ctx, 0))
	require.NoError(t, te.SetParticipationThreshold(ctx, 75))
	assert.Equal(t, domain.RewardConfig{RewardPercentage: 500, ParticipationThreshold: 75}, te.RewardConfig())
}

func TestSetMultiplier(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	ctx := context.Background()

	require.NoError(t, te.SetMultiplier(ctx, "alice", domain.RewardMultiplier{NFT: 1000, Activity: 500}))
	assert.Equal(t, domain.RewardMultiplier{NFT: 1000, Activity: 500}, te.Multiplier("alice"))

	err := te.SetMultiplier(ctx, "alice", domain.RewardMultiplier{Activity: domain.MaxActivityBonus + 1})
	assert.ErrorIs(t, err, domain.ErrBonusOutOfRange)
	assert.Equal(t, uint64(500), te.Multiplier("alice").Activity)

	assert.ErrorIs(t, te.SetMultiplier(ctx, "", domain.RewardMultiplier{}), domain.ErrInvalidInput)
}

func TestPeriodBounds(t *testing.T) {
	te := newTestEngine(t, defaultRewards(), nil)
	start, end := te.PeriodBounds(3)
	assert.Equal(t, int64(300), start.Unix())
	assert.Equal(t, int64(400), end.Unix())
}
