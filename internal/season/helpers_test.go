package season

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
)

const testPeriod = 100 * time.Second

type fakeClock struct {
	now atomic.Int64
}

func (c *fakeClock) Now() int64 { return c.now.Load() }

func (c *fakeClock) Set(unix int64) { c.now.Store(unix) }

// fakeTransfer is an in-memory ValueTransfer that records every call
type fakeTransfer struct {
	mu       sync.Mutex
	balances map[string]uint64
	credits  []domain.Payout
	debits   []domain.Payout
	failFor  map[string]error
}

func newFakeTransfer() *fakeTransfer {
	return &fakeTransfer{
		balances: make(map[string]uint64),
		failFor:  make(map[string]error),
	}
}

func (f *fakeTransfer) Credit(ctx context.Context, account string, amount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[account]; err != nil {
		return err
	}
	f.balances[account] += amount
	f.credits = append(f.credits, domain.Payout{Player: account, Amount: amount})
	return nil
}

func (f *fakeTransfer) DebitFrom(ctx context.Context, account string, amount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balances[account] < amount {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientFunds, account)
	}
	f.balances[account] -= amount
	f.debits = append(f.debits, domain.Payout{Player: account, Amount: amount})
	return nil
}

func (f *fakeTransfer) Balance(account string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[account]
}

func (f *fakeTransfer) CreditCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.credits)
}

func (f *fakeTransfer) FailFor(account string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failFor, account)
		return
	}
	f.failFor[account] = err
}

// fakeBatchTransfer adds an all-or-nothing CreditBatch
type fakeBatchTransfer struct {
	*fakeTransfer
	batches int
}

func (f *fakeBatchTransfer) CreditBatch(ctx context.Context, payouts []domain.Payout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range payouts {
		if err := f.failFor[p.Player]; err != nil {
			return err
		}
	}
	for _, p := range payouts {
		f.balances[p.Player] += p.Amount
		f.credits = append(f.credits, p)
	}
	f.batches++
	return nil
}

// MockCharacterData is a mock implementation of CharacterData
type MockCharacterData struct {
	mock.Mock
}

func (m *MockCharacterData) OwnsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	args := m.Called(ctx, player)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterData) LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	args := m.Called(ctx, player, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterStats), args.Error(1)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) OfType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []event.Event
	for _, evt := range p.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

type testEngine struct {
	*Engine
	clock     *fakeClock
	transfer  *fakeTransfer
	publisher *recordingPublisher
}

func defaultRewards() domain.RewardConfig {
	return domain.RewardConfig{RewardPercentage: 1000}
}

func newTestEngine(t *testing.T, rewards domain.RewardConfig, characters CharacterData) *testEngine {
	t.Helper()
	return newTestEngineWithTransfer(t, rewards, characters, newFakeTransfer(), nil)
}

func newTestEngineWithTransfer(t *testing.T, rewards domain.RewardConfig, characters CharacterData, ft *fakeTransfer, transfer ValueTransfer) *testEngine {
	t.Helper()
	clock := &fakeClock{}
	pub := &recordingPublisher{}
	if transfer == nil {
		transfer = ft
	}

	engine, err := NewEngine(Config{PeriodDuration: testPeriod, Rewards: rewards}, clock, transfer, characters, pub)
	require.NoError(t, err)

	var ids atomic.Int64
	engine.newID = func() string { return fmt.Sprintf("settlement-%d", ids.Add(1)) }

	return &testEngine{Engine: engine, clock: clock, transfer: ft, publisher: pub}
}

// atPeriod moves the clock into the middle of period
func (te *testEngine) atPeriod(period uint64) {
	te.clock.Set(int64(period)*int64(testPeriod/time.Second) + 50)
}

func (te *testEngine) fundPool(t *testing.T, amount uint64) {
	t.Helper()
	_, err := te.SkimFee(context.Background(), amount)
	require.NoError(t, err)
}

func (te *testEngine) score(t *testing.T, player string, points uint64) domain.ScoreResult {
	t.Helper()
	res, err := te.ApplyPoints(context.Background(), player, points)
	require.NoError(t, err)
	return res
}

var errTransferDown = errors.New("ledger unavailable")
