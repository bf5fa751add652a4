package character

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/repository"
	"github.com/osse101/questledger/internal/season"
)

var (
	_ repository.Characters = (*CachedRepository)(nil)
	_ season.CharacterData  = (*CachedRepository)(nil)
)

type MockCharacters struct {
	mock.Mock
}

func (m *MockCharacters) OwnsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	args := m.Called(ctx, player)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacters) LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	args := m.Called(ctx, player, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterStats), args.Error(1)
}

func (m *MockCharacters) UpsertCharacter(ctx context.Context, player string, stats domain.CharacterStats) error {
	args := m.Called(ctx, player, stats)
	return args.Error(0)
}

func TestOwnsQualifyingAsset_CachesResult(t *testing.T) {
	store := new(MockCharacters)
	store.On("OwnsQualifyingAsset", mock.Anything, "alice").Return(true, nil).Once()

	cache := NewCachedRepository(store, 10, time.Minute)
	for i := 0; i < 3; i++ {
		owns, err := cache.OwnsQualifyingAsset(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, owns)
	}
	store.AssertNumberOfCalls(t, "OwnsQualifyingAsset", 1)
}

func TestOwnsQualifyingAsset_ErrorsAreNotCached(t *testing.T) {
	store := new(MockCharacters)
	store.On("OwnsQualifyingAsset", mock.Anything, "alice").Return(false, errors.New("db down")).Once()
	store.On("OwnsQualifyingAsset", mock.Anything, "alice").Return(true, nil).Once()

	cache := NewCachedRepository(store, 10, time.Minute)
	_, err := cache.OwnsQualifyingAsset(context.Background(), "alice")
	require.Error(t, err)

	owns, err := cache.OwnsQualifyingAsset(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, owns)
}

func TestLevelAndPower_MissingIsNotCached(t *testing.T) {
	store := new(MockCharacters)
	knight := &domain.CharacterStats{CharacterID: "knight", Level: 5, Power: 50}
	store.On("LevelAndPower", mock.Anything, "bob", "knight").Return(nil, nil).Once()
	store.On("LevelAndPower", mock.Anything, "bob", "knight").Return(knight, nil).Once()

	cache := NewCachedRepository(store, 10, time.Minute)
	ctx := context.Background()

	stats, err := cache.LevelAndPower(ctx, "bob", "knight")
	require.NoError(t, err)
	assert.Nil(t, stats)

	stats, err = cache.LevelAndPower(ctx, "bob", "knight")
	require.NoError(t, err)
	assert.Equal(t, knight, stats)

	// now served from cache
	stats, err = cache.LevelAndPower(ctx, "bob", "knight")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), stats.Level)
	store.AssertNumberOfCalls(t, "LevelAndPower", 2)
}

func TestUpsertCharacter_Invalidates(t *testing.T) {
	store := new(MockCharacters)
	ctx := context.Background()
	mage := domain.CharacterStats{CharacterID: "mage", Level: 2, Qualifying: true}

	store.On("OwnsQualifyingAsset", mock.Anything, "carol").Return(false, nil).Once()
	store.On("UpsertCharacter", mock.Anything, "carol", mage).Return(nil).Once()
	store.On("OwnsQualifyingAsset", mock.Anything, "carol").Return(true, nil).Once()

	cache := NewCachedRepository(store, 10, time.Minute)

	owns, err := cache.OwnsQualifyingAsset(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, owns)

	require.NoError(t, cache.UpsertCharacter(ctx, "carol", mage))

	owns, err = cache.OwnsQualifyingAsset(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, owns)
	store.AssertExpectations(t)
}

func TestCache_Expires(t *testing.T) {
	store := new(MockCharacters)
	store.On("OwnsQualifyingAsset", mock.Anything, "dave").Return(false, nil).Twice()

	cache := NewCachedRepository(store, 10, 20*time.Millisecond)
	ctx := context.Background()

	_, err := cache.OwnsQualifyingAsset(ctx, "dave")
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	_, err = cache.OwnsQualifyingAsset(ctx, "dave")
	require.NoError(t, err)

	store.AssertNumberOfCalls(t, "OwnsQualifyingAsset", 2)
}

func TestCache_Clear(t *testing.T) {
	store := new(MockCharacters)
	store.On("OwnsQualifyingAsset", mock.Anything, "erin").Return(true, nil).Twice()

	cache := NewCachedRepository(store, 10, time.Minute)
	ctx := context.Background()

	_, _ = cache.OwnsQualifyingAsset(ctx, "erin")
	cache.Clear()
	_, _ = cache.OwnsQualifyingAsset(ctx, "erin")

	store.AssertNumberOfCalls(t, "OwnsQualifyingAsset", 2)
}
