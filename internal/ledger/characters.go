package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/questledger/internal/domain"
)

// MemoryCharacters is an in-memory repository.Characters
type MemoryCharacters struct {
	mu         sync.RWMutex
	characters map[string]map[string]domain.CharacterStats
}

// NewMemoryCharacters creates an empty character store
func NewMemoryCharacters() *MemoryCharacters {
	return &MemoryCharacters{characters: make(map[string]map[string]domain.CharacterStats)}
}

// UpsertCharacter stores or replaces one of the player's characters
func (m *MemoryCharacters) UpsertCharacter(ctx context.Context, player string, stats domain.CharacterStats) error {
	if player == "" || stats.CharacterID == "" {
		return fmt.Errorf("%w: player and character id are required", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	owned, ok := m.characters[player]
	if !ok {
		owned = make(map[string]domain.CharacterStats)
		m.characters[player] = owned
	}
	owned[stats.CharacterID] = stats
	return nil
}

// OwnsQualifyingAsset reports whether any of the player's characters qualifies
func (m *MemoryCharacters) OwnsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.characters[player] {
		if c.Qualifying {
			return true, nil
		}
	}
	return false, nil
}

// LevelAndPower returns the character's stats, or nil if the player has no such character
func (m *MemoryCharacters) LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.characters[player][characterID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
