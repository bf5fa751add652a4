package repository

import (
	"context"

	"github.com/osse101/questledger/internal/domain"
)

// Characters defines the interface for character data persistence
type Characters interface {
	OwnsQualifyingAsset(ctx context.Context, player string) (bool, error)
	// LevelAndPower returns nil stats when the player has no such character
	LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error)
	UpsertCharacter(ctx context.Context, player string, stats domain.CharacterStats) error
}
