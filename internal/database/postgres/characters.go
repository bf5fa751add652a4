package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/questledger/internal/domain"
)

// CharacterRepository implements repository.Characters for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// UpsertCharacter stores or replaces one of the player's characters
func (r *CharacterRepository) UpsertCharacter(ctx context.Context, player string, stats domain.CharacterStats) error {
	if player == "" || stats.CharacterID == "" {
		return fmt.Errorf("%w: player and character id are required", domain.ErrInvalidInput)
	}
	level, err := toInt64(stats.Level)
	if err != nil {
		return err
	}
	power, err := toInt64(stats.Power)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO characters (player_id, character_id, level, power, qualifying)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, character_id)
		DO UPDATE SET
			level = EXCLUDED.level,
			power = EXCLUDED.power,
			qualifying = EXCLUDED.qualifying,
			updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, player, stats.CharacterID, level, power, stats.Qualifying); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertCharacter, err)
	}
	return nil
}

// OwnsQualifyingAsset reports whether any of the player's characters qualifies
func (r *CharacterRepository) OwnsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	var owns bool
	query := `SELECT EXISTS (SELECT 1 FROM characters WHERE player_id = $1 AND qualifying)`
	if err := r.db.QueryRow(ctx, query, player).Scan(&owns); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckQualifying, err)
	}
	return owns, nil
}

// LevelAndPower returns the character's stats, or nil if the player has no such character
func (r *CharacterRepository) LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	query := `
		SELECT level, power, qualifying
		FROM characters
		WHERE player_id = $1 AND character_id = $2
	`

	var level, power int64
	stats := domain.CharacterStats{CharacterID: characterID}
	err := r.db.QueryRow(ctx, query, player, characterID).Scan(&level, &power, &stats.Qualifying)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}

	if stats.Level, err = toUint64(level); err != nil {
		return nil, err
	}
	if stats.Power, err = toUint64(power); err != nil {
		return nil, err
	}
	return &stats, nil
}
