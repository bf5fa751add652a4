// Package character provides cached access to the character data the reward
// engine and quest service read on every settlement and completion.
package character

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/repository"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

type ownershipEntry struct {
	Version  string
	Owns     bool
	CachedAt time.Time
}

type statsEntry struct {
	Version  string
	Stats    domain.CharacterStats
	CachedAt time.Time
}

// CachedRepository is a read-through cache over a repository.Characters.
// Writes go straight to the store and drop the player's cached entries.
// Lookup errors are never cached.
type CachedRepository struct {
	store     repository.Characters
	ownership *expirable.LRU[string, *ownershipEntry]
	stats     *expirable.LRU[string, *statsEntry]
}

// NewCachedRepository wraps store with caches of the given size and TTL
func NewCachedRepository(store repository.Characters, size int, ttl time.Duration) *CachedRepository {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &CachedRepository{
		store:     store,
		ownership: expirable.NewLRU[string, *ownershipEntry](size, nil, ttl),
		stats:     expirable.NewLRU[string, *statsEntry](size, nil, ttl),
	}
}

func statsKey(player, characterID string) string {
	return player + ":" + characterID
}

// OwnsQualifyingAsset reports whether any of the player's characters qualifies
func (c *CachedRepository) OwnsQualifyingAsset(ctx context.Context, player string) (bool, error) {
	if entry, ok := c.ownership.Get(player); ok {
		if entry.Version == CacheSchemaVersion {
			return entry.Owns, nil
		}
		c.ownership.Remove(player)
	}

	owns, err := c.store.OwnsQualifyingAsset(ctx, player)
	if err != nil {
		return false, err
	}
	c.ownership.Add(player, &ownershipEntry{Version: CacheSchemaVersion, Owns: owns, CachedAt: time.Now()})
	return owns, nil
}

// LevelAndPower returns the character's stats, or nil if the player has no such character.
// Missing characters are not cached so a newly created one is visible immediately.
func (c *CachedRepository) LevelAndPower(ctx context.Context, player, characterID string) (*domain.CharacterStats, error) {
	key := statsKey(player, characterID)
	if entry, ok := c.stats.Get(key); ok {
		if entry.Version == CacheSchemaVersion {
			stats := entry.Stats
			return &stats, nil
		}
		c.stats.Remove(key)
	}

	stats, err := c.store.LevelAndPower(ctx, player, characterID)
	if err != nil || stats == nil {
		return stats, err
	}
	c.stats.Add(key, &statsEntry{Version: CacheSchemaVersion, Stats: *stats, CachedAt: time.Now()})
	return stats, nil
}

// UpsertCharacter writes through to the store and invalidates the player's entries
func (c *CachedRepository) UpsertCharacter(ctx context.Context, player string, stats domain.CharacterStats) error {
	if err := c.store.UpsertCharacter(ctx, player, stats); err != nil {
		return err
	}
	c.Invalidate(player, stats.CharacterID)
	return nil
}

// Invalidate drops the cached ownership of player and the stats of one character
func (c *CachedRepository) Invalidate(player, characterID string) {
	c.ownership.Remove(player)
	c.stats.Remove(statsKey(player, characterID))
}

// Clear removes all entries from the cache
func (c *CachedRepository) Clear() {
	c.ownership.Purge()
	c.stats.Purge()
}
