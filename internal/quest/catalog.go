package quest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/validation"
)

// LoadCatalog reads a quest catalog file, checks it against the catalog schema and parses it
func LoadCatalog(path string) ([]domain.QuestTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadCatalog, err)
	}

	if err := validation.NewSchemaValidator().ValidateBytes(data, CatalogSchemaPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes a catalog and checks every quest has a unique key and a reward
func ParseCatalog(data []byte) ([]domain.QuestTemplate, error) {
	var catalog domain.QuestCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseCatalog, err)
	}

	seen := make(map[string]bool, len(catalog.Quests))
	for _, q := range catalog.Quests {
		if q.QuestKey == "" {
			return nil, fmt.Errorf("%w: quest without key", domain.ErrInvalidInput)
		}
		if seen[q.QuestKey] {
			return nil, fmt.Errorf("%w: duplicate quest key %q", domain.ErrInvalidInput, q.QuestKey)
		}
		if q.BaseReward == 0 {
			return nil, fmt.Errorf("%w: quest %q has no reward", domain.ErrInvalidInput, q.QuestKey)
		}
		seen[q.QuestKey] = true
	}

	sort.Slice(catalog.Quests, func(i, j int) bool {
		return catalog.Quests[i].QuestKey < catalog.Quests[j].QuestKey
	})
	return catalog.Quests, nil
}
