package quest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/validation"
)

func TestParseCatalog(t *testing.T) {
	quests, err := ParseCatalog([]byte(`{
		"version": "1.0",
		"quests": [
			{"quest_key": "b", "name": "B", "base_reward": 20},
			{"quest_key": "a", "name": "A", "base_reward": 10, "min_level": 2}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, quests, 2)
	assert.Equal(t, "a", quests[0].QuestKey)
	assert.Equal(t, uint64(2), quests[0].MinLevel)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"quests": [`},
		{"missing key", `{"quests": [{"base_reward": 1}]}`},
		{"duplicate key", `{"quests": [{"quest_key": "a", "base_reward": 1}, {"quest_key": "a", "base_reward": 2}]}`},
		{"no reward", `{"quests": [{"quest_key": "a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := ParseCatalog([]byte(`{"quests": [{"quest_key": "a", "base_reward": 1}, {"quest_key": "a", "base_reward": 2}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quests.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quests": [{"quest_key": "a", "base_reward": 5}]}`), 0o600))

	quests, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, quests, 1)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToReadCatalog)
}

func TestLoadCatalog_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"reward as string", `{"quests": [{"quest_key": "a", "base_reward": "five"}]}`},
		{"unknown field", `{"quests": [{"quest_key": "a", "base_reward": 5, "xp": 1}]}`},
		{"key with spaces", `{"quests": [{"quest_key": "a b", "base_reward": 5}]}`},
		{"no quests", `{"version": "1.0"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "quests.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))

			_, err := LoadCatalog(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ErrorIs(t, err, validation.ErrSchemaViolation)
		})
	}
}

func TestShippedCatalogParses(t *testing.T) {
	quests, err := LoadCatalog(filepath.Join("..", "..", "configs", "quests.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, quests)
}
