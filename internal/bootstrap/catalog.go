package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/quest"
)

// LoadQuestCatalog reads the quest catalog at path.
// A missing file yields an empty catalog; a malformed one is an error.
func LoadQuestCatalog(path string) ([]domain.QuestTemplate, error) {
	catalog, err := quest.LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgQuestCatalogMissing, "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgQuestCatalogLoaded, "path", path, "quests", len(catalog))
	return catalog, nil
}
