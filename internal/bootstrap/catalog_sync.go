package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/repository"
	"github.com/classforge/engine/internal/utils"
)

// SyncItemCatalog seeds the item catalog from a JSON config file. Existing
// definitions are left untouched; only keys not yet in the catalog are
// inserted. A missing seed file is not an error.
func SyncItemCatalog(ctx context.Context, items repository.Item, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	slog.Info(LogMsgSyncingCatalog, "path", path)

	var definitions []domain.ItemDefinition
	if err := utils.LoadJSON(path, &definitions); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}

	inserted := 0
	for i := range definitions {
		def := &definitions[i]

		_, err := items.GetDefinitionByKey(ctx, def.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrDefinitionNotFound) {
			return err
		}

		if _, err := items.InsertDefinition(ctx, def); err != nil {
			return fmt.Errorf("%s %q: %w", ErrMsgFailedInsertSeed, def.Key, err)
		}
		inserted++
	}

	slog.Info(LogMsgCatalogSynced, "total", len(definitions), "inserted", inserted)
	return nil
}
