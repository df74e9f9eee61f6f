package source

import (
	"context"
	"fmt"
	"log/slog"

	"sphasecli/internal/config"
	apperrors "sphasecli/internal/errors"
	"sphasecli/pkg/contracts/domain"
)

// Loader fetches the raw sheet from one configured source. Implementations
// perform a single synchronous read; any failure is terminal for the run.
type Loader interface {
	Load(ctx context.Context) (*domain.RawTable, error)
}

// New builds the loader selected by the source configuration.
func New(cfg config.SourceConfig, logger *slog.Logger) (Loader, error) {
	switch cfg.Mode {
	case "url":
		return NewHTTPLoader(cfg.URL, cfg.Timeout, logger), nil
	case "sheets":
		return NewSheetsLoader(cfg.SheetID, cfg.SheetRange, cfg.APIKey, logger), nil
	case "xlsx":
		return NewXLSXLoader(cfg.XLSXPath, logger), nil
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown source mode: %s", cfg.Mode), nil)
	}
}
