package backend

import (
	"context"
	"fmt"
	"log/slog"

	gledger "ledgerbot/internal/ledger/google"
	"ledgerbot/internal/ledger/memory"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	switch config.Type {
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*Result, error) {
	cli, err := gledger.New(ctx, gledger.Options{
		SpreadsheetID:   config.SpreadsheetID,
		CredentialsJSON: config.ServiceAccountJSON,
		CredentialsFile: config.ServiceAccountFile,
		RecordsSheet:    config.RecordsSheet,
		GroupsSheet:     config.GroupsSheet,
		WalletSheet:     config.WalletSheet,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize sheets ledger: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend",
		"spreadsheet_id", config.SpreadsheetID)
	return &Result{Backend: cli}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	store := memory.New()
	f.logger.Info("Initialized memory backend")
	return &Result{Backend: store}, nil
}
