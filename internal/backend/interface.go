package backend

import (
	"context"

	"ledgerbot/internal/ledger"
)

// Backend is the unified store behind the bot: all four ledger ports.
type Backend interface {
	ledger.GroupRegistry
	ledger.RecordWriter
	ledger.RecordQuerier
	ledger.Wallet
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the backend instance and optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// Google Sheets specific
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
	RecordsSheet       string
	GroupsSheet        string
	WalletSheet        string
}

// Type selects the backend implementation.
type Type string

const (
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
