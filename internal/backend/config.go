package backend

import (
	"fmt"

	"ledgerbot/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SpreadsheetID:      appConfig.GoogleSpreadsheetID,
		ServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		ServiceAccountFile: appConfig.GoogleServiceAccountFile,
		RecordsSheet:       appConfig.RecordsSheetName,
		GroupsSheet:        appConfig.GroupsSheetName,
		WalletSheet:        appConfig.WalletSheetName,
	}, nil
}
