package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// LINE webhook credentials
	LineChannelSecret string
	LineChannelToken  string

	// Google Sheets store
	GoogleSpreadsheetID       string
	GoogleServiceAccountJSON  string
	GoogleServiceAccountFile  string
	RecordsSheetName          string
	GroupsSheetName           string
	WalletSheetName           string

	// AMQP archive pipeline (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker-side SQLite archive
	ArchiveDBPath string

	// Backend selection
	DataBackend string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		LineChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
		LineChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		RecordsSheetName:         getEnv("RECORDS_SHEET_NAME", "records"),
		GroupsSheetName:          getEnv("GROUPS_SHEET_NAME", "groups"),
		WalletSheetName:          getEnv("WALLET_SHEET_NAME", "wallet"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledgerbot"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "archive_records"),

		ArchiveDBPath: getEnv("ARCHIVE_DB_PATH", "./data/archive.db"),

		DataBackend: getEnv("DATA_BACKEND", "sheets"),
	}
}

// Validate checks the configuration up front so a misconfigured process
// dies at startup instead of on the first chat message.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required for the sheets backend")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE is required for the sheets backend")
		}
		if c.GoogleServiceAccountFile != "" && c.GoogleServiceAccountJSON == "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
		for name, v := range map[string]string{
			"RECORDS_SHEET_NAME": c.RecordsSheetName,
			"GROUPS_SHEET_NAME":  c.GroupsSheetName,
			"WALLET_SHEET_NAME":  c.WalletSheetName,
		} {
			if strings.TrimSpace(v) == "" {
				errs = append(errs, name+" cannot be empty")
			}
		}
	case "memory":
		// Nothing to check; the memory backend has no external deps.
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [sheets memory]", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateWorker checks only what the archive worker needs: the AMQP
// transport and the archive database path. The worker never touches the
// spreadsheet or LINE, so Validate's sheets checks do not apply.
func (c *Config) ValidateWorker() error {
	var errs []string
	if c.AMQPURL == "" {
		errs = append(errs, "AMQP_URL is required for the archive worker")
	} else if parsed, err := url.Parse(c.AMQPURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
	} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
	}
	if c.AMQPExchange == "" {
		errs = append(errs, "AMQP exchange name cannot be empty")
	}
	if c.AMQPQueue == "" {
		errs = append(errs, "AMQP queue name cannot be empty")
	}
	if c.ArchiveDBPath == "" {
		errs = append(errs, "ARCHIVE_DB_PATH cannot be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateWebhook additionally requires the LINE credentials. The
// archive worker does not need them, so they are checked separately.
func (c *Config) ValidateWebhook() error {
	var errs []string
	if c.LineChannelSecret == "" {
		errs = append(errs, "LINE_CHANNEL_SECRET is required")
	}
	if c.LineChannelToken == "" {
		errs = append(errs, "LINE_CHANNEL_ACCESS_TOKEN is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
