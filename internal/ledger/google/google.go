// Package google implements the ledger ports on a Google spreadsheet
// with three tabs: records, groups and wallet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"ledgerbot/internal/core"
	"ledgerbot/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	recordsSheet  string
	groupsSheet   string
	walletSheet   string
	nowUTC        func() time.Time
}

// Ensure interface conformance
var (
	_ ledger.GroupRegistry = (*Client)(nil)
	_ ledger.RecordWriter  = (*Client)(nil)
	_ ledger.RecordQuerier = (*Client)(nil)
	_ ledger.Wallet        = (*Client)(nil)
)

// Options carries everything the client needs; there is no package
// state and no environment access outside New's credential loading.
type Options struct {
	SpreadsheetID string
	// Service account credentials: inline JSON wins over the file path.
	CredentialsJSON string
	CredentialsFile string
	// Tab names, defaulted to records/groups/wallet when empty.
	RecordsSheet string
	GroupsSheet  string
	WalletSheet  string
}

// New builds a Sheets-backed ledger client and verifies that all three
// tabs exist. A missing tab fails here, not on first use.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	c := &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		recordsSheet:  defaultSheet(opts.RecordsSheet, "records"),
		groupsSheet:   defaultSheet(opts.GroupsSheet, "groups"),
		walletSheet:   defaultSheet(opts.WalletSheet, "wallet"),
		nowUTC:        func() time.Time { return time.Now().UTC() },
	}

	if err := c.ensureSheets(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func defaultSheet(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from the options.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(opts.CredentialsJSON) != "":
		credentialsJSON = []byte(opts.CredentialsJSON)
	case strings.TrimSpace(opts.CredentialsFile) != "":
		b, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// ensureSheets verifies the spreadsheet exposes all three expected tabs.
func (c *Client) ensureSheets(ctx context.Context) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return storeErr("read spreadsheet metadata", err)
	}
	have := map[string]bool{}
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			have[s.Properties.Title] = true
		}
	}
	var missing []string
	for _, want := range []string{c.recordsSheet, c.groupsSheet, c.walletSheet} {
		if !have[want] {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("spreadsheet %s is missing sheet(s): %s", c.spreadsheetID, strings.Join(missing, ", "))
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ledger.ErrUnavailable, err)
}

// readAll fetches every row of a tab. No caching: each call is a fresh
// network round trip.
func (c *Client) readAll(ctx context.Context, sheet, cols string) ([][]any, error) {
	rng := fmt.Sprintf("%s!%s", sheet, cols)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, storeErr("read "+rng, err)
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, sheet, cols string, row []any) error {
	rng := fmt.Sprintf("%s!%s", sheet, cols)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	// RAW keeps timestamps as literal strings instead of letting Sheets
	// coerce them into date cells.
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return storeErr("append to "+rng, err)
	}
	return nil
}

func (c *Client) updateCell(ctx context.Context, rng string, row []any) error {
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return storeErr("update "+rng, err)
	}
	return nil
}

// GroupEnabled implements ledger.GroupRegistry. Absence means disabled.
func (c *Client) GroupEnabled(ctx context.Context, groupID string) (bool, error) {
	values, err := c.readAll(ctx, c.groupsSheet, "A:E")
	if err != nil {
		return false, err
	}
	for _, row := range values {
		cols := toStrings(row)
		if safeGet(cols, 0) != groupID {
			continue
		}
		return strings.EqualFold(safeGet(cols, 1), "TRUE"), nil
	}
	return false, nil
}

// EnableGroup implements ledger.GroupRegistry. First match wins; an
// existing row gets its flag and actor rewritten in place.
func (c *Client) EnableGroup(ctx context.Context, groupID, actorID string) error {
	values, err := c.readAll(ctx, c.groupsSheet, "A:E")
	if err != nil {
		return err
	}
	for i, row := range values {
		cols := toStrings(row)
		if safeGet(cols, 0) != groupID {
			continue
		}
		sheetRow := i + 1
		if err := c.updateCell(ctx, fmt.Sprintf("%s!B%d", c.groupsSheet, sheetRow), []any{"TRUE"}); err != nil {
			return err
		}
		if err := c.updateCell(ctx, fmt.Sprintf("%s!D%d", c.groupsSheet, sheetRow), []any{actorID}); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Group re-enabled", "group_id", groupID, "row", sheetRow)
		return nil
	}

	row := []any{groupID, "TRUE", core.FormatTimestamp(c.nowUTC()), actorID, ""}
	if err := c.appendRow(ctx, c.groupsSheet, "A:E", row); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Group enabled", "group_id", groupID)
	return nil
}

// AppendRecord implements ledger.RecordWriter.
func (c *Client) AppendRecord(ctx context.Context, rec core.Record) error {
	rec = rec.Normalize(c.nowUTC())
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	row := []any{
		rec.Timestamp,
		rec.Amount,
		rec.Category,
		rec.Item,
		rec.Currency,
		rec.UserID,
		rec.RawText,
		rec.GroupID,
	}
	if err := c.appendRow(ctx, c.recordsSheet, "A:H", row); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Record appended",
		"group_id", rec.GroupID,
		"category", rec.Category,
		"amount", rec.Amount)
	return nil
}

// QueryRecords implements ledger.RecordQuerier.
func (c *Client) QueryRecords(ctx context.Context, filter ledger.QueryFilter) ([]core.Record, error) {
	records, err := c.fetchRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	if limit := filter.EffectiveLimit(); len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// SummarizeByCategory implements ledger.RecordQuerier. Unlike
// QueryRecords, aggregation sees every matching row, not just the first
// limit of them.
func (c *Client) SummarizeByCategory(ctx context.Context, filter ledger.QueryFilter) (core.Summary, error) {
	records, err := c.fetchRecords(ctx, filter)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(records), nil
}

func (c *Client) fetchRecords(ctx context.Context, filter ledger.QueryFilter) ([]core.Record, error) {
	values, err := c.readAll(ctx, c.recordsSheet, "A:H")
	if err != nil {
		return nil, err
	}
	records := decodeRecords(values)
	return filterRecords(records, filter), nil
}

// Balance implements ledger.Wallet. The wallet tab is scanned as raw
// values, not through the header-decoding path, to tolerate duplicate
// header names.
func (c *Client) Balance(ctx context.Context, groupID string) (int64, error) {
	values, err := c.readAll(ctx, c.walletSheet, "A:D")
	if err != nil {
		return 0, err
	}
	_, balance := findWalletRow(values, groupID)
	return balance, nil
}

// Deposit implements ledger.Wallet.
func (c *Client) Deposit(ctx context.Context, groupID string, amount int64, actorID string) (int64, error) {
	return c.adjustBalance(ctx, groupID, amount, actorID)
}

// Deduct implements ledger.Wallet. The balance may go negative.
func (c *Client) Deduct(ctx context.Context, groupID string, amount int64, actorID string) (int64, error) {
	return c.adjustBalance(ctx, groupID, -amount, actorID)
}

// adjustBalance is a plain read-modify-write: concurrent calls for the
// same group can lose an update. Accepted for a low-traffic chat ledger.
func (c *Client) adjustBalance(ctx context.Context, groupID string, delta int64, actorID string) (int64, error) {
	values, err := c.readAll(ctx, c.walletSheet, "A:D")
	if err != nil {
		return 0, err
	}
	now := core.FormatTimestamp(c.nowUTC())

	rowIdx, current := findWalletRow(values, groupID)
	if rowIdx < 0 {
		if err := c.appendRow(ctx, c.walletSheet, "A:D", []any{groupID, delta, now, actorID}); err != nil {
			return 0, err
		}
		return delta, nil
	}

	next := current + delta
	rng := fmt.Sprintf("%s!B%d:D%d", c.walletSheet, rowIdx+1, rowIdx+1)
	if err := c.updateCell(ctx, rng, []any{next, now, actorID}); err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "Balance updated",
		"group_id", groupID,
		"delta", delta,
		"balance", next)
	return next, nil
}
