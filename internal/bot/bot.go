// Package bot maps inbound chat messages to ledger operations and
// formats the replies. It has no knowledge of any messaging platform;
// the webhook layer hands it plain strings.
package bot

import (
	"context"
	"time"

	"ledgerbot/internal/backend"
	"ledgerbot/internal/command"
	"ledgerbot/internal/core"
	"ledgerbot/internal/ledger"
	"ledgerbot/internal/log"
)

// Literal commands handled before the parser runs. Enablement must work
// in groups the parser would otherwise ignore.
const (
	enableTrigger  = "開啟記帳"
	balanceTrigger = "餘額"
)

// ArchivePublisher forwards appended records to the archive pipeline.
// Best-effort: failures are logged and never surface in the chat.
type ArchivePublisher interface {
	PublishRecordArchived(ctx context.Context, rec core.Record) error
}

type Bot struct {
	store     backend.Backend
	publisher ArchivePublisher // may be nil
	loc       *time.Location
	now       func() time.Time
	logger    *log.Logger
}

func New(store backend.Backend, loc *time.Location, logger *log.Logger) *Bot {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentBot)
	}
	return &Bot{
		store:  store,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// WithPublisher attaches the archive publisher.
func (b *Bot) WithPublisher(p ArchivePublisher) *Bot {
	b.publisher = p
	return b
}

// SetClock fixes the bot's clock. Test hook.
func (b *Bot) SetClock(now func() time.Time) {
	b.now = now
}

// HandleMessage processes one inbound group message and returns the
// reply text. An empty reply means stay silent (disabled group,
// unparseable chatter). Remote-store failures come back as a short
// failure reply, never as an error.
func (b *Bot) HandleMessage(ctx context.Context, groupID, userID, text string) string {
	cmd := command.Parse(text)

	if trimmed(text) == enableTrigger {
		return b.enableGroup(ctx, groupID, userID)
	}

	enabled, err := b.store.GroupEnabled(ctx, groupID)
	if err != nil {
		b.logger.ErrorContext(ctx, "Group lookup failed",
			log.FieldGroupID, groupID, log.FieldError, err)
		return replyStoreFailure
	}
	if !enabled {
		// Not an opted-in group; stay out of the conversation.
		return ""
	}

	switch cmd.Kind {
	case command.KindHelp:
		return helpText
	case command.KindAdd:
		return b.addRecord(ctx, groupID, userID, text, cmd)
	case command.KindQuery:
		return b.queryRecords(ctx, groupID, cmd)
	case command.KindSummary:
		return b.summarize(ctx, groupID, cmd)
	case command.KindDeposit:
		return b.deposit(ctx, groupID, userID, cmd)
	default:
		if trimmed(text) == balanceTrigger {
			return b.balance(ctx, groupID)
		}
		return ""
	}
}

func (b *Bot) enableGroup(ctx context.Context, groupID, userID string) string {
	if err := b.store.EnableGroup(ctx, groupID, userID); err != nil {
		b.logger.ErrorContext(ctx, "Enable group failed",
			log.FieldGroupID, groupID, log.FieldError, err)
		return replyStoreFailure
	}
	b.logger.InfoContext(ctx, "Group enabled",
		log.FieldGroupID, groupID, log.FieldUserID, userID)
	return replyEnabled
}

func (b *Bot) addRecord(ctx context.Context, groupID, userID, raw string, cmd command.Command) string {
	// Record timestamps are user-facing and range-filtered, so they are
	// stamped in the reference timezone here, not left to the
	// repository's UTC default.
	ts := core.FormatTimestamp(b.now().In(b.loc))
	rec := core.Record{
		Timestamp: ts,
		Amount:    cmd.Amount,
		Category:  cmd.Category,
		Item:      cmd.Item,
		Currency:  core.DefaultCurrency,
		UserID:    userID,
		RawText:   trimmed(raw),
		GroupID:   groupID,
	}
	if err := b.store.AppendRecord(ctx, rec); err != nil {
		b.logger.ErrorContext(ctx, "Append record failed",
			log.FieldGroupID, groupID, log.FieldError, err)
		return replyStoreFailure
	}

	balance, err := b.store.Deduct(ctx, groupID, cmd.Amount, userID)
	if err != nil {
		b.logger.ErrorContext(ctx, "Deduct after add failed",
			log.FieldGroupID, groupID, log.FieldError, err)
		return formatAdded(rec, 0, false)
	}

	if b.publisher != nil {
		if err := b.publisher.PublishRecordArchived(ctx, rec); err != nil {
			b.logger.WarnContext(ctx, "Archive publish failed",
				log.FieldGroupID, groupID, log.FieldError, err)
		}
	}

	b.logger.InfoContext(ctx, "Record added",
		log.FieldGroupID, groupID,
		log.FieldCategory, rec.Category,
		log.FieldAmount, rec.Amount,
		log.FieldBalance, balance)
	return formatAdded(rec, balance, true)
}

func (b *Bot) queryRecords(ctx context.Context, groupID string, cmd command.Command) string {
	rng, err := command.Resolve(cmd.Range, b.now().In(b.loc))
	if err != nil {
		return formatBadRange(cmd.Range)
	}
	records, err := b.store.QueryRecords(ctx, b.filter(groupID, rng, cmd.Category))
	if err != nil {
		b.logger.ErrorContext(ctx, "Query failed",
			log.FieldGroupID, groupID, log.FieldRangeKey, cmd.Range, log.FieldError, err)
		return replyStoreFailure
	}
	return formatRecords(cmd.Range, cmd.Category, records)
}

func (b *Bot) summarize(ctx context.Context, groupID string, cmd command.Command) string {
	rng, err := command.Resolve(cmd.Range, b.now().In(b.loc))
	if err != nil {
		return formatBadRange(cmd.Range)
	}
	sum, err := b.store.SummarizeByCategory(ctx, b.filter(groupID, rng, cmd.Category))
	if err != nil {
		b.logger.ErrorContext(ctx, "Summary failed",
			log.FieldGroupID, groupID, log.FieldRangeKey, cmd.Range, log.FieldError, err)
		return replyStoreFailure
	}
	return formatSummary(cmd.Range, sum)
}

func (b *Bot) deposit(ctx context.Context, groupID, userID string, cmd command.Command) string {
	balance, err := b.store.Deposit(ctx, groupID, cmd.Amount, userID)
	if err != nil {
		b.logger.ErrorContext(ctx, "Deposit failed",
			log.FieldGroupID, groupID, log.FieldError, err)
		return replyStoreFailure
	}
	return formatDeposit(cmd.Amount, balance)
}

func (b *Bot) balance(ctx context.Context, groupID string) string {
	balance, err := b.store.Balance(ctx, groupID)
	if err != nil {
		b.logger.ErrorContext(ctx, "Balance lookup failed",
			log.FieldGroupID, groupID, log.FieldError, err)
		return replyStoreFailure
	}
	return formatBalance(balance)
}

func (b *Bot) filter(groupID string, rng command.Range, category string) ledger.QueryFilter {
	return ledger.QueryFilter{
		GroupID:  groupID,
		StartTS:  rng.StartTS(),
		EndTS:    rng.EndTS(),
		Category: category,
	}
}
