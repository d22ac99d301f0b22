package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"ledgerbot/internal/command"
	"ledgerbot/internal/core"
	"ledgerbot/internal/ledger"
	"ledgerbot/internal/ledger/memory"
)

func newTestBot(t *testing.T) (*Bot, *memory.Store) {
	t.Helper()
	loc, err := command.Location()
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	store := memory.New()
	b := New(store, loc, nil)
	b.SetClock(func() time.Time {
		return time.Date(2026, 2, 15, 12, 30, 0, 0, loc)
	})
	return b, store
}

func enable(t *testing.T, b *Bot) {
	t.Helper()
	if reply := b.HandleMessage(context.Background(), "g1", "u1", "開啟記帳"); reply != replyEnabled {
		t.Fatalf("enable reply: %q", reply)
	}
}

func TestDisabledGroupStaysSilent(t *testing.T) {
	b, _ := newTestBot(t)
	if reply := b.HandleMessage(context.Background(), "g1", "u1", "餐飲 120 午餐"); reply != "" {
		t.Fatalf("expected silence, got %q", reply)
	}
}

func TestEnableThenAdd(t *testing.T) {
	b, store := newTestBot(t)
	enable(t, b)

	reply := b.HandleMessage(context.Background(), "g1", "u1", "餐飲 120 午餐")
	if !strings.Contains(reply, "已記帳") || !strings.Contains(reply, "午餐") {
		t.Fatalf("add reply: %q", reply)
	}
	// The add deducts from the wallet.
	if !strings.Contains(reply, "-120") {
		t.Fatalf("expected balance in reply: %q", reply)
	}

	recs, err := store.QueryRecords(context.Background(), filterFor("g1", "2026-02-15"))
	if err != nil || len(recs) != 1 {
		t.Fatalf("stored records: %v %v", recs, err)
	}
	r := recs[0]
	if r.Timestamp != "2026-02-15 12:30:00" {
		t.Fatalf("timestamp stamped in reference timezone: %q", r.Timestamp)
	}
	if r.RawText != "餐飲 120 午餐" || r.UserID != "u1" || r.Currency != core.DefaultCurrency {
		t.Fatalf("record: %+v", r)
	}
}

func TestQueryAndSummaryReplies(t *testing.T) {
	b, _ := newTestBot(t)
	enable(t, b)
	ctx := context.Background()

	b.HandleMessage(ctx, "g1", "u1", "餐飲 120 午餐")
	b.HandleMessage(ctx, "g1", "u2", "交通 55 捷運")

	reply := b.HandleMessage(ctx, "g1", "u1", "查今天")
	if !strings.Contains(reply, "2 筆") || !strings.Contains(reply, "午餐") || !strings.Contains(reply, "捷運") {
		t.Fatalf("query reply: %q", reply)
	}

	reply = b.HandleMessage(ctx, "g1", "u1", "查今天 餐飲")
	if strings.Contains(reply, "捷運") || !strings.Contains(reply, "午餐") {
		t.Fatalf("category query reply: %q", reply)
	}

	reply = b.HandleMessage(ctx, "g1", "u1", "彙整 今天")
	if !strings.Contains(reply, "共 175 元") || !strings.Contains(reply, "餐飲：120") {
		t.Fatalf("summary reply: %q", reply)
	}

	reply = b.HandleMessage(ctx, "g1", "u1", "查昨天")
	if !strings.Contains(reply, "沒有記錄") {
		t.Fatalf("empty query reply: %q", reply)
	}
}

func TestDepositAndBalance(t *testing.T) {
	b, _ := newTestBot(t)
	enable(t, b)
	ctx := context.Background()

	reply := b.HandleMessage(ctx, "g1", "u1", "存入 500")
	if !strings.Contains(reply, "已存入 500") || !strings.Contains(reply, "500 元") {
		t.Fatalf("deposit reply: %q", reply)
	}

	b.HandleMessage(ctx, "g1", "u1", "餐飲 120 午餐")

	reply = b.HandleMessage(ctx, "g1", "u1", "餘額")
	if !strings.Contains(reply, "380") {
		t.Fatalf("balance reply: %q", reply)
	}
}

func TestHelpAndUnknown(t *testing.T) {
	b, _ := newTestBot(t)
	enable(t, b)
	ctx := context.Background()

	if reply := b.HandleMessage(ctx, "g1", "u1", "指令"); reply != helpText {
		t.Fatalf("help reply: %q", reply)
	}
	if reply := b.HandleMessage(ctx, "g1", "u1", "大家晚安"); reply != "" {
		t.Fatalf("chatter should be ignored, got %q", reply)
	}
}

func TestEnableIsIdempotentAcrossMessages(t *testing.T) {
	b, store := newTestBot(t)
	enable(t, b)
	enable(t, b)
	if rows := store.GroupRows(); len(rows) != 1 || !rows[0].Enabled {
		t.Fatalf("group rows: %+v", rows)
	}
}

type failingPublisher struct{ called bool }

func (p *failingPublisher) PublishRecordArchived(context.Context, core.Record) error {
	p.called = true
	return context.DeadlineExceeded
}

func TestArchivePublishFailureDoesNotReachChat(t *testing.T) {
	b, _ := newTestBot(t)
	pub := &failingPublisher{}
	b.WithPublisher(pub)
	enable(t, b)

	reply := b.HandleMessage(context.Background(), "g1", "u1", "餐飲 120 午餐")
	if !pub.called {
		t.Fatal("publisher not called")
	}
	if !strings.Contains(reply, "已記帳") {
		t.Fatalf("publish failure leaked into reply: %q", reply)
	}
}

func filterFor(groupID, day string) ledger.QueryFilter {
	return ledger.QueryFilter{
		GroupID: groupID,
		StartTS: day + " 00:00:00",
		EndTS:   day + " 23:59:59",
	}
}
