package bot

import (
	"fmt"
	"strings"

	"ledgerbot/internal/core"
)

const (
	replyStoreFailure = "❌ 記帳系統暫時無法使用，請稍後再試"
	replyEnabled      = "✅ 本群組已開啟記帳功能！輸入「指令」查看用法"

	helpText = `📒 記帳指令
・記帳：類別 金額 品項（例：餐飲 120 午餐）
・查詢：查今天 / 查昨天 / 查本月 / 查 2026-02-01，可加類別（例：查本月 餐飲）
・彙整：彙整 今天 / 彙整 本月 / 彙整 2026-02-01，可加類別
・存入：存入 500
・餘額：餘額`
)

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func formatAdded(rec core.Record, balance int64, withBalance bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ 已記帳：%s %d 元（%s）", rec.Item, rec.Amount, rec.Category)
	if withBalance {
		fmt.Fprintf(&sb, "\n💰 目前餘額：%d 元", balance)
	}
	return sb.String()
}

func formatDeposit(amount, balance int64) string {
	return fmt.Sprintf("✅ 已存入 %d 元\n💰 目前餘額：%d 元", amount, balance)
}

func formatBalance(balance int64) string {
	return fmt.Sprintf("💰 目前餘額：%d 元", balance)
}

func formatBadRange(key string) string {
	return fmt.Sprintf("⚠️ 不支援的日期範圍：%s", key)
}

func rangeLabel(key, category string) string {
	if category != "" {
		return key + " " + category
	}
	return key
}

func formatRecords(rangeKey, category string, records []core.Record) string {
	label := rangeLabel(rangeKey, category)
	if len(records) == 0 {
		return fmt.Sprintf("📋 %s 沒有記錄喔", label)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 %s 的記錄（%d 筆）", label, len(records))
	for _, r := range records {
		// Drop the seconds when showing timestamps in chat.
		ts := r.Timestamp
		if len(ts) >= 16 {
			ts = ts[5:16]
		}
		fmt.Fprintf(&sb, "\n%s %s %d 元（%s）", ts, r.Item, r.Amount, r.Category)
	}
	return sb.String()
}

func formatSummary(rangeKey string, sum core.Summary) string {
	if sum.TotalCount == 0 {
		return fmt.Sprintf("📊 %s 沒有記錄喔", rangeKey)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s 彙整：%d 筆，共 %d 元", rangeKey, sum.TotalCount, sum.TotalAmount)
	for _, b := range sum.ByCategory {
		fmt.Fprintf(&sb, "\n・%s：%d 元（%d 筆）", b.Category, b.Amount, b.Count)
	}
	return sb.String()
}
