// Package command turns raw chat text into typed ledger commands and
// resolves symbolic date ranges against the reference timezone.
package command

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAdd
	KindQuery
	KindSummary
	KindDeposit
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindQuery:
		return "query"
	case KindSummary:
		return "summary"
	case KindDeposit:
		return "deposit"
	case KindHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Command is the parser output. Which fields are set depends on Kind:
// add uses Item/Amount/Category, query and summary use Range and an
// optional Category, deposit uses Amount.
type Command struct {
	Kind     Kind
	Item     string
	Amount   int64
	Category string
	Range    string
}

var (
	// 彙整 今天|昨天|本月 [類別]
	reSummarySymbolic = regexp.MustCompile(`^彙整\s+(今天|昨天|本月)(?:\s+(\S+))?$`)
	// 彙整 YYYY-MM-DD [類別]
	reSummaryDate = regexp.MustCompile(`^彙整\s+(\d{4}-\d{2}-\d{2})(?:\s+(\S+))?$`)
	// 查今天|查昨天|查本月 [類別] — no space after 查
	reQuerySymbolic = regexp.MustCompile(`^查(今天|昨天|本月)(?:\s+(\S+))?$`)
	// 查 YYYY-MM-DD [類別]
	reQueryDate = regexp.MustCompile(`^查\s+(\d{4}-\d{2}-\d{2})(?:\s+(\S+))?$`)
	// 類別 金額 品項... — category-first add form; a leading minus is
	// accepted for corrections
	reAdd = regexp.MustCompile(`^(\S+)\s+(-?\d+)\s+(.+)$`)
	// 存入 金額
	reDeposit = regexp.MustCompile(`^存入\s+(\d+)$`)
)

var helpTriggers = map[string]struct{}{
	"指令":   {},
	"help": {},
	"?":    {},
	"？":    {},
}

// Parse maps trimmed chat text to a Command. The grammar is ambiguous,
// so patterns are tried in a fixed priority order; anything that falls
// through is KindUnknown, never an error.
func Parse(text string) Command {
	t := strings.TrimSpace(text)

	if _, ok := helpTriggers[strings.ToLower(t)]; ok {
		return Command{Kind: KindHelp}
	}

	if m := reSummarySymbolic.FindStringSubmatch(t); m != nil {
		return Command{Kind: KindSummary, Range: m[1], Category: m[2]}
	}
	if m := reSummaryDate.FindStringSubmatch(t); m != nil {
		return Command{Kind: KindSummary, Range: m[1], Category: m[2]}
	}
	if m := reQuerySymbolic.FindStringSubmatch(t); m != nil {
		return Command{Kind: KindQuery, Range: m[1], Category: m[2]}
	}
	if m := reQueryDate.FindStringSubmatch(t); m != nil {
		return Command{Kind: KindQuery, Range: m[1], Category: m[2]}
	}
	if m := reAdd.FindStringSubmatch(t); m != nil {
		amount, err := strconv.ParseInt(m[2], 10, 64)
		if err == nil {
			return Command{
				Kind:     KindAdd,
				Category: m[1],
				Amount:   amount,
				Item:     strings.TrimSpace(m[3]),
			}
		}
	}
	if m := reDeposit.FindStringSubmatch(t); m != nil {
		amount, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil && amount > 0 {
			return Command{Kind: KindDeposit, Amount: amount}
		}
	}

	return Command{Kind: KindUnknown}
}
