package command

import "testing"

func TestParseAdd(t *testing.T) {
	tests := []struct {
		in       string
		category string
		amount   int64
		item     string
	}{
		{"餐飲 120 午餐", "餐飲", 120, "午餐"},
		{"交通 55 捷運 板南線", "交通", 55, "捷運 板南線"},
		{"其他 1 x", "其他", 1, "x"},
		{"餐飲 -60 退款 咖啡", "餐飲", -60, "退款 咖啡"},
		{"  餐飲 120 午餐  ", "餐飲", 120, "午餐"},
		{"snacks 35 7-11 零食 2包", "snacks", 35, "7-11 零食 2包"},
	}
	for _, tc := range tests {
		got := Parse(tc.in)
		if got.Kind != KindAdd {
			t.Fatalf("%q: kind %v", tc.in, got.Kind)
		}
		if got.Category != tc.category || got.Amount != tc.amount || got.Item != tc.item {
			t.Fatalf("%q: got %+v", tc.in, got)
		}
	}
}

func TestParseQuerySymbolic(t *testing.T) {
	for _, key := range []string{"今天", "昨天", "本月"} {
		got := Parse("查" + key)
		if got.Kind != KindQuery || got.Range != key || got.Category != "" {
			t.Fatalf("查%s: got %+v", key, got)
		}
	}

	got := Parse("查本月 餐飲")
	if got.Kind != KindQuery || got.Range != "本月" || got.Category != "餐飲" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseQueryDate(t *testing.T) {
	got := Parse("查 2026-02-01")
	if got.Kind != KindQuery || got.Range != "2026-02-01" || got.Category != "" {
		t.Fatalf("got %+v", got)
	}
	got = Parse("查 2026-02-01 餐飲")
	if got.Kind != KindQuery || got.Range != "2026-02-01" || got.Category != "餐飲" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseSummary(t *testing.T) {
	got := Parse("彙整 本月")
	if got.Kind != KindSummary || got.Range != "本月" || got.Category != "" {
		t.Fatalf("got %+v", got)
	}
	got = Parse("彙整 今天 餐飲")
	if got.Kind != KindSummary || got.Range != "今天" || got.Category != "餐飲" {
		t.Fatalf("got %+v", got)
	}
	got = Parse("彙整 2026-02-01")
	if got.Kind != KindSummary || got.Range != "2026-02-01" || got.Category != "" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseDeposit(t *testing.T) {
	got := Parse("存入 500")
	if got.Kind != KindDeposit || got.Amount != 500 {
		t.Fatalf("got %+v", got)
	}
	// Deposit amounts must be positive.
	if got := Parse("存入 0"); got.Kind != KindUnknown {
		t.Fatalf("存入 0: got %+v", got)
	}
}

func TestParseHelp(t *testing.T) {
	for _, in := range []string{"指令", "help", "HELP", "?", "？", " 指令 "} {
		if got := Parse(in); got.Kind != KindHelp {
			t.Fatalf("%q: got %+v", in, got)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"咖啡 abc 早餐",
		"咖啡 60", // legacy two-token form is no longer supported
		"查 明天",
		"查2026-02-01", // explicit date needs a space after 查
		"彙整",
	}
	for _, in := range inputs {
		if got := Parse(in); got.Kind != KindUnknown {
			t.Fatalf("%q: got %+v", in, got)
		}
	}
}
