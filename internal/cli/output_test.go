package cli

import (
	"reflect"
	"testing"
)

func TestMapRows(t *testing.T) {
	m := map[string]any{
		"code":      "usa-stk-trades",
		"vendor":    "ib",
		"fields":    []any{"last", "volume"},
		"bar":       map[string]any{"size": "1m", "source": "usa-stk-trades"},
		"snapshot":  false,
		"tickers":   float64(4),
		"universes": nil,
	}

	want := [][]string{
		{"bar.size", "1m"},
		{"bar.source", "usa-stk-trades"},
		{"code", "usa-stk-trades"},
		{"fields", "last, volume"},
		{"snapshot", "false"},
		{"tickers", "4"},
		{"universes", ""},
	}

	if got := MapRows(m); !reflect.DeepEqual(got, want) {
		t.Errorf("rows mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestMapRowsEmpty(t *testing.T) {
	if got := MapRows(map[string]any{}); len(got) != 0 {
		t.Errorf("expected no rows, got %v", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"last", "last"},
		{true, "true"},
		{float64(12345), "12345"},
		{float64(182.5), "182.5"},
		{[]any{float64(1), float64(2)}, "1, 2"},
	}

	for _, tc := range cases {
		if got := FormatValue(tc.in); got != tc.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
