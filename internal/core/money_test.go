package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"4500", 4500, true},
		{"89,000", 89000, true},
		{" 1400 ", 1400, true},
		{"2800000", 2800000, true},
		{"0", 0, false},
		{"-5000", 0, false},
		{"12.50", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatKoreanMagnitude(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0"},
		{999, "999"},
		{4500, "4,500"},
		{10000, "1만"},
		{15000, "1만 5,000"},
		{89000, "8만 9,000"},
		{2800000, "280만"},
		{99999999, "9999만 9,999"},
		{100000000, "1억"},
		{325000000, "3억 2,500만"},
		{100010000, "1억 1만"},
		{100000001, "1억"}, // sub-만 remainder of an 억 amount is dropped
	}
	for _, tc := range cases {
		if got := FormatKoreanMagnitude(tc.in); got != tc.out {
			t.Fatalf("FormatKoreanMagnitude(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestFormatKoreanMagnitudeNegative(t *testing.T) {
	cases := []int64{5000, 15000, 325000000}
	for _, n := range cases {
		want := "-" + FormatKoreanMagnitude(n)
		if got := FormatKoreanMagnitude(-n); got != want {
			t.Fatalf("FormatKoreanMagnitude(%d) = %q, want %q", -n, got, want)
		}
	}
}

func TestFormatWon(t *testing.T) {
	if got := FormatWon(1234567); got != "1,234,567" {
		t.Fatalf("got %q", got)
	}
	if got := FormatWon(-6500); got != "-6,500" {
		t.Fatalf("got %q", got)
	}
}
