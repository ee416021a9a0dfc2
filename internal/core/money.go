// Package core provides the ledger domain types and money handling.
//
// This file contains amount parsing and the Korean magnitude formatter
// used everywhere amounts are shown (만/억 unit grouping).
package core

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	man = 10_000
	eok = 100_000_000
)

// ParseAmount converts a whole-unit amount string to won.
//
// Amounts are whole currency units: no decimal separator is accepted.
// Thousands separators (commas) are tolerated. Negative, zero and empty
// inputs are rejected; the transaction type carries the sign.
//
// Examples:
//
//	ParseAmount("4500")   -> 4500, nil
//	ParseAmount("89,000") -> 89000, nil
//	ParseAmount("-5000")  -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatKoreanMagnitude renders an amount with 만/억 unit grouping.
//
// Rules:
//   - >= 1억: "{eok}억" with the 만 remainder appended when non-zero,
//     e.g. 325_000_000 -> "3억 2,500만".
//   - >= 1만: "{man}만" with the sub-만 remainder appended when non-zero,
//     e.g. 15_000 -> "1만 5,000".
//   - below 1만: plain thousands-grouped digits.
//
// Negative amounts get a leading sign; the magnitude rules apply to the
// absolute value. Deterministic, pure function of the input.
func FormatKoreanMagnitude(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	switch {
	case amount >= eok:
		e := amount / eok
		restMan := (amount % eok) / man
		if restMan > 0 {
			return sign + strconv.FormatInt(e, 10) + "억 " + groupThousands(restMan) + "만"
		}
		return sign + strconv.FormatInt(e, 10) + "억"
	case amount >= man:
		m := amount / man
		rest := amount % man
		if rest > 0 {
			return sign + strconv.FormatInt(m, 10) + "만 " + groupThousands(rest)
		}
		return sign + strconv.FormatInt(m, 10) + "만"
	default:
		return sign + groupThousands(amount)
	}
}

// FormatWon renders a plain thousands-grouped amount, sign included.
func FormatWon(amount int64) string {
	if amount < 0 {
		return "-" + groupThousands(-amount)
	}
	return groupThousands(amount)
}

// Korean renders the money value with magnitude grouping.
func (m Money) Korean() string {
	return FormatKoreanMagnitude(m.Won)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
