// Package classify assigns a spending category to a transaction from
// keywords in its free-text description.
package classify

import "strings"

// Rule maps one category to the substrings that select it. Rules are
// evaluated in slice order and the first match wins, so the order of a
// rule set is a tie-break policy, not a cosmetic detail.
type Rule struct {
	Category string
	Keywords []string
}

type Classifier struct {
	rules    []Rule
	fallback string
}

// Fallback category when nothing matches.
const DefaultFallback = "기타"

// DefaultRules returns the built-in keyword table. Order matters.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "식비", Keywords: []string{"스타벅스", "맥도날드", "버거", "카페", "마트", "음식", "커피", "치킨"}},
		{Category: "교통", Keywords: []string{"지하철", "버스", "택시", "주차", "기름", "교통카드"}},
		{Category: "쇼핑", Keywords: []string{"쿠팡", "11번가", "옥션", "의류", "화장품"}},
		{Category: "문화생활", Keywords: []string{"CGV", "영화", "공연", "콘서트", "도서"}},
	}
}

// New builds a classifier over the given ordered rules. A nil rule set
// uses DefaultRules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules, fallback: DefaultFallback}
}

// Classify returns the first category whose keyword list contains a
// case-insensitive substring of the description, with auto=true. When no
// rule matches (or the description is empty) it returns the fallback
// category with auto=false.
func (c *Classifier) Classify(description string) (category string, auto bool) {
	desc := strings.ToLower(description)
	if strings.TrimSpace(desc) == "" {
		return c.fallback, false
	}
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				return r.Category, true
			}
		}
	}
	return c.fallback, false
}

// Fallback returns the category used when no rule matches.
func (c *Classifier) Fallback() string {
	return c.fallback
}
