// Package registry holds the category and payment-method lists shared by
// the ledger and settings surfaces. It is a single mutex-guarded source
// of truth, injected explicitly into whatever needs read/write access.
package registry

import (
	"strings"
	"sync"

	"gagyebu/internal/core"
)

// Category pairs a name with its display color token.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FallbackColor is used for categories with no registered color.
const FallbackColor = "#6b7280"

// DefaultBudget is the per-category monthly budget when no override is set.
const DefaultBudget int64 = 300_000

type Registry struct {
	mu             sync.Mutex
	expenseCats    []Category
	incomeCats     []Category
	expenseMethods []string
	incomeMethods  []string
	budgets        map[string]int64 // expense category -> monthly budget override
	defaultBudget  int64
}

// NewDefault seeds the registry with the stock categories and payment
// methods.
func NewDefault() *Registry {
	return &Registry{
		expenseCats: []Category{
			{Name: "식비", Color: "#ef4444"},
			{Name: "교통", Color: "#3b82f6"},
			{Name: "쇼핑", Color: "#a855f7"},
			{Name: "문화생활", Color: "#ec4899"},
			{Name: "의료", Color: "#10b981"},
			{Name: "공과금", Color: "#f59e0b"},
			{Name: "보험", Color: "#8b5cf6"},
			{Name: "기타", Color: "#6b7280"},
		},
		incomeCats: []Category{
			{Name: "급여", Color: "#22c55e"},
			{Name: "부수입", Color: "#14b8a6"},
			{Name: "투자수익", Color: "#06b6d4"},
			{Name: "기타수입", Color: "#84cc16"},
		},
		expenseMethods: []string{"Cash", "DebitCard", "CreditCard", "MobilePay", "Other"},
		incomeMethods:  []string{"BankTransfer", "Cash", "Other"},
		budgets:        make(map[string]int64),
		defaultBudget:  DefaultBudget,
	}
}

// SetDefaultBudget changes the fallback monthly budget applied to
// categories without an explicit override. Non-positive values are
// ignored.
func (r *Registry) SetDefaultBudget(budget int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if budget > 0 {
		r.defaultBudget = budget
	}
}

// Categories returns a copy of the category list for the given type.
func (r *Registry) Categories(t core.TxType) []Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Category(nil), r.partition(t)...)
}

// AddCategory appends a category to its type partition. Adding a name
// that already exists in that partition is a no-op.
func (r *Registry) AddCategory(t core.TxType, name, color string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cats := r.partition(t)
	for _, c := range cats {
		if c.Name == name {
			return
		}
	}
	r.setPartition(t, append(cats, Category{Name: name, Color: color}))
}

// RemoveCategory drops a category from its type partition.
func (r *Registry) RemoveCategory(t core.TxType, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cats := r.partition(t)
	out := cats[:0]
	for _, c := range cats {
		if c.Name != name {
			out = append(out, c)
		}
	}
	r.setPartition(t, out)
}

// SetCategoryColor updates the color of an existing category.
func (r *Registry) SetCategoryColor(t core.TxType, name, color string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cats := r.partition(t)
	for i := range cats {
		if cats[i].Name == name {
			cats[i].Color = color
			return
		}
	}
}

// CategoryColor returns the color for a category, or FallbackColor when
// the category is not registered.
func (r *Registry) CategoryColor(t core.TxType, name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.partition(t) {
		if c.Name == name {
			return c.Color
		}
	}
	return FallbackColor
}

// PaymentMethods returns a copy of the payment-method list for the type.
func (r *Registry) PaymentMethods(t core.TxType) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t == core.Income {
		return append([]string(nil), r.incomeMethods...)
	}
	return append([]string(nil), r.expenseMethods...)
}

// AddPaymentMethod appends a method; duplicates are a no-op.
func (r *Registry) AddPaymentMethod(t core.TxType, method string) {
	method = strings.TrimSpace(method)
	if method == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	methods := r.expenseMethods
	if t == core.Income {
		methods = r.incomeMethods
	}
	for _, m := range methods {
		if m == method {
			return
		}
	}
	if t == core.Income {
		r.incomeMethods = append(r.incomeMethods, method)
	} else {
		r.expenseMethods = append(r.expenseMethods, method)
	}
}

// RemovePaymentMethod drops a method from the type partition.
func (r *Registry) RemovePaymentMethod(t core.TxType, method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := &r.expenseMethods
	if t == core.Income {
		src = &r.incomeMethods
	}
	out := (*src)[:0]
	for _, m := range *src {
		if m != method {
			out = append(out, m)
		}
	}
	*src = out
}

// SeedShowcaseBudgets installs the demo budget overrides used by the
// seeded showcase data.
func (r *Registry) SeedShowcaseBudgets() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets["식비"] = 500_000
	r.budgets["교통"] = 200_000
	r.budgets["쇼핑"] = 300_000
	r.budgets["문화생활"] = 200_000
	r.budgets["기타"] = 250_000
}

// SetBudget overrides the monthly budget for an expense category.
// Non-positive values clear the override.
func (r *Registry) SetBudget(category string, budget int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if budget <= 0 {
		delete(r.budgets, category)
		return
	}
	r.budgets[category] = budget
}

// Budget returns the monthly budget for an expense category, falling
// back to DefaultBudget.
func (r *Registry) Budget(category string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.budgets[category]; ok {
		return b
	}
	return r.defaultBudget
}

func (r *Registry) partition(t core.TxType) []Category {
	if t == core.Income {
		return r.incomeCats
	}
	return r.expenseCats
}

func (r *Registry) setPartition(t core.TxType, cats []Category) {
	if t == core.Income {
		r.incomeCats = cats
	} else {
		r.expenseCats = cats
	}
}
