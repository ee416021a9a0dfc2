// Package ledger implements the in-memory transaction store and its
// derived views: search and date filters, monthly aggregation and chart
// data. The store is the only mutable state; every view is a pure
// recomputation over a snapshot of it.
package ledger

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gagyebu/internal/classify"
	"gagyebu/internal/confirm"
	"gagyebu/internal/core"
)

var (
	ErrNotFound     = errors.New("transaction not found")
	ErrUnknownToken = confirm.ErrUnknownToken
)

// Store holds the ordered transaction list, newest first. Ordering is
// insertion order and is preserved by every derived view.
type Store struct {
	mu         sync.Mutex
	items      []core.Transaction
	classifier *classify.Classifier
	pending    *confirm.Registry
	now        func() time.Time
}

// Input carries the submitted form fields for a create or update. A
// blank Category asks the classifier to assign one on create; on update
// it keeps the previous category.
type Input struct {
	Description   string
	Amount        int64
	Category      string
	Date          core.Date
	Type          core.TxType
	PaymentMethod string
}

func NewStore(c *classify.Classifier) *Store {
	if c == nil {
		c = classify.New(nil)
	}
	return &Store{
		classifier: c,
		pending:    confirm.NewRegistry(),
		now:        time.Now,
	}
}

// Add validates the input and prepends a new transaction. The id is the
// creation timestamp in milliseconds, bumped past any existing id so two
// submits in the same millisecond stay distinct.
func (s *Store) Add(in Input) (core.Transaction, error) {
	category := strings.TrimSpace(in.Category)
	auto := false
	if category == "" {
		category, auto = s.classifier.Classify(in.Description)
	}

	tx := core.Transaction{
		Description:    strings.TrimSpace(in.Description),
		Amount:         core.Money{Won: in.Amount},
		Category:       category,
		Date:           in.Date,
		Type:           in.Type,
		PaymentMethod:  in.PaymentMethod,
		AutoClassified: auto,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.nextID()
	s.items = append([]core.Transaction{tx}, s.items...)
	return tx, nil
}

// Update replaces the fields of an existing transaction in place. The id
// is kept; a blank category keeps the old one and clears nothing. An
// explicit category always resets AutoClassified.
func (s *Store) Update(id int64, in Input) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return core.Transaction{}, ErrNotFound
	}

	tx := s.items[idx]
	tx.Description = strings.TrimSpace(in.Description)
	tx.Amount = core.Money{Won: in.Amount}
	tx.Date = in.Date
	tx.Type = in.Type
	tx.PaymentMethod = in.PaymentMethod
	if category := strings.TrimSpace(in.Category); category != "" {
		tx.Category = category
		tx.AutoClassified = false
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.items[idx] = tx
	return tx, nil
}

// Get returns a transaction by id.
func (s *Store) Get(id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], nil
	}
	return core.Transaction{}, ErrNotFound
}

// RequestDelete starts the two-step delete: it returns a single-use
// confirmation token without mutating the ledger. The prompt UI holds
// the token; nothing changes until ConfirmDelete.
func (s *Store) RequestDelete(id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return "", ErrNotFound
	}
	return s.pending.Request(id), nil
}

// ConfirmDelete consumes the token and removes the transaction. An
// unknown, reused or expired token leaves the ledger untouched.
func (s *Store) ConfirmDelete(token string) error {
	id, err := s.pending.Redeem(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

// CancelDelete discards a pending confirmation. Declining a prompt must
// leave state untouched, so this only drops the token.
func (s *Store) CancelDelete(token string) {
	s.pending.Cancel(token)
}

// List returns a copy of all transactions, newest first.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Seed inserts showcase rows without consulting the classifier.
// Validation still applies.
func (s *Store) Seed(txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return err
		}
		if tx.ID == 0 {
			tx.ID = s.nextID()
		}
		s.items = append([]core.Transaction{tx}, s.items...)
	}
	return nil
}

// indexOf is called with the lock held.
func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID is called with the lock held.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for _, tx := range s.items {
		if tx.ID >= id {
			id = tx.ID + 1
		}
	}
	return id
}
