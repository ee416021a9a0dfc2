// Package confirm implements the two-step destructive-action handshake:
// a delete request yields a single-use token, and only confirming the
// token performs the mutation. Declining or losing the token leaves
// state untouched.
package confirm

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownToken = errors.New("unknown or expired confirmation token")

// DefaultTTL bounds how long a request stays confirmable.
const DefaultTTL = 5 * time.Minute

type pending struct {
	id        int64
	requested time.Time
}

// Registry issues and redeems confirmation tokens for int64 entity ids.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	tokens  map[string]pending
	nowFunc func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		ttl:     DefaultTTL,
		tokens:  make(map[string]pending),
		nowFunc: time.Now,
	}
}

// Request issues a token for the given entity id.
func (r *Registry) Request(id int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := uuid.NewString()
	r.tokens[token] = pending{id: id, requested: r.nowFunc()}
	return token
}

// Redeem consumes the token and returns the entity id it was issued
// for. Unknown, reused and expired tokens all fail the same way.
func (r *Registry) Redeem(token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.tokens[token]
	if !ok {
		return 0, ErrUnknownToken
	}
	delete(r.tokens, token)
	if r.nowFunc().Sub(p.requested) > r.ttl {
		return 0, ErrUnknownToken
	}
	return p.id, nil
}

// Cancel discards a pending token without touching anything else.
func (r *Registry) Cancel(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// SetClock overrides the time source, for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nowFunc = now
}
