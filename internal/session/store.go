package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"localwear-storefront/internal/domain"
	"localwear-storefront/internal/repository/kv"
)

// Durable keys. The cart is never written to storage.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store holds the signed-in identity and the cart. It is shared by handle; mutations are
// serialised by mu and every mutation is published to subscribers.
type Store struct {
	mu       sync.RWMutex
	repo     kv.Repository
	logger   *log.Logger
	token    string
	identity *domain.Identity
	lines    []domain.CartLine

	subsMu  sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// New hydrates the identity from repo. Missing or corrupt entries leave the store signed out.
func New(ctx context.Context, repo kv.Repository, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		repo:   repo,
		logger: logger,
		subs:   make(map[int]chan Event),
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	token, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("session: read token: %v", err)
		}
		return
	}
	raw, err := s.repo.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("session: read user: %v", err)
		}
		return
	}
	if token == "" || raw == "" {
		return
	}
	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.logger.Printf("session: ignoring corrupt stored user: %v", err)
		return
	}
	s.token = token
	s.identity = &identity
	s.logger.Printf("session: restored user id=%d role=%s", identity.ID, identity.Role)
}

// Login persists token and identity and makes identity current. The token is not inspected.
func (s *Store) Login(ctx context.Context, token string, identity domain.Identity) {
	if err := s.repo.Set(ctx, TokenKey, token); err != nil {
		s.logger.Printf("session: persist token: %v", err)
	}
	if raw, err := json.Marshal(identity); err != nil {
		s.logger.Printf("session: encode user: %v", err)
	} else if err := s.repo.Set(ctx, UserKey, string(raw)); err != nil {
		s.logger.Printf("session: persist user: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	id := identity
	s.identity = &id
	s.publishLocked(EventSession)
}

// Logout erases durable state and clears identity and cart.
func (s *Store) Logout(ctx context.Context) {
	if err := s.repo.Delete(ctx, TokenKey, UserKey); err != nil {
		s.logger.Printf("session: erase stored session: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = nil
	s.lines = nil
	s.publishLocked(EventSession)
	s.publishLocked(EventCart)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns a copy of the current identity.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// AddToCart merges into the line with the same product and size or appends a new one.
// Quantities below 1 are ignored. Stock is not checked here.
func (s *Store) AddToCart(product domain.Product, size string, quantity int) {
	if quantity < 1 {
		return
	}
	size = domain.NormalizeSize(size)

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := false
	for i := range s.lines {
		if s.lines[i].ProductID == product.ID && s.lines[i].Size == size {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, domain.CartLine{
			ProductID: product.ID,
			Size:      size,
			Quantity:  quantity,
			Product:   product,
		})
	}
	s.publishLocked(EventCart)
}

// RemoveFromCart drops the line for productID and size; absent lines are a no-op.
func (s *Store) RemoveFromCart(productID int64, size string) {
	size = domain.NormalizeSize(size)

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	removed := false
	for _, l := range s.lines {
		if l.ProductID == productID && l.Size == size {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept
	if removed {
		s.publishLocked(EventCart)
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.publishLocked(EventCart)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// CartTotal sums price * quantity over every line. It is recomputed on each call.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount is the sum of quantities, shown on the cart badge.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemCountLocked()
}

func (s *Store) itemCountLocked() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Ping reports whether durable storage is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
