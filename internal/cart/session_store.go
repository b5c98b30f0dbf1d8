package cart

import (
	"sync"
	"time"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
)

const (
	// SessionTTL is how long an idle cart survives before being dropped.
	SessionTTL = 90 * time.Minute

	// CleanupInterval is how often the background sweep runs.
	CleanupInterval = 5 * time.Minute
)

// View is the read model the cart and checkout pages consume. Totals are
// derived from the items at read time, never cached.
type View struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
}

type session struct {
	cart    *Cart
	touched time.Time
}

// SessionStore holds one Cart per shopper session, in memory only. Carts
// are gone on restart; that matches the storefront's ephemeral cart
// design. Idle sessions expire after SessionTTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewSessionStore creates the store and starts the expiry sweep.
func NewSessionStore() *SessionStore {
	s := &SessionStore{
		sessions:    make(map[string]*session),
		ttl:         SessionTTL,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *SessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *SessionStore) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// get returns the session's cart, creating it on first use. Caller must
// hold the write lock.
func (s *SessionStore) get(sessionID string) *Cart {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: New()}
		s.sessions[sessionID] = sess
	}
	sess.touched = time.Now()
	return sess.cart
}

func (s *SessionStore) AddItem(sessionID string, item domain.CartItem, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).AddItem(item, quantity)
}

func (s *SessionStore) RemoveItem(sessionID string, productID int64, sizeLabel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).RemoveItem(productID, sizeLabel)
}

func (s *SessionStore) UpdateQuantity(sessionID string, productID int64, sizeLabel string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).UpdateQuantity(productID, sizeLabel, quantity)
}

func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.cart.Clear()
		sess.touched = time.Now()
	}
}

// Items returns a snapshot of the session's line items. An unknown
// session is an empty cart, not an error.
func (s *SessionStore) Items(sessionID string) []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.cart.Items()
	}
	return nil
}

// Get returns the derived read model for the session.
func (s *SessionStore) Get(sessionID string) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return View{Items: []domain.CartItem{}}
	}
	return View{
		Items:     sess.cart.Items(),
		ItemCount: sess.cart.ItemCount(),
		Subtotal:  sess.cart.Subtotal(),
	}
}

// Close stops the expiry sweep and waits for it to finish.
func (s *SessionStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
