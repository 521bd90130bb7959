package usecase

import (
	"sync"

	"github.com/maurofranchi/gamegear/internal/domain"
)

// Snapshot is an immutable view of one shopper's session state. Copies
// handed to observers and adapters are detached from later transitions.
type Snapshot struct {
	Cart     domain.CartState
	Wishlist domain.WishlistState
	Filter   domain.FilterState
}

type Observer func(Snapshot)

// CartLineView is the presentation shape of one cart line.
type CartLineView struct {
	Product   domain.Product
	Quantity  int
	LineTotal float64
}

// Session owns the state aggregate for one shopper: catalog reference,
// cart ledger, wishlist set and filter. Mutations apply pure domain
// transitions and swap whole snapshots, so an observer never sees a
// partially applied update.
type Session struct {
	catalog *domain.Catalog

	mu        sync.Mutex
	cart      domain.CartState
	wishlist  domain.WishlistState
	filter    domain.FilterState
	observers []Observer
}

func NewSession(catalog *domain.Catalog) *Session {
	return &Session{
		catalog:  catalog,
		cart:     domain.CartState{},
		wishlist: domain.WishlistState{},
		filter:   domain.DefaultFilter(),
	}
}

// Restore rebuilds a session from a persisted snapshot, re-validating it
// against the catalog: lines for unknown products are dropped, duplicate
// lines merged, quantities clamped to at least 1, unknown sort keys reset.
func Restore(catalog *domain.Catalog, snap Snapshot) *Session {
	s := NewSession(catalog)
	seen := make(map[int]bool, len(snap.Cart))
	for _, l := range snap.Cart {
		if _, err := catalog.Get(l.ProductID); err != nil {
			continue
		}
		if seen[l.ProductID] {
			s.cart = s.cart.AdjustQuantity(l.ProductID, l.Quantity)
			continue
		}
		seen[l.ProductID] = true
		s.cart = s.cart.Add(l.ProductID)
		if l.Quantity > 1 {
			s.cart = s.cart.AdjustQuantity(l.ProductID, l.Quantity-1)
		}
	}
	for id := range snap.Wishlist {
		if _, err := catalog.Get(id); err != nil {
			continue
		}
		s.wishlist = s.wishlist.Toggle(id)
	}
	s.filter = snap.Filter.Normalize()
	return s
}

func (s *Session) Catalog() *domain.Catalog { return s.catalog }

// Subscribe registers an observer notified after every state transition.
func (s *Session) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Session) notifyLocked() (Snapshot, []Observer) {
	snap := Snapshot{Cart: s.cart, Wishlist: s.wishlist, Filter: s.filter}
	obs := make([]Observer, len(s.observers))
	copy(obs, s.observers)
	return snap, obs
}

// AddItem puts one unit of the product in the cart. Unknown ids surface
// ErrNotFound; zero-stock products are rejected with ErrOutOfStock and
// leave the cart unchanged.
func (s *Session) AddItem(productID int) error {
	p, err := s.catalog.Get(productID)
	if err != nil {
		return err
	}
	if p.Availability() == domain.AvailabilityUnavailable {
		return domain.ErrOutOfStock
	}
	s.mu.Lock()
	s.cart = s.cart.Add(productID)
	snap, obs := s.notifyLocked()
	s.mu.Unlock()
	notify(snap, obs)
	return nil
}

// RemoveItem deletes the product's line. Absent lines are a no-op.
func (s *Session) RemoveItem(productID int) {
	s.mu.Lock()
	s.cart = s.cart.Remove(productID)
	snap, obs := s.notifyLocked()
	s.mu.Unlock()
	notify(snap, obs)
}

// UpdateQuantity adjusts a line by delta, clamped at 1. Deltas are
// advisory: they never fail and never remove the line.
func (s *Session) UpdateQuantity(productID, delta int) {
	s.mu.Lock()
	s.cart = s.cart.AdjustQuantity(productID, delta)
	snap, obs := s.notifyLocked()
	s.mu.Unlock()
	notify(snap, obs)
}

// ToggleWishlist flips membership and reports the new state.
func (s *Session) ToggleWishlist(productID int) bool {
	s.mu.Lock()
	s.wishlist = s.wishlist.Toggle(productID)
	in := s.wishlist.Contains(productID)
	snap, obs := s.notifyLocked()
	s.mu.Unlock()
	notify(snap, obs)
	return in
}

func (s *Session) IsWishlisted(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(productID)
}

func (s *Session) SetFilter(f domain.FilterState) {
	s.mu.Lock()
	s.filter = f.Normalize()
	snap, obs := s.notifyLocked()
	s.mu.Unlock()
	notify(snap, obs)
}

// View derives the filtered, sorted product list for the current filter.
// Recomputed from scratch on each call; the catalog is small enough that
// no memoization is needed.
func (s *Session) View() []domain.Product {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()
	return domain.View(s.catalog.All(), f)
}

func (s *Session) CartLines() []CartLineView {
	s.mu.Lock()
	cart := s.cart
	s.mu.Unlock()
	out := make([]CartLineView, 0, len(cart))
	for _, l := range cart {
		p, err := s.catalog.Get(l.ProductID)
		if err != nil {
			continue
		}
		out = append(out, CartLineView{
			Product:   p,
			Quantity:  l.Quantity,
			LineTotal: p.DiscountedUnitPrice() * float64(l.Quantity),
		})
	}
	return out
}

func (s *Session) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Session) CartSubtotal() float64 {
	s.mu.Lock()
	cart := s.cart
	s.mu.Unlock()
	return cart.Subtotal(s.catalog)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Cart: s.cart, Wishlist: s.wishlist, Filter: s.filter}
}

func notify(snap Snapshot, obs []Observer) {
	for _, fn := range obs {
		fn(snap)
	}
}
