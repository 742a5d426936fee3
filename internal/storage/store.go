package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Store owns every collection in the system. All mutations go through it,
// guarded by one lock; module services receive it by handle, never through
// a package-level singleton.
type Store struct {
	mu    sync.RWMutex
	snaps Snapshots

	products   []domain.Product
	categories []string
	customers  []domain.Customer
	orders     []domain.Order // most-recent-first
	users      []domain.User

	dirty map[string]bool // collections touched inside the current transaction
}

func NewStore(snaps Snapshots) *Store {
	return &Store{snaps: snaps}
}

// ── transaction plumbing ──────────────────────────────────────────────────────

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

// rlock/wlock skip the mutex when the context is already inside a
// transaction, which holds the write lock for its whole extent.
func (s *Store) rlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RLock()
	}
}

func (s *Store) runlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RUnlock()
	}
}

func (s *Store) wlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Lock()
	}
}

func (s *Store) wunlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Unlock()
	}
}

// WithTransaction runs fn as one commit: the write lock is held throughout,
// in-memory changes are rolled back if fn fails, and dirty collections are
// flushed to the snapshot store only after fn succeeds. Nested calls join
// the enclosing transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.snapshotState()
	s.dirty = make(map[string]bool)
	ctx = context.WithValue(ctx, txKey{}, true)

	if err := fn(ctx); err != nil {
		s.restoreState(saved)
		s.dirty = nil
		return err
	}

	keys := make([]string, 0, len(s.dirty))
	for k := range s.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.dirty = nil
	for _, k := range keys {
		if err := s.flush(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// markDirty records a mutation: inside a transaction the flush is deferred
// to commit, otherwise the affected collection is persisted immediately.
func (s *Store) markDirty(ctx context.Context, key string) error {
	if inTx(ctx) {
		s.dirty[key] = true
		return nil
	}
	return s.flush(ctx, key)
}

func (s *Store) flush(ctx context.Context, key string) error {
	switch key {
	case KeyProducts:
		return s.snaps.Save(ctx, key, s.products)
	case KeyCategories:
		return s.snaps.Save(ctx, key, s.categories)
	case KeyCustomers:
		return s.snaps.Save(ctx, key, s.customers)
	case KeyOrders:
		return s.snaps.Save(ctx, key, s.orders)
	case KeyUsers:
		return s.snaps.Save(ctx, key, s.users)
	}
	return fmt.Errorf("unknown collection %q", key)
}

type storeState struct {
	products   []domain.Product
	categories []string
	customers  []domain.Customer
	orders     []domain.Order
	users      []domain.User
}

func (s *Store) snapshotState() storeState {
	st := storeState{
		products:   append([]domain.Product(nil), s.products...),
		categories: append([]string(nil), s.categories...),
		customers:  make([]domain.Customer, len(s.customers)),
		orders:     make([]domain.Order, len(s.orders)),
		users:      append([]domain.User(nil), s.users...),
	}
	for i, c := range s.customers {
		st.customers[i] = copyCustomer(c)
	}
	for i, o := range s.orders {
		st.orders[i] = copyOrder(o)
	}
	return st
}

func (s *Store) restoreState(st storeState) {
	s.products = st.products
	s.categories = st.categories
	s.customers = st.customers
	s.orders = st.orders
	s.users = st.users
}

func copyCustomer(c domain.Customer) domain.Customer {
	c.History = append([]domain.CustomerHistory(nil), c.History...)
	return c
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.CartItem(nil), o.Items...)
	return o
}

// ── startup / backup ──────────────────────────────────────────────────────────

// Load reads every collection from the snapshot store. Missing snapshots
// leave the collection empty; this is the normal first run.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, dst := range map[string]interface{}{
		KeyProducts:   &s.products,
		KeyCategories: &s.categories,
		KeyCustomers:  &s.customers,
		KeyOrders:     &s.orders,
		KeyUsers:      &s.users,
	} {
		if err := s.snaps.Load(ctx, key, dst); err != nil {
			if errors.Is(err, ErrSnapshotMissing) {
				continue
			}
			return err
		}
	}
	return nil
}

// Backup writes a dated copy of every collection. Wired to the nightly cron.
func (s *Store) Backup(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stamp := time.Now().Format("2006-01-02")
	for key, v := range map[string]interface{}{
		KeyProducts:   s.products,
		KeyCategories: s.categories,
		KeyCustomers:  s.customers,
		KeyOrders:     s.orders,
		KeyUsers:      s.users,
	} {
		if err := s.snaps.Save(ctx, "backup:"+key+":"+stamp, v); err != nil {
			return err
		}
	}
	return nil
}

// ── products ──────────────────────────────────────────────────────────────────

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	for _, existing := range s.products {
		if existing.Barcode == p.Barcode {
			return fmt.Errorf("%s: %w", p.Barcode, domain.ErrDuplicateBarcode)
		}
	}
	s.products = append(s.products, *p)
	return s.markDirty(ctx, KeyProducts)
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
}

func (s *Store) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	for _, p := range s.products {
		if p.Barcode == barcode {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("barcode %s: %w", barcode, domain.ErrNotFound)
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	return append([]domain.Product(nil), s.products...), nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	for _, existing := range s.products {
		if existing.Barcode == p.Barcode && existing.ID != p.ID {
			return fmt.Errorf("%s: %w", p.Barcode, domain.ErrDuplicateBarcode)
		}
	}
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products[i] = *p
			return s.markDirty(ctx, KeyProducts)
		}
	}
	return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
}

// DeleteProduct is idempotent: deleting an absent product is a no-op.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return s.markDirty(ctx, KeyProducts)
		}
	}
	return nil
}

func (s *Store) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}
	for i, p := range s.products {
		if p.ID == id {
			if qty > p.Stock {
				return fmt.Errorf("%s: %w", p.Name, domain.ErrInsufficientStock)
			}
			s.products[i].Stock -= qty
			return s.markDirty(ctx, KeyProducts)
		}
	}
	return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
}

func (s *Store) LowStockCount(ctx context.Context) (int, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	count := 0
	for _, p := range s.products {
		if p.Stock <= p.MinStock {
			count++
		}
	}
	return count, nil
}

// ── categories ────────────────────────────────────────────────────────────────

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	return append([]string(nil), s.categories...), nil
}

// AddCategory keeps the set deduplicated and sorted; adding an existing
// category is a no-op.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	for _, c := range s.categories {
		if c == name {
			return nil
		}
	}
	s.categories = append(s.categories, name)
	sort.Strings(s.categories)
	return s.markDirty(ctx, KeyCategories)
}

// DeleteCategory does not cascade: products keep their free-text category.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	for i, c := range s.categories {
		if c == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return s.markDirty(ctx, KeyCategories)
		}
	}
	return nil
}

// ── customers ─────────────────────────────────────────────────────────────────

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.customers = append(s.customers, copyCustomer(*c))
	return s.markDirty(ctx, KeyCustomers)
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	for _, c := range s.customers {
		if c.ID == id {
			cp := copyCustomer(c)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	out := make([]domain.Customer, len(s.customers))
	for i, c := range s.customers {
		out[i] = copyCustomer(c)
	}
	return out, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	for i, existing := range s.customers {
		if existing.ID == c.ID {
			s.customers[i] = copyCustomer(*c)
			return s.markDirty(ctx, KeyCustomers)
		}
	}
	return fmt.Errorf("customer %s: %w", c.ID, domain.ErrNotFound)
}

// TotalDebt returns the outstanding debt across all customers and how many
// customers owe anything, for the dashboard.
func (s *Store) TotalDebt(ctx context.Context) (float64, int, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	var total float64
	debtors := 0
	for _, c := range s.customers {
		total += c.CurrentDebt
		if c.CurrentDebt > 0 {
			debtors++
		}
	}
	return total, debtors, nil
}

// ── orders ────────────────────────────────────────────────────────────────────

// AppendOrder prepends so iteration is most-recent-first.
func (s *Store) AppendOrder(ctx context.Context, o *domain.Order) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.orders = append([]domain.Order{copyOrder(*o)}, s.orders...)
	return s.markDirty(ctx, KeyOrders)
}

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = copyOrder(o)
	}
	return out, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.users = append(s.users, *u)
	return s.markDirty(ctx, KeyUsers)
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	return append([]domain.User(nil), s.users...), nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	for _, u := range s.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}
