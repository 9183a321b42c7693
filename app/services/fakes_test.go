package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

// In-memory store fakes. They mirror the repository semantics, including the
// conditional decrement, so workflow tests exercise the same contract the
// mongo implementations provide.

type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[primitive.ObjectID]models.Account{}}
}

func (s *fakeAccountStore) Create(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == account.Username {
			return models.ErrUsernameTaken
		}
	}
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	s.accounts[account.ID] = *account
	return nil
}

func (s *fakeAccountStore) FindByUsername(_ context.Context, username string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Account{}, models.ErrNotFound
}

func (s *fakeAccountStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, models.ErrNotFound
	}
	return a, nil
}

func (s *fakeAccountStore) All(_ context.Context, _, _ int) ([]models.Account, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
	incErr   error                        // injected IncrementStock failure
	decHook  func(id primitive.ObjectID) // runs before each conditional decrement
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (s *fakeProductStore) add(p models.Product) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = p
	return p.ID
}

func (s *fakeProductStore) get(id primitive.ObjectID) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	s.products[product.ID] = *product
	return nil
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return p, nil
}

func (s *fakeProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[primitive.ObjectID]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakeProductStore) Update(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return models.ErrNotFound
	}
	s.products[product.ID] = *product
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) SetApproved(_ context.Context, id primitive.ObjectID, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.ErrNotFound
	}
	p.Approved = approved
	s.products[id] = p
	return nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, qty int64) (bool, error) {
	if s.decHook != nil {
		s.decHook(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	s.products[id] = p
	return true, nil
}

func (s *fakeProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incErr != nil {
		return s.incErr
	}
	p, ok := s.products[id]
	if !ok {
		return models.ErrNotFound
	}
	p.Quantity += qty
	s.products[id] = p
	return nil
}

func (s *fakeProductStore) ListApproved(_ context.Context, category string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Approved && (category == "" || p.Category == category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) ListBySeller(_ context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Seller == seller {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) All(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type cartKey struct {
	buyer, product primitive.ObjectID
}

type fakeCartStore struct {
	mu       sync.Mutex
	lines    map[cartKey]models.CartItem
	clearErr error // injected ClearForBuyer failure
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{lines: map[cartKey]models.CartItem{}}
}

func (s *fakeCartStore) Upsert(_ context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cartKey{buyer, product}
	item, ok := s.lines[key]
	if !ok {
		item = models.CartItem{ID: primitive.NewObjectID(), Buyer: buyer, Product: product, CreatedAt: time.Now()}
	}
	item.Quantity = qty
	item.UpdatedAt = time.Now()
	s.lines[key] = item
	return item, nil
}

func (s *fakeCartStore) SetQuantity(_ context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cartKey{buyer, product}
	item, ok := s.lines[key]
	if !ok {
		return models.CartItem{}, models.ErrNotFound
	}
	item.Quantity = qty
	item.UpdatedAt = time.Now()
	s.lines[key] = item
	return item, nil
}

func (s *fakeCartStore) Remove(_ context.Context, buyer, product primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lines, cartKey{buyer, product})
	return nil
}

func (s *fakeCartStore) ListForBuyer(_ context.Context, buyer primitive.ObjectID) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, 0)
	for key, item := range s.lines {
		if key.buyer == buyer {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeCartStore) ClearForBuyer(_ context.Context, buyer primitive.ObjectID, products []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	for _, product := range products {
		delete(s.lines, cartKey{buyer, product})
	}
	return nil
}

func (s *fakeCartStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

type fakeOrderStore struct {
	mu        sync.Mutex
	orders    []models.Order
	createErr error // injected Create failure
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{}
}

// Create mirrors the partial unique index on {buyer, idempotency_key}:
// only orders that carry a key participate in the uniqueness check, so any
// number of keyless orders per buyer insert cleanly.
func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if order.IdempotencyKey != "" {
		for _, o := range s.orders {
			if o.Buyer == order.Buyer && o.IdempotencyKey == order.IdempotencyKey {
				return models.ErrConflict
			}
		}
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, models.ErrNotFound
}

func (s *fakeOrderStore) FindByIdempotencyKey(_ context.Context, buyer primitive.ObjectID, key string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.Buyer == buyer && o.IdempotencyKey == key {
			return o, nil
		}
	}
	return models.Order{}, models.ErrNotFound
}

func (s *fakeOrderStore) ListByBuyer(_ context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.Buyer == buyer {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) All(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, int64(len(out)), nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			s.orders[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeOrderStore) ExistsForProduct(_ context.Context, product primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		for _, item := range o.Items {
			if item.Product == product {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *fakeOrderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
