package usecase

import (
	"context"
	"strings"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
)

// In-memory fakes matching the MySQL adapters' observable behavior.

type memCustomers struct {
	nextID int64
	m      map[int64]domain.Customer
}

func newMemCustomers(names ...string) *memCustomers {
	s := &memCustomers{m: map[int64]domain.Customer{}}
	for _, n := range names {
		s.nextID++
		s.m[s.nextID] = domain.Customer{ID: s.nextID, Name: n}
	}
	return s
}

func (s *memCustomers) Create(_ context.Context, c *domain.Customer) error {
	for _, ex := range s.m {
		if ex.Name == c.Name {
			return FieldErrors{"name": "customer with this name already exists."}
		}
	}
	s.nextID++
	c.ID = s.nextID
	s.m[c.ID] = *c
	return nil
}

func (s *memCustomers) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *memCustomers) List(context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(s.m))
	for _, c := range s.m {
		out = append(out, c)
	}
	return out, nil
}

func (s *memCustomers) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := s.m[c.ID]; !ok {
		return ErrNotFound
	}
	s.m[c.ID] = *c
	return nil
}

func (s *memCustomers) Delete(_ context.Context, id int64) error {
	if _, ok := s.m[id]; !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	return nil
}

type memProducts struct {
	nextID int64
	m      map[int64]domain.Product
}

func newMemProducts(products ...domain.Product) *memProducts {
	s := &memProducts{m: map[int64]domain.Product{}}
	for _, p := range products {
		s.nextID++
		p.ID = s.nextID
		s.m[p.ID] = p
	}
	return s
}

func (s *memProducts) Create(_ context.Context, p *domain.Product) error {
	s.nextID++
	p.ID = s.nextID
	s.m[p.ID] = *p
	return nil
}

func (s *memProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memProducts) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.m[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *memProducts) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProducts) Update(_ context.Context, p *domain.Product) error {
	if _, ok := s.m[p.ID]; !ok {
		return ErrNotFound
	}
	s.m[p.ID] = *p
	return nil
}

func (s *memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := s.m[id]; !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	return nil
}

type memOrders struct {
	seq        int64
	nextID     int64
	nextItemID int64
	m          map[int64]*domain.Order
	events     []OutboxMessage
}

func newMemOrders() *memOrders {
	return &memOrders{m: map[int64]*domain.Order{}}
}

func (s *memOrders) Create(_ context.Context, o *domain.Order, event EventFunc) error {
	if o.OrderNumber == "" {
		s.seq++
		o.OrderNumber = domain.FormatOrderNumber(s.seq)
	}
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = time.Now().UTC()
	for i := range o.Items {
		s.nextItemID++
		o.Items[i].ID = s.nextItemID
		o.Items[i].OrderID = o.ID
	}
	s.m[o.ID] = cloneOrder(o)
	s.events = append(s.events, event(o))
	return nil
}

func (s *memOrders) Update(_ context.Context, o *domain.Order, replaceItems bool, event EventFunc) error {
	stored, ok := s.m[o.ID]
	if !ok {
		return ErrNotFound
	}
	stored.CustomerID = o.CustomerID
	stored.OrderDate = o.OrderDate
	stored.Address = o.Address
	if replaceItems {
		stored.Items = nil
		for i := range o.Items {
			s.nextItemID++
			o.Items[i].ID = s.nextItemID
			o.Items[i].OrderID = o.ID
		}
		stored.Items = append(stored.Items, o.Items...)
	}
	s.events = append(s.events, event(stored))
	return nil
}

func (s *memOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(o), nil
}

func (s *memOrders) List(_ context.Context, f OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.m {
		if f.Customer != "" && !strings.Contains(strings.ToLower(o.Address), strings.ToLower(f.Customer)) {
			continue // fakes don't model the join; filter SQL is tested in the repo package
		}
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (s *memOrders) Delete(_ context.Context, id int64, event EventFunc) error {
	o, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	s.events = append(s.events, event(o))
	return nil
}

func (s *memOrders) IDsForCustomer(_ context.Context, customerID int64) ([]int64, error) {
	var ids []int64
	for id, o := range s.m {
		if o.CustomerID == customerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *memOrders) IDsForProduct(_ context.Context, productID int64) ([]int64, error) {
	var ids []int64
	for id, o := range s.m {
		for _, it := range o.Items {
			if it.ProductID == productID {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp
}

type memIdem struct {
	locks map[string]bool
	vals  map[string]string
}

func newMemIdem() *memIdem {
	return &memIdem{locks: map[string]bool{}, vals: map[string]string{}}
}

func (s *memIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *memIdem) Unlock(_ context.Context, scope, key string) error {
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *memIdem) Remember(_ context.Context, scope, key, value string) error {
	s.vals[scope+":"+key] = value
	return nil
}

func (s *memIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.vals[scope+":"+key]
	return v, ok, nil
}

type memCache struct {
	m           map[int64][]byte
	invalidated []int64
}

func newMemCache() *memCache { return &memCache{m: map[int64][]byte{}} }

func (s *memCache) Get(_ context.Context, id int64) ([]byte, bool, error) {
	b, ok := s.m[id]
	return b, ok, nil
}

func (s *memCache) Set(_ context.Context, id int64, body []byte) error {
	s.m[id] = body
	return nil
}

func (s *memCache) Invalidate(_ context.Context, id int64) error {
	delete(s.m, id)
	s.invalidated = append(s.invalidated, id)
	return nil
}
