package http

import (
	"context"
	"sort"
	"strings"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/shopspring/decimal"
)

type fakeCustomers struct {
	nextID int64
	m      map[int64]domain.Customer
}

func (s *fakeCustomers) Create(_ context.Context, c *domain.Customer) error {
	for _, ex := range s.m {
		if ex.Name == c.Name {
			return usecase.FieldErrors{"name": "customer with this name already exists."}
		}
	}
	s.nextID++
	c.ID = s.nextID
	s.m[c.ID] = *c
	return nil
}

func (s *fakeCustomers) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := s.m[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &c, nil
}

func (s *fakeCustomers) List(context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(s.m))
	for _, c := range s.m {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCustomers) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := s.m[c.ID]; !ok {
		return usecase.ErrNotFound
	}
	s.m[c.ID] = *c
	return nil
}

func (s *fakeCustomers) Delete(_ context.Context, id int64) error {
	if _, ok := s.m[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(s.m, id)
	return nil
}

type fakeProducts struct {
	nextID int64
	m      map[int64]domain.Product
}

func (s *fakeProducts) add(name, weight string) int64 {
	s.nextID++
	s.m[s.nextID] = domain.Product{ID: s.nextID, Name: name, Weight: decimal.RequireFromString(weight)}
	return s.nextID
}

func (s *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	s.nextID++
	p.ID = s.nextID
	s.m[p.ID] = *p
	return nil
}

func (s *fakeProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.m[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &p, nil
}

func (s *fakeProducts) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.m[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakeProducts) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProducts) Update(_ context.Context, p *domain.Product) error {
	if _, ok := s.m[p.ID]; !ok {
		return usecase.ErrNotFound
	}
	s.m[p.ID] = *p
	return nil
}

func (s *fakeProducts) Delete(_ context.Context, id int64) error {
	if _, ok := s.m[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(s.m, id)
	return nil
}

type fakeOrders struct {
	seq        int64
	nextID     int64
	nextItemID int64
	m          map[int64]*domain.Order
	customers  *fakeCustomers
	products   *fakeProducts
	lastFilter usecase.OrderFilter
}

func (s *fakeOrders) Create(_ context.Context, o *domain.Order, event usecase.EventFunc) error {
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
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	s.m[o.ID] = &cp
	_ = event(o)
	return nil
}

func (s *fakeOrders) Update(_ context.Context, o *domain.Order, replaceItems bool, event usecase.EventFunc) error {
	stored, ok := s.m[o.ID]
	if !ok {
		return usecase.ErrNotFound
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
	_ = event(stored)
	return nil
}

func (s *fakeOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := s.m[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

// List mirrors the SQL filter semantics: case-insensitive substring on the
// customer name, and every product term must match some item (conjunctive).
func (s *fakeOrders) List(_ context.Context, f usecase.OrderFilter) ([]domain.Order, error) {
	s.lastFilter = f
	out := make([]domain.Order, 0, len(s.m))
	for _, o := range s.m {
		if s.matchesFilter(o, f) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeOrders) matchesFilter(o *domain.Order, f usecase.OrderFilter) bool {
	if f.Customer != "" {
		name := strings.ToLower(s.customers.m[o.CustomerID].Name)
		if !strings.Contains(name, strings.ToLower(f.Customer)) {
			return false
		}
	}
	for _, term := range f.Products {
		term = strings.ToLower(term)
		found := false
		for _, it := range o.Items {
			if strings.Contains(strings.ToLower(s.products.m[it.ProductID].Name), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *fakeOrders) IDsForCustomer(_ context.Context, customerID int64) ([]int64, error) {
	var ids []int64
	for id, o := range s.m {
		if o.CustomerID == customerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeOrders) IDsForProduct(_ context.Context, productID int64) ([]int64, error) {
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

func (s *fakeOrders) Delete(_ context.Context, id int64, event usecase.EventFunc) error {
	o, ok := s.m[id]
	if !ok {
		return usecase.ErrNotFound
	}
	delete(s.m, id)
	_ = event(o)
	return nil
}

type fakeCache struct {
	m map[int64][]byte
}

func (s *fakeCache) Get(_ context.Context, id int64) ([]byte, bool, error) {
	b, ok := s.m[id]
	return b, ok, nil
}

func (s *fakeCache) Set(_ context.Context, id int64, body []byte) error {
	s.m[id] = body
	return nil
}

func (s *fakeCache) Invalidate(_ context.Context, id int64) error {
	delete(s.m, id)
	return nil
}

type fakeIdem struct {
	locks map[string]bool
	vals  map[string]string
}

func (s *fakeIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *fakeIdem) Unlock(_ context.Context, scope, key string) error {
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	s.vals[scope+":"+key] = value
	return nil
}

func (s *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.vals[scope+":"+key]
	return v, ok, nil
}
