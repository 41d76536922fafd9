package usecase

import (
	"context"

	domain "github.com/aq2208/oms-api/internal/entity"
)

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// OrderFilter narrows a listing. Customer is a case-insensitive name
// substring; Products are conjunctive per-term name substrings (an order must
// match every term).
type OrderFilter struct {
	Customer string
	Products []string
}

// OutboxMessage is a lifecycle event staged for publication.
type OutboxMessage struct {
	RoutingKey string
	Payload    []byte
}

// EventFunc builds the event for an order mutation. The repo calls it inside
// the write transaction, after the order number and ids are assigned, so the
// outbox insert is atomic with the order write.
type EventFunc func(o *domain.Order) OutboxMessage

type OrderRepo interface {
	// Create persists the order and its items as one transaction, assigning
	// the order number from the dedicated sequence if the order does not
	// already carry one.
	Create(ctx context.Context, o *domain.Order, event EventFunc) error
	// Update rewrites the mutable order fields; when replaceItems is true the
	// existing item set is deleted and o.Items inserted in its place. Never
	// touches order_number or created_at.
	Update(ctx context.Context, o *domain.Order, replaceItems bool, event EventFunc) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
	Delete(ctx context.Context, id int64, event EventFunc) error
	// IDsForCustomer / IDsForProduct list the orders a customer or product
	// delete will cascade into, so their cached bodies can be invalidated.
	IDsForCustomer(ctx context.Context, customerID int64) ([]int64, error)
	IDsForProduct(ctx context.Context, productID int64) ([]int64, error)
}

type OutboxRecord struct {
	ID         int64
	RoutingKey string
	Payload    []byte
}

type OutboxRepo interface {
	FetchPending(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkSent(ctx context.Context, ids []int64) error
}

// IdempotencyStore tracks caller-supplied request keys. Recall reports
// ok=false both on a miss and on a store failure; the error distinguishes the
// two. Unlock releases a TryLock'd key so a failed attempt can be retried.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// OrderCache holds rendered order detail payloads keyed by order id.
type OrderCache interface {
	Get(ctx context.Context, id int64) ([]byte, bool, error)
	Set(ctx context.Context, id int64, body []byte) error
	Invalidate(ctx context.Context, id int64) error
}
