package usecase

import (
	"encoding/json"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/google/uuid"
)

// Routing keys for order lifecycle events on the topic exchange.
const (
	RKOrderCreated = "order.created"
	RKOrderUpdated = "order.updated"
	RKOrderDeleted = "order.deleted"
)

type OrderEventMsg struct {
	EventID     string    `json:"eventId"`
	OrderID     int64     `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	CustomerID  int64     `json:"customerId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func newOrderEvent(routingKey string) EventFunc {
	return func(o *domain.Order) OutboxMessage {
		body, _ := json.Marshal(OrderEventMsg{
			EventID:     uuid.NewString(),
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			CustomerID:  o.CustomerID,
			OccurredAt:  time.Now().UTC(),
		})
		return OutboxMessage{RoutingKey: routingKey, Payload: body}
	}
}
