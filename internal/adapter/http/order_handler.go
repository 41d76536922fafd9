package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	update *usecase.UpdateOrder
	del    *usecase.DeleteOrder
	query  usecase.OrderRepo
	cache  usecase.OrderCache // optional
}

func NewOrderHandler(create *usecase.CreateOrder, update *usecase.UpdateOrder, del *usecase.DeleteOrder, query usecase.OrderRepo, cache usecase.OrderCache) *OrderHandler {
	return &OrderHandler{create: create, update: update, del: del, query: query, cache: cache}
}

type orderItemReq struct {
	Product  int64 `json:"product" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

type createOrderReq struct {
	Customer  int64          `json:"customer" binding:"required"`
	OrderDate string         `json:"order_date" binding:"required"`
	Address   string         `json:"address"`
	OrderItem []orderItemReq `json:"order_item" binding:"dive"`
}

type updateOrderReq struct {
	Customer  *int64          `json:"customer"`
	OrderDate *string         `json:"order_date"`
	Address   *string         `json:"address"`
	OrderItem *[]orderItemReq `json:"order_item" binding:"omitempty,dive"`
}

type orderItemResp struct {
	ID       int64 `json:"id"`
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

type orderResp struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	Customer    int64           `json:"customer"`
	OrderDate   string          `json:"order_date"`
	Address     string          `json:"address"`
	OrderItems  []orderItemResp `json:"order_items"`
}

func toOrderResp(o *domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResp{ID: it.ID, Product: it.ProductID, Quantity: it.Quantity})
	}
	return orderResp{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer:    o.CustomerID,
		OrderDate:   o.OrderDate.Format("2006-01-02"),
		Address:     o.Address,
		OrderItems:  items,
	}
}

func toItemInputs(items []orderItemReq) []usecase.ItemInput {
	out := make([]usecase.ItemInput, len(items))
	for i, it := range items {
		out[i] = usecase.ItemInput{ProductID: it.Product, Quantity: it.Quantity}
	}
	return out
}

// List supports ?customer=<name substring> and ?products=<comma-separated
// name substrings>; every product term must match (conjunctive).
func (h *OrderHandler) List(c *gin.Context) {
	filter := usecase.OrderFilter{Customer: strings.TrimSpace(c.Query("customer"))}
	if raw := c.Query("products"); raw != "" {
		for _, term := range strings.Split(raw, ",") {
			if term = strings.TrimSpace(term); term != "" {
				filter.Products = append(filter.Products, term)
			}
		}
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	orders, err := h.query.List(ctx, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated requests

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	o, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		CustomerID:     req.Customer,
		OrderDate:      req.OrderDate,
		Address:        req.Address,
		Items:          toItemInputs(req.OrderItem),
		IdempotencyKey: idemKey,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResp(o))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	if h.cache != nil {
		if body, hit, _ := h.cache.Get(ctx, id); hit {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	o, err := h.query.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toOrderResp(o)
	if h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			_ = h.cache.Set(ctx, id, body)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	in := usecase.UpdateOrderInput{
		OrderID:    id,
		CustomerID: req.Customer,
		OrderDate:  req.OrderDate,
		Address:    req.Address,
	}
	if req.OrderItem != nil {
		items := toItemInputs(*req.OrderItem)
		in.Items = &items
	}

	o, err := h.update.Execute(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(o))
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	if err := h.del.Execute(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
