package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customers usecase.CustomerRepo
	del       *usecase.DeleteCustomer
}

func NewCustomerHandler(customers usecase.CustomerRepo, del *usecase.DeleteCustomer) *CustomerHandler {
	return &CustomerHandler{customers: customers, del: del}
}

type customerReq struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

type customerResp struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

func toCustomerResp(c *domain.Customer) customerResp {
	return customerResp{ID: c.ID, Name: c.Name, ContactNumber: c.ContactNumber, Email: c.Email}
}

func (h *CustomerHandler) List(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	customers, err := h.customers.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]customerResp, 0, len(customers))
	for i := range customers {
		out = append(out, toCustomerResp(&customers[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	cust := &domain.Customer{Name: req.Name, ContactNumber: req.ContactNumber, Email: req.Email}
	if err := h.customers.Create(ctx, cust); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResp(cust))
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	cust, err := h.customers.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResp(cust))
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	cust := &domain.Customer{ID: id, Name: req.Name, ContactNumber: req.ContactNumber, Email: req.Email}
	if err := h.customers.Update(ctx, cust); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResp(cust))
}

// Delete cascades to the customer's orders and their items, dropping their
// cached bodies along the way.
func (h *CustomerHandler) Delete(c *gin.Context) {
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

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return 0, false
	}
	return id, true
}

func reqCtx(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}
