package http

import (
	"errors"
	"net/http"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products usecase.ProductRepo
	del      *usecase.DeleteProduct
}

func NewProductHandler(products usecase.ProductRepo, del *usecase.DeleteProduct) *ProductHandler {
	return &ProductHandler{products: products, del: del}
}

type productReq struct {
	Name   string          `json:"name" binding:"required"`
	Weight decimal.Decimal `json:"weight" binding:"required"`
}

type productResp struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Weight decimal.Decimal `json:"weight"`
}

func toProductResp(p *domain.Product) productResp {
	return productResp{ID: p.ID, Name: p.Name, Weight: p.Weight}
}

func weightFieldErr(err error) (usecase.FieldErrors, bool) {
	switch {
	case errors.Is(err, domain.ErrWeightNotPositive):
		return usecase.FieldErrors{"weight": "Weight must be positive"}, true
	case errors.Is(err, domain.ErrWeightTooHeavy):
		return usecase.FieldErrors{"weight": "Weight cannot exceed 25kg"}, true
	}
	return nil, false
}

func (h *ProductHandler) List(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	products, err := h.products.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]productResp, 0, len(products))
	for i := range products {
		out = append(out, toProductResp(&products[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	p := &domain.Product{Name: req.Name, Weight: req.Weight}
	if err := p.Validate(); err != nil {
		if ferr, ok := weightFieldErr(err); ok {
			c.JSON(http.StatusBadRequest, ferr)
			return
		}
		writeError(c, err)
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	if err := h.products.Create(ctx, p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResp(p))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	p, err := h.products.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(p))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	p := &domain.Product{ID: id, Name: req.Name, Weight: req.Weight}
	if err := p.Validate(); err != nil {
		if ferr, ok := weightFieldErr(err); ok {
			c.JSON(http.StatusBadRequest, ferr)
			return
		}
		writeError(c, err)
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	if err := h.products.Update(ctx, p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(p))
}

// Delete cascades to order items referencing the product and invalidates the
// cached bodies of the orders that held them.
func (h *ProductHandler) Delete(c *gin.Context) {
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
