package handlers

import (

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucInventory "github.com/BruksfildServices01/barber-queue/internal/usecase/inventory"
)

type ProductHandler struct {
	products *ucInventory.Products
}

func NewProductHandler(products *ucInventory.Products) *ProductHandler {
	return &ProductHandler{products: products}
}

// --------- Requests ---------

type ProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinQuantity *int            `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (r ProductRequest) input() ucInventory.ProductInput {
	return ucInventory.ProductInput{
		Name:        r.Name,
		Category:    r.Category,
		Quantity:    r.Quantity,
		MinQuantity: r.MinQuantity,
		Price:       r.Price,
	}
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	ov, err := h.products.List(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ov)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.products.Create(c.Request.Context(), barberID(c), req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.products.Update(c.Request.Context(), barberID(c), id, req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), barberID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *ProductHandler) Adjust(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.products.Adjust(c.Request.Context(), barberID(c), id, req.Delta)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}
