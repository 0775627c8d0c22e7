package handlers

import (

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	ucCatalog "github.com/BruksfildServices01/barber-queue/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *ucCatalog.Services
}

func NewServiceHandler(services *ucCatalog.Services) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	DurationMin int              `json:"duration_min"`
	Price       decimal.Decimal  `json:"price"`
	Category    string           `json:"category"`
	Active      *bool            `json:"active"`
	Materials   models.Materials `json:"materials"`
}

func (r ServiceRequest) input() ucCatalog.ServiceInput {
	return ucCatalog.ServiceInput{
		Name:        r.Name,
		Description: r.Description,
		DurationMin: r.DurationMin,
		Price:       r.Price,
		Category:    r.Category,
		Active:      r.Active,
		Materials:   r.Materials,
	}
}

// --------- Handlers ---------

// List: ?active=true keeps only bookable services.
func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.services.List(c.Request.Context(), barberID(c), c.Query("active") == "true")
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.services.Create(c.Request.Context(), barberID(c), req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.services.Update(c.Request.Context(), barberID(c), id, req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}
