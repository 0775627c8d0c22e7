package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barber-queue/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	cancel      *ucAppointment.CancelAppointment
	promote     *ucAppointment.PromoteAppointment
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	promote *ucAppointment.PromoteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		cancel:      cancel,
		promote:     promote,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	ServiceID uint   `json:"service_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:mm
	Notes     string `json:"notes"`
	// semanas; 0/1 = único
	Repeat int `json:"repeat_weeks"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarberID:        barberID(c),
		ActorID:         actorID(c),
		Name:            req.Name,
		Phone:           req.Phone,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		RecurrenceCount: req.Repeat,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// LIST
// ======================================================

// ListByDate: GET /me/appointments?date=YYYY-MM-DD
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.FromError(c, httperr.ErrValidation("invalid_date_or_time"))
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), barberID(c), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

// ListByMonth: GET /me/appointments/month?year=2024&month=3
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.FromError(c, httperr.ErrValidation("invalid_date_or_time"))
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), barberID(c), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// CANCEL / PROMOTE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Promote(c *gin.Context) {
	res, err := h.promote.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, res)
}
