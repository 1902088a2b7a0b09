package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list         *appointment.ListAppointments
	create       *appointment.CreateAppointment
	updateStatus *appointment.UpdateAppointmentStatus
}

func NewAppointmentHandler(
	list *appointment.ListAppointments,
	create *appointment.CreateAppointment,
	updateStatus *appointment.UpdateAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:         list,
		create:       create,
		updateStatus: updateStatus,
	}
}

var appointmentErrors = merge(httperr.Mapping{
	"invalid_status":        {Status: http.StatusBadRequest, Message: "Status inválido."},
	"invalid_transition":    {Status: http.StatusBadRequest, Message: "Mudança de status não permitida."},
	"crosses_midnight":      {Status: http.StatusBadRequest, Message: "O atendimento não pode terminar no dia seguinte."},
	"client_required":       {Status: http.StatusBadRequest, Message: "Informe o cliente."},
	"appointment_not_found": {Status: http.StatusNotFound, Message: "Agendamento não encontrado."},
	"service_not_found":     {Status: http.StatusNotFound, Message: "Serviço não encontrado."},
	"barber_not_found":      {Status: http.StatusNotFound, Message: "Barbeiro não encontrado."},
	"client_not_found":      {Status: http.StatusNotFound, Message: "Cliente não encontrado."},
})

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    string           `json:"barber_id" binding:"required"`
	ServiceID   string           `json:"service_id" binding:"required"`
	ClientID    *string          `json:"client_id"`
	ClientName  string           `json:"client_name"`
	ClientPhone string           `json:"client_phone"`
	Date        string           `json:"date" binding:"required"`
	StartTime   string           `json:"start_time" binding:"required"`
	Status      string           `json:"status"`
	Price       *decimal.Decimal `json:"price"`
	Notes       string           `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	shop := middleware.Barbershop(c)

	date, ok := optionalDate(c, "date")
	if !ok {
		return
	}

	apps, err := h.list.Execute(c.Request.Context(), shop.ID, date)
	if err != nil {
		httperr.Respond(c, err, appointmentErrors)
		return
	}

	httpresp.OK(c, apps)
}

func (h *AppointmentHandler) Today(c *gin.Context) {
	apps, err := h.list.Today(c.Request.Context(), middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err, appointmentErrors)
		return
	}

	httpresp.OK(c, apps)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		Barbershop:  middleware.Barbershop(c),
		UserID:      middleware.UserID(c),
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Status:      req.Status,
		Price:       req.Price,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, appointmentErrors)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(
		c.Request.Context(),
		middleware.Barbershop(c),
		middleware.UserID(c),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		httperr.Respond(c, err, appointmentErrors)
		return
	}

	httpresp.OK(c, ap)
}
