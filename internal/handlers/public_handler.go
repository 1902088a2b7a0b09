package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	createPublic *appointment.CreatePublicAppointment
	availability *appointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createPublic *appointment.CreatePublicAppointment,
	availability *appointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		createPublic: createPublic,
		availability: availability,
	}
}

var publicErrors = merge(httperr.Mapping{
	"barbershop_not_found": {Status: http.StatusNotFound, Message: "Barbearia não encontrada."},
	"service_not_found":    {Status: http.StatusNotFound, Message: "Serviço não encontrado."},
	"barber_not_found":     {Status: http.StatusNotFound, Message: "Barbeiro não encontrado."},
	"crosses_midnight":     {Status: http.StatusBadRequest, Message: "O atendimento não pode terminar no dia seguinte."},
	"date_in_past":         {Status: http.StatusBadRequest, Message: "Não é possível agendar em uma data passada."},
	"client_required":      {Status: http.StatusBadRequest, Message: "Informe nome e telefone."},
	"time_conflict":        {Status: http.StatusConflict, Message: "Horário indisponível. Escolha outro horário."},
})

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarbershopSlug string `json:"barbershop_slug" binding:"required"`
	ServiceID      string `json:"service_id" binding:"required"`
	BarberID       string `json:"barber_id" binding:"required"`
	Date           string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime      string `json:"start_time" binding:"required"` // HH:mm
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	Notes          string `json:"notes"`
}

// PublicBarbershop hides owner and contact settings from anonymous visitors.
type PublicBarbershop struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	LogoURL      string `json:"logo_url"`
	CoverURL     string `json:"cover_url"`
	PrimaryColor string `json:"primary_color"`
	OpeningTime  string `json:"opening_time"`
	ClosingTime  string `json:"closing_time"`
	WorkDays     string `json:"work_days"`
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", c.Param("slug")).
		First(&shop).Error; err != nil {
		httperr.Respond(c, notFoundAs(err, "barbershop_not_found"), publicErrors)
		return nil, false
	}
	return &shop, true
}

////////////////////////////////////////////////////////
// BARBERSHOP
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBarbershop(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	httpresp.OK(c, PublicBarbershop{
		ID:           shop.ID,
		Name:         shop.Name,
		Slug:         shop.Slug,
		Description:  shop.Description,
		Address:      shop.Address,
		Phone:        shop.Phone,
		LogoURL:      shop.LogoURL,
		CoverURL:     shop.CoverURL,
		PrimaryColor: shop.PrimaryColor,
		OpeningTime:  shop.OpeningTime,
		ClosingTime:  shop.ClosingTime,
		WorkDays:     shop.WorkDays,
	})
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	services := []models.Service{}
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Category").
		Where("barbershop_id = ? AND is_active = ?", shop.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err, publicErrors)
		return
	}

	httpresp.OK(c, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barbers := []models.Barber{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ? AND is_active = ?", shop.ID, true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Respond(c, err, publicErrors)
		return
	}

	httpresp.OK(c, barbers)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	in := domain.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     c.Query("barberId"),
		ServiceID:    c.Query("serviceId"),
		Date:         c.Query("date"),
	}
	if in.BarberID == "" || in.ServiceID == "" || in.Date == "" {
		httperr.BadRequest(c, "invalid_request", "Informe data, serviço e barbeiro.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), shop, in)
	if err != nil {
		httperr.Respond(c, err, publicErrors)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  in.Date,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.createPublic.Execute(c.Request.Context(), appointment.CreatePublicAppointmentInput{
		Slug:        req.BarbershopSlug,
		ServiceID:   req.ServiceID,
		BarberID:    req.BarberID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, publicErrors)
		return
	}

	httpresp.Created(c, ap)
}
