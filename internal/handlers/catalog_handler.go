package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// CatalogHandler manages the barbers, services and service categories of
// the current barbershop.
type CatalogHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCatalogHandler(db *gorm.DB, audit *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{db: db, audit: audit}
}

var catalogErrors = merge(httperr.Mapping{
	"barber_not_found":   {Status: http.StatusNotFound, Message: "Barbeiro não encontrado."},
	"service_not_found":  {Status: http.StatusNotFound, Message: "Serviço não encontrado."},
	"category_not_found": {Status: http.StatusNotFound, Message: "Categoria não encontrada."},
	"invalid_commission": {Status: http.StatusBadRequest, Message: "Comissão deve estar entre 0 e 100."},
})

// --------- Requests ---------

type BarberRequest struct {
	Name           *string          `json:"name"`
	Phone          *string          `json:"phone"`
	Email          *string          `json:"email"`
	PhotoURL       *string          `json:"photo_url"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	IsActive       *bool            `json:"is_active"`
	WorkStartTime  *string          `json:"work_start_time"`
	WorkEndTime    *string          `json:"work_end_time"`
	WorkDays       *string          `json:"work_days"`
}

type ServiceRequest struct {
	CategoryID  *string          `json:"category_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration"`
	IsCombo     *bool            `json:"is_combo"`
	IsActive    *bool            `json:"is_active"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	shop := middleware.Barbershop(c)

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", shop.ID)
	if active := c.Query("active"); active == "true" || active == "false" {
		q = q.Where("is_active = ?", active == "true")
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}
	httpresp.List(c, barbers)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, "invalid_request", "Nome é obrigatório.")
		return
	}

	barber := models.Barber{
		BarbershopID:   shop.ID,
		CommissionRate: models.DefaultCommissionRate,
		IsActive:       true,
	}
	if err := applyBarber(&barber, &req); err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	h.record(c, "barber_created", "barber", barber.ID, gin.H{"name": barber.Name})
	httpresp.Created(c, barber)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var barber models.Barber
	if err := h.find(c.Request.Context(), shop.ID, c.Param("id"), &barber); err != nil {
		httperr.Respond(c, notFoundAs(err, "barber_not_found"), catalogErrors)
		return
	}

	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := applyBarber(&barber, &req); err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&barber).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	h.record(c, "barber_updated", "barber", barber.ID, nil)
	httpresp.OK(c, barber)
}

// DeleteBarber removes a barber. Barbers with appointment history are only
// deactivated.
func (h *CatalogHandler) DeleteBarber(c *gin.Context) {
	h.remove(c, &models.Barber{}, "barber_id", "barber", "barber_not_found")
}

func applyBarber(b *models.Barber, req *BarberRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return httperr.ErrBusiness("invalid_request")
		}
		b.Name = name
	}
	setField(&b.Phone, req.Phone)
	setField(&b.Email, req.Email)
	setField(&b.PhotoURL, req.PhotoURL)
	setField(&b.WorkDays, req.WorkDays)

	if req.CommissionRate != nil {
		if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
			return httperr.ErrBusiness("invalid_commission")
		}
		b.CommissionRate = *req.CommissionRate
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if optionalClock(req.WorkStartTime) != nil || optionalClock(req.WorkEndTime) != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	setField(&b.WorkStartTime, req.WorkStartTime)
	setField(&b.WorkEndTime, req.WorkEndTime)
	return nil
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	shop := middleware.Barbershop(c)

	q := h.db.WithContext(c.Request.Context()).
		Preload("Category").
		Where("barbershop_id = ?", shop.ID)
	if category := c.Query("category_id"); category != "" {
		q = q.Where("category_id = ?", category)
	}
	if active := c.Query("active"); active == "true" || active == "false" {
		q = q.Where("is_active = ?", active == "true")
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || req.Price == nil || req.Duration == nil {
		httperr.BadRequest(c, "invalid_request", "Nome, preço e duração são obrigatórios.")
		return
	}

	service := models.Service{BarbershopID: shop.ID, IsActive: true}
	if err := h.applyService(c.Request.Context(), shop.ID, &service, &req); err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	h.record(c, "service_created", "service", service.ID, gin.H{
		"name":  service.Name,
		"price": service.Price,
	})
	httpresp.Created(c, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var service models.Service
	if err := h.find(c.Request.Context(), shop.ID, c.Param("id"), &service); err != nil {
		httperr.Respond(c, notFoundAs(err, "service_not_found"), catalogErrors)
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.applyService(c.Request.Context(), shop.ID, &service, &req); err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	// Category is a preloaded association; Save must not upsert it.
	service.Category = nil
	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	h.record(c, "service_updated", "service", service.ID, nil)
	httpresp.OK(c, service)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	h.remove(c, &models.Service{}, "service_id", "service", "service_not_found")
}

func (h *CatalogHandler) applyService(
	ctx context.Context,
	barbershopID string,
	s *models.Service,
	req *ServiceRequest,
) error {

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return httperr.ErrBusiness("invalid_request")
		}
		s.Name = name
	}
	setField(&s.Description, req.Description)

	if req.Price != nil {
		if req.Price.IsNegative() {
			return httperr.ErrBusiness("invalid_price")
		}
		s.Price = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return httperr.ErrBusiness("invalid_duration")
		}
		s.Duration = *req.Duration
	}
	if req.IsCombo != nil {
		s.IsCombo = *req.IsCombo
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			s.CategoryID = nil
			return nil
		}
		var category models.ServiceCategory
		if err := h.find(ctx, barbershopID, *req.CategoryID, &category); err != nil {
			return notFoundAs(err, "category_not_found")
		}
		s.CategoryID = &category.ID
	}
	return nil
}

// ======================================================
// CATEGORIES
// ======================================================

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var categories []models.ServiceCategory
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", shop.ID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}
	httpresp.List(c, categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category := models.ServiceCategory{
		BarbershopID: shop.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&category).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	h.record(c, "category_created", "service_category", category.ID, gin.H{"name": category.Name})
	httpresp.Created(c, category)
}

// ======================================================
// Helpers
// ======================================================

// find loads a row of the tenant by id.
func (h *CatalogHandler) find(ctx context.Context, barbershopID, id string, dst any) error {
	return h.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(dst).Error
}

// remove deletes a barber or service, or deactivates it when appointments
// still reference it.
func (h *CatalogHandler) remove(c *gin.Context, model any, fk, entity, notFound string) {
	shop := middleware.Barbershop(c)
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.find(ctx, shop.ID, id, model); err != nil {
		httperr.Respond(c, notFoundAs(err, notFound), catalogErrors)
		return
	}

	var refs int64
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barbershop_id = ? AND "+fk+" = ?", shop.ID, id).
		Count(&refs).Error; err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	q := h.db.WithContext(ctx).Model(model).Where("id = ? AND barbershop_id = ?", id, shop.ID)
	var err error
	action := entity + "_deleted"
	if refs > 0 {
		err = q.Update("is_active", false).Error
		action = entity + "_deactivated"
	} else {
		err = q.Delete(model).Error
	}
	if err != nil {
		httperr.Respond(c, err, catalogErrors)
		return
	}

	h.record(c, action, entity, id, nil)
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) record(c *gin.Context, action, entity, id string, meta any) {
	h.audit.Dispatch(audit.Event{
		BarbershopID: middleware.Barbershop(c).ID,
		UserID:       audit.Ptr(middleware.UserID(c)),
		Action:       action,
		Entity:       entity,
		EntityID:     audit.Ptr(id),
		Metadata:     meta,
	})
}

func setField(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
