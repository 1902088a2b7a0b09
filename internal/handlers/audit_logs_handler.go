package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List answers ?action&entity&from&to&page&limit. from and to are days in the
// barbershop timezone, both inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	shop := middleware.Barbershop(c)

	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return
	}
	page, limit, offset := pagination(c)

	// --------------------------------------------------
	// Query base (sempre protegido por barbershop)
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", shop.ID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	loc := timezone.Location(shop.Timezone)
	if from != nil {
		day, _ := domain.ParseDate(*from)
		start := dayStart(day, loc)
		q = q.Where("created_at >= ?", start.UTC())
	}
	if to != nil {
		day, _ := domain.ParseDate(*to)
		end := dayStart(day, loc).AddDate(0, 0, 1)
		q = q.Where("created_at < ?", end.UTC())
	}

	// --------------------------------------------------
	// Total e listagem
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err, commonErrors)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err, commonErrors)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
