package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

type ClientHandler struct {
	db      *gorm.DB
	clients *repository.ClientGormRepository
	audit   *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{
		db:      db,
		clients: repository.NewClientGormRepository(db),
		audit:   audit,
	}
}

var clientErrors = merge(httperr.Mapping{
	"client_not_found": {Status: http.StatusNotFound, Message: "Cliente não encontrado."},
	"invalid_phone":    {Status: http.StatusBadRequest, Message: "Telefone inválido."},
	"invalid_email":    {Status: http.StatusBadRequest, Message: "E-mail inválido."},
})

// --------- Requests ---------

type ClientRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
	Notes     *string `json:"notes"`
}

// ClientDetail is a client with its loyalty standing and recent visits.
type ClientDetail struct {
	models.Client
	RewardsAvailable int                  `json:"rewards_available"`
	Appointments     []models.Appointment `json:"appointments"`
}

const clientHistoryLimit = 20

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	shop := middleware.Barbershop(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", shop.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httperr.BadRequest(c, "invalid_request", "Nome é obrigatório.")
		return
	}

	client := models.Client{BarbershopID: shop.ID}
	if err := applyClient(&client, &req); err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	h.record(c, "client_created", client.ID, gin.H{"name": client.Name})
	httpresp.Created(c, client)
}

// ======================================================
// GET CLIENT
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	shop := middleware.Barbershop(c)
	ctx := c.Request.Context()

	var client models.Client
	if err := h.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", c.Param("id"), shop.ID).
		First(&client).Error; err != nil {
		httperr.Respond(c, notFoundAs(err, "client_not_found"), clientErrors)
		return
	}

	var plans []models.LoyaltyPlan
	if err := h.db.WithContext(ctx).
		Where("barbershop_id = ? AND is_active = ?", shop.ID, true).
		Order("created_at ASC").
		Limit(1).
		Find(&plans).Error; err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	detail := ClientDetail{Client: client, Appointments: []models.Appointment{}}
	if len(plans) > 0 {
		detail.RewardsAvailable = loyalty.RewardsAvailable(client.LoyaltyPoints, &plans[0])
	}

	if err := h.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("barbershop_id = ? AND client_id = ?", shop.ID, client.ID).
		Order("date DESC, start_time DESC").
		Limit(clientHistoryLimit).
		Find(&detail.Appointments).Error; err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	httpresp.OK(c, detail)
}

// ======================================================
// UPDATE CLIENT
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	shop := middleware.Barbershop(c)
	ctx := c.Request.Context()

	var client models.Client
	if err := h.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", c.Param("id"), shop.ID).
		First(&client).Error; err != nil {
		httperr.Respond(c, notFoundAs(err, "client_not_found"), clientErrors)
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := applyClient(&client, &req); err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	// Running totals belong to the completion flow.
	if err := h.db.WithContext(ctx).
		Model(&client).
		Select("name", "phone", "email", "birth_date", "notes").
		Updates(&client).Error; err != nil {
		httperr.Respond(c, err, clientErrors)
		return
	}

	h.record(c, "client_updated", client.ID, nil)
	httpresp.OK(c, client)
}

// ======================================================
// RECOMPUTE TOTALS
// ======================================================
func (h *ClientHandler) Recompute(c *gin.Context) {
	shop := middleware.Barbershop(c)

	client, err := h.clients.RecomputeTotals(c.Request.Context(), shop.ID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, notFoundAs(err, "client_not_found"), clientErrors)
		return
	}

	h.record(c, "client_recomputed", client.ID, gin.H{
		"total_visits": client.TotalVisits,
		"total_spent":  client.TotalSpent,
	})
	httpresp.OK(c, client)
}

func applyClient(client *models.Client, req *ClientRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return httperr.ErrBusiness("invalid_request")
		}
		client.Name = name
	}
	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if *req.Phone != "" && phone == "" {
			return httperr.ErrBusiness("invalid_phone")
		}
		client.Phone = phone
	}
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if strings.TrimSpace(*req.Email) != "" && email == "" {
			return httperr.ErrBusiness("invalid_email")
		}
		client.Email = email
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		if _, err := domain.ParseDate(*req.BirthDate); err != nil {
			return httperr.ErrBusiness("invalid_date")
		}
	}
	setField(&client.BirthDate, req.BirthDate)
	setField(&client.Notes, req.Notes)
	return nil
}

func (h *ClientHandler) record(c *gin.Context, action, id string, meta any) {
	h.audit.Dispatch(audit.Event{
		BarbershopID: middleware.Barbershop(c).ID,
		UserID:       audit.Ptr(middleware.UserID(c)),
		Action:       action,
		Entity:       "client",
		EntityID:     audit.Ptr(id),
		Metadata:     meta,
	})
}
