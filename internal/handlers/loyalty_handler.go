package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type LoyaltyHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewLoyaltyHandler(db *gorm.DB, audit *audit.Dispatcher) *LoyaltyHandler {
	return &LoyaltyHandler{db: db, audit: audit}
}

var loyaltyErrors = merge(httperr.Mapping{
	"invalid_reward_type":  {Status: http.StatusBadRequest, Message: "Tipo de recompensa inválido."},
	"invalid_loyalty_plan": {Status: http.StatusBadRequest, Message: "Pontos por real e meta de pontos devem ser positivos."},
})

type LoyaltyPlanRequest struct {
	Name              string          `json:"name" binding:"required"`
	PointsPerCurrency int             `json:"points_per_currency" binding:"required"`
	RewardThreshold   int             `json:"reward_threshold" binding:"required"`
	RewardValue       decimal.Decimal `json:"reward_value"`
	RewardType        string          `json:"reward_type" binding:"required"`
	IsActive          *bool           `json:"is_active"`
}

func (h *LoyaltyHandler) List(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var plans []models.LoyaltyPlan
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", shop.ID).
		Order("created_at ASC").
		Find(&plans).Error; err != nil {
		httperr.Respond(c, err, loyaltyErrors)
		return
	}
	httpresp.List(c, plans)
}

// Create adds a plan. Completed appointments earn points under the oldest
// active plan.
func (h *LoyaltyHandler) Create(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var req LoyaltyPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	rewardType := strings.ToLower(strings.TrimSpace(req.RewardType))
	if !loyalty.ValidRewardType(rewardType) {
		httperr.Respond(c, httperr.ErrBusiness("invalid_reward_type"), loyaltyErrors)
		return
	}
	if req.PointsPerCurrency <= 0 || req.RewardThreshold <= 0 || req.RewardValue.IsNegative() {
		httperr.Respond(c, httperr.ErrBusiness("invalid_loyalty_plan"), loyaltyErrors)
		return
	}

	plan := models.LoyaltyPlan{
		BarbershopID:      shop.ID,
		Name:              strings.TrimSpace(req.Name),
		PointsPerCurrency: req.PointsPerCurrency,
		RewardThreshold:   req.RewardThreshold,
		RewardValue:       req.RewardValue,
		RewardType:        rewardType,
		IsActive:          req.IsActive == nil || *req.IsActive,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&plan).Error; err != nil {
		httperr.Respond(c, err, loyaltyErrors)
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(middleware.UserID(c)),
		Action:       "loyalty_plan_created",
		Entity:       "loyalty_plan",
		EntityID:     audit.Ptr(plan.ID),
		Metadata:     gin.H{"name": plan.Name},
	})

	httpresp.Created(c, plan)
}
