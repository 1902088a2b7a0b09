package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/payments"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/subscription"
)

// PackageHandler sells prepaid service packages.
type PackageHandler struct {
	db       *gorm.DB
	checkout *subscription.Checkout
	confirm  *subscription.ConfirmPayment
	audit    *audit.Dispatcher
}

func NewPackageHandler(
	db *gorm.DB,
	checkout *subscription.Checkout,
	confirm *subscription.ConfirmPayment,
	audit *audit.Dispatcher,
) *PackageHandler {
	return &PackageHandler{
		db:       db,
		checkout: checkout,
		confirm:  confirm,
		audit:    audit,
	}
}

var packageErrors = merge(httperr.Mapping{
	"package_not_found": {Status: http.StatusNotFound, Message: "Pacote não encontrado."},
	"client_not_found":  {Status: http.StatusNotFound, Message: "Cliente não encontrado."},
	"invalid_package":   {Status: http.StatusBadRequest, Message: "Sessões e validade devem ser positivas."},
	"payments_disabled": {Status: http.StatusServiceUnavailable, Message: "Pagamentos online indisponíveis."},
})

type PackageRequest struct {
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price" binding:"required"`
	Sessions     int              `json:"sessions" binding:"required"`
	ValidityDays int              `json:"validity_days" binding:"required"`
	IsActive     *bool            `json:"is_active"`
}

type CheckoutRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

// PaymentNotification is the body MercadoPago posts to the webhook.
type PaymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *PackageHandler) List(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var pkgs []models.SubscriptionPackage
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", shop.ID).
		Order("price ASC").
		Find(&pkgs).Error; err != nil {
		httperr.Respond(c, err, packageErrors)
		return
	}
	httpresp.List(c, pkgs)
}

func (h *PackageHandler) Create(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var req PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Price.IsPositive() {
		httperr.Respond(c, httperr.ErrBusiness("invalid_price"), packageErrors)
		return
	}
	if req.Sessions <= 0 || req.ValidityDays <= 0 {
		httperr.Respond(c, httperr.ErrBusiness("invalid_package"), packageErrors)
		return
	}

	pkg := models.SubscriptionPackage{
		BarbershopID: shop.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        *req.Price,
		Sessions:     req.Sessions,
		ValidityDays: req.ValidityDays,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&pkg).Error; err != nil {
		httperr.Respond(c, err, packageErrors)
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(middleware.UserID(c)),
		Action:       "package_created",
		Entity:       "package",
		EntityID:     audit.Ptr(pkg.ID),
		Metadata:     gin.H{"name": pkg.Name, "price": pkg.Price},
	})

	httpresp.Created(c, pkg)
}

func (h *PackageHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), subscription.CheckoutInput{
		Barbershop: middleware.Barbershop(c),
		UserID:     middleware.UserID(c),
		PackageID:  c.Param("id"),
		ClientID:   req.ClientID,
	})
	if err != nil {
		httperr.Respond(c, err, packageErrors)
		return
	}

	httpresp.Created(c, out)
}

// Webhook receives payment notifications. The payment is looked up at the
// provider; the body only names it. Other notification types are ignored.
func (h *PackageHandler) Webhook(c *gin.Context) {
	var n PaymentNotification
	_ = c.ShouldBindJSON(&n)

	if n.Type == "" {
		n.Type = c.Query("type")
	}
	if n.Data.ID == "" {
		n.Data.ID = c.Query("data.id")
	}

	if n.Type != "payment" || n.Data.ID == "" {
		c.Status(http.StatusOK)
		return
	}

	sub, err := h.confirm.Execute(c.Request.Context(), n.Data.ID)
	if errors.Is(err, payments.ErrDisabled) {
		err = httperr.ErrBusiness("payments_disabled")
	}
	if err != nil {
		httperr.Respond(c, err, packageErrors)
		return
	}

	if sub != nil {
		log.Info().
			Str("subscription_id", sub.ID).
			Str("payment_id", n.Data.ID).
			Str("status", sub.Status).
			Msg("payment notification processed")
	}
	c.Status(http.StatusOK)
}
