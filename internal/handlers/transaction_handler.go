package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const recentTransactions = 10

var transactionTypes = map[string]bool{
	models.TransactionService: true,
	models.TransactionProduct: true,
	models.TransactionExpense: true,
	models.TransactionRefund:  true,
}

// TransactionHandler serves the append-only ledger of a barbershop.
type TransactionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTransactionHandler(db *gorm.DB, audit *audit.Dispatcher) *TransactionHandler {
	return &TransactionHandler{db: db, audit: audit}
}

var transactionErrors = merge(httperr.Mapping{
	"invalid_transaction_type": {Status: http.StatusBadRequest, Message: "Tipo de lançamento inválido."},
	"barber_not_found":         {Status: http.StatusNotFound, Message: "Barbeiro não encontrado."},
	"client_not_found":         {Status: http.StatusNotFound, Message: "Cliente não encontrado."},
	"appointment_not_found":    {Status: http.StatusNotFound, Message: "Agendamento não encontrado."},
})

type TransactionRequest struct {
	Type          string           `json:"type" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Category      string           `json:"category"`
	Description   string           `json:"description"`
	PaymentMethod string           `json:"payment_method"`
	Date          string           `json:"date"`
	AppointmentID *string          `json:"appointment_id"`
	BarberID      *string          `json:"barber_id"`
	ClientID      *string          `json:"client_id"`
}

// List answers ?from&to&type with a page of entries, newest first.
func (h *TransactionHandler) List(c *gin.Context) {
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

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Transaction{}).
		Where("barbershop_id = ?", shop.ID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err, transactionErrors)
		return
	}

	var entries []models.Transaction
	if err := q.
		Order("date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		httperr.Respond(c, err, transactionErrors)
		return
	}

	httpresp.Page(c, entries, page, limit, total)
}

func (h *TransactionHandler) Recent(c *gin.Context) {
	shop := middleware.Barbershop(c)

	var entries []models.Transaction
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", shop.ID).
		Order("created_at DESC").
		Limit(recentTransactions).
		Find(&entries).Error; err != nil {
		httperr.Respond(c, err, transactionErrors)
		return
	}

	httpresp.List(c, entries)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	shop := middleware.Barbershop(c)
	ctx := c.Request.Context()

	var req TransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Type))
	if !transactionTypes[kind] {
		httperr.Respond(c, httperr.ErrBusiness("invalid_transaction_type"), transactionErrors)
		return
	}
	if !req.Amount.IsPositive() {
		httperr.Respond(c, httperr.ErrBusiness("invalid_price"), transactionErrors)
		return
	}

	date := req.Date
	if date == "" {
		date = timezone.Today(shop.Timezone)
	} else if _, err := domain.ParseDate(date); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_date"), transactionErrors)
		return
	}

	// References must belong to the same barbershop.
	refs := []struct {
		id    *string
		model any
		code  string
	}{
		{req.AppointmentID, &models.Appointment{}, "appointment_not_found"},
		{req.BarberID, &models.Barber{}, "barber_not_found"},
		{req.ClientID, &models.Client{}, "client_not_found"},
	}
	for _, ref := range refs {
		if ref.id == nil || *ref.id == "" {
			continue
		}
		var n int64
		if err := h.db.WithContext(ctx).
			Model(ref.model).
			Where("id = ? AND barbershop_id = ?", *ref.id, shop.ID).
			Count(&n).Error; err != nil {
			httperr.Respond(c, err, transactionErrors)
			return
		}
		if n == 0 {
			httperr.Respond(c, httperr.ErrBusiness(ref.code), transactionErrors)
			return
		}
	}

	entry := models.Transaction{
		BarbershopID:     shop.ID,
		AppointmentID:    audit.Ptr(deref(req.AppointmentID)),
		BarberID:         audit.Ptr(deref(req.BarberID)),
		ClientID:         audit.Ptr(deref(req.ClientID)),
		Type:             kind,
		Category:         strings.TrimSpace(req.Category),
		Description:      strings.TrimSpace(req.Description),
		Amount:           *req.Amount,
		PaymentMethod:    strings.TrimSpace(req.PaymentMethod),
		CommissionAmount: decimal.Zero,
		Date:             date,
	}

	if entry.BarberID != nil && kind == models.TransactionService {
		var barber models.Barber
		if err := h.db.WithContext(ctx).First(&barber, "id = ?", *entry.BarberID).Error; err != nil {
			httperr.Respond(c, err, transactionErrors)
			return
		}
		entry.CommissionAmount = entry.Amount.Mul(barber.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
	}

	if err := h.db.WithContext(ctx).Create(&entry).Error; err != nil {
		httperr.Respond(c, err, transactionErrors)
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(middleware.UserID(c)),
		Action:       "transaction_created",
		Entity:       "transaction",
		EntityID:     audit.Ptr(entry.ID),
		Metadata: gin.H{
			"type":   entry.Type,
			"amount": entry.Amount,
		},
	})

	httpresp.Created(c, entry)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
