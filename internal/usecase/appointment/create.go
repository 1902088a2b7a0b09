package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Barbershop *models.Barbershop
	UserID     string

	BarberID  string
	ServiceID string

	ClientID    *string
	ClientName  string
	ClientPhone string

	Date      string
	StartTime string
	Status    string
	Price     *decimal.Decimal
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment records an appointment entered by staff. Overlapping
// bookings are allowed here: staff decide about squeezing in walk-ins.
type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		clock: time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop := in.Barbershop

	// --------------------------------------------------
	// 1. Data / hora
	// --------------------------------------------------
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		if st != domain.StatusPending && st != domain.StatusConfirmed {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		status = st
	}

	// --------------------------------------------------
	// 2. Serviço e barbeiro da barbearia
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, shop.ID, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}

	end, err := domain.SameDayEndTime(in.StartTime, service.Duration)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Cliente (cadastrado ou avulso)
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	phone := strings.TrimSpace(in.ClientPhone)

	if in.ClientID != nil && *in.ClientID != "" {
		client, err := uc.repo.GetClient(ctx, shop.ID, *in.ClientID)
		if err != nil {
			return nil, notFoundAs(err, "client_not_found")
		}
		in.ClientID = &client.ID
		if name == "" {
			name = client.Name
		}
		if phone == "" {
			phone = client.Phone
		}
	} else {
		in.ClientID = nil
		if name == "" {
			return nil, httperr.ErrBusiness("client_required")
		}
	}

	price := service.Price
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		price = *in.Price
	}

	// --------------------------------------------------
	// 4. Criação
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: shop.ID,
		ClientID:     in.ClientID,
		BarberID:     barber.ID,
		ServiceID:    service.ID,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      end,
		Price:        price,
		Notes:        in.Notes,
		ClientName:   name,
		ClientPhone:  phone,
	}
	domain.Stamp(ap, status, uc.clock().In(timezone.Location(shop.Timezone)))

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(in.UserID),
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"date":       ap.Date,
			"start_time": ap.StartTime,
			"source":     "staff",
		},
	})

	return uc.repo.GetByID(ctx, shop.ID, ap.ID)
}

// notFoundAs turns a missing row into the business code of the caller.
func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
