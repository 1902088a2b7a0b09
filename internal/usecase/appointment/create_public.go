package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreatePublicAppointmentInput struct {
	Slug string

	ServiceID string
	BarberID  string

	Date      string
	StartTime string

	ClientName  string
	ClientPhone string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

// CreatePublicAppointment is the unauthenticated booking made from a
// barbershop's public page. The tenant comes from the slug.
type CreatePublicAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock func() time.Time
}

func NewCreatePublicAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreatePublicAppointment {
	return &CreatePublicAppointment{
		repo:  repo,
		audit: audit,
		clock: time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePublicAppointment) Execute(
	ctx context.Context,
	in CreatePublicAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Barbearia pelo slug
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopBySlug(ctx, in.Slug)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	// --------------------------------------------------
	// 2. Data no timezone da barbearia
	// --------------------------------------------------
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}
	today := uc.clock().In(timezone.Location(shop.Timezone)).Format("2006-01-02")
	if in.Date < today {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// --------------------------------------------------
	// 3. Serviço e barbeiro ativos desta barbearia
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, shop.ID, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 4. Horário final (mesmo dia)
	// --------------------------------------------------
	end, err := domain.SameDayEndTime(in.StartTime, service.Duration)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	phone := validators.NormalizePhone(in.ClientPhone)
	if name == "" || phone == "" {
		return nil, httperr.ErrBusiness("client_required")
	}

	// --------------------------------------------------
	// 6. Criação sem conflito de horário; o cliente é
	// buscado ou criado pelo telefone na mesma transação
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ServiceID:    service.ID,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Price:        service.Price,
		Notes:        in.Notes,
		ClientName:   name,
		ClientPhone:  phone,
	}

	client := &models.Client{Name: name, Phone: phone}
	if err := uc.repo.CreateIfFree(ctx, ap, client); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"date":       ap.Date,
			"start_time": ap.StartTime,
			"source":     "public",
		},
	})

	return ap, nil
}
