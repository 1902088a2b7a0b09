package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// Repository is the appointment store. Every method is scoped by the
// barbershop id and treats rows of other barbershops as missing.
type Repository interface {
	// -------- Catalog --------
	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	GetService(
		ctx context.Context,
		barbershopID string,
		serviceID string,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		barbershopID string,
		barberID string,
	) (*models.Barber, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		barbershopID string,
		clientID string,
	) (*models.Client, error)

	// -------- Appointment (create) --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CreateIfFree inserts ap unless it overlaps a live appointment of the
	// same barber on the same date. A non-nil client is matched by phone or
	// inserted in the same transaction, after the overlap check, and linked
	// to ap.
	CreateIfFree(
		ctx context.Context,
		ap *models.Appointment,
		client *models.Client,
	) error

	// -------- Appointment (read) --------
	GetByID(
		ctx context.Context,
		barbershopID string,
		id string,
	) (*models.Appointment, error)

	// ListByDate orders by start time when date is set, and by date
	// descending then start time otherwise.
	ListByDate(
		ctx context.Context,
		barbershopID string,
		date *string,
	) ([]models.Appointment, error)

	ListBusyForBarber(
		ctx context.Context,
		barbershopID string,
		barberID string,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------

	// UpdateStatus stamps the status timestamp. guard, when not nil, runs
	// against the stored status and can veto the change. The first move to
	// completed also updates the linked client's totals in the same
	// transaction.
	UpdateStatus(
		ctx context.Context,
		barbershopID string,
		id string,
		to Status,
		now time.Time,
		guard TransitionGuard,
	) (*models.Appointment, error)
}
