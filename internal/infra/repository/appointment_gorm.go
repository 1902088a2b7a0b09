package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// Statuses that no longer hold their time slot.
var releasedStatuses = []string{
	string(domain.StatusCancelled),
	string(domain.StatusNoShow),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID string,
	serviceID string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID string,
	barberID string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	barbershopID string,
	clientID string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// getOrCreateClient matches a client of the barbershop by phone, inserting
// one when none exists.
func getOrCreateClient(
	tx *gorm.DB,
	barbershopID string,
	name string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := tx.
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
	}

	if err := tx.Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) CreateIfFree(
	ctx context.Context,
	ap *models.Appointment,
	client *models.Client,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Serializes bookings of one barber.
		var barber models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND barbershop_id = ?", ap.BarberID, ap.BarbershopID).
			First(&barber).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barbershop_id = ? AND barber_id = ? AND date = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.BarbershopID,
				ap.BarberID,
				ap.Date,
				releasedStatuses,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		if client != nil {
			c, err := getOrCreateClient(tx, ap.BarbershopID, client.Name, client.Phone)
			if err != nil {
				return err
			}
			*client = *c
			ap.ClientID = &c.ID
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	barbershopID string,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Preload("Client").
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListByDate(
	ctx context.Context,
	barbershopID string,
	date *string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Preload("Client").
		Where("barbershop_id = ?", barbershopID)

	if date != nil {
		q = q.Where("date = ?", *date).Order("start_time ASC")
	} else {
		q = q.Order("date DESC").Order("start_time ASC")
	}

	apps := []models.Appointment{}
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBusyForBarber(
	ctx context.Context,
	barbershopID string,
	barberID string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"barbershop_id = ? AND barber_id = ? AND date = ? AND status NOT IN ?",
			barbershopID, barberID, date, releasedStatuses,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	barbershopID string,
	id string,
	to domain.Status,
	now time.Time,
	guard domain.TransitionGuard,
) (*models.Appointment, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ap models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND barbershop_id = ?", id, barbershopID).
			First(&ap).Error; err != nil {
			return err
		}

		from := domain.Status(ap.Status)
		if guard != nil {
			if err := guard(from); err != nil {
				return err
			}
		}

		updates := map[string]any{"status": string(to)}
		if column := domain.Stamp(&ap, to, now); column != "" {
			updates[column] = now
		}

		if err := tx.Model(&models.Appointment{}).
			Where("id = ? AND barbershop_id = ?", id, barbershopID).
			Updates(updates).Error; err != nil {
			return err
		}

		if domain.FirstCompletion(from, to) && ap.ClientID != nil {
			return applyCompletionToClient(tx, &ap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, barbershopID, id)
}

// applyCompletionToClient adds one completed visit to the client's running
// totals and credits loyalty points of the active plan.
func applyCompletionToClient(tx *gorm.DB, ap *models.Appointment) error {
	var client models.Client
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND barbershop_id = ?", *ap.ClientID, ap.BarbershopID).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var plans []models.LoyaltyPlan
	if err := tx.
		Where("barbershop_id = ? AND is_active = ?", ap.BarbershopID, true).
		Order("created_at ASC").
		Limit(1).
		Find(&plans).Error; err != nil {
		return err
	}

	client.TotalVisits++
	client.TotalSpent = client.TotalSpent.Add(ap.Price)
	if client.LastVisit == nil || *client.LastVisit < ap.Date {
		date := ap.Date
		client.LastVisit = &date
	}
	if len(plans) > 0 {
		client.LoyaltyPoints += loyalty.PointsFor(ap.Price, &plans[0])
	}

	return tx.Model(&client).
		Select("total_visits", "total_spent", "last_visit", "loyalty_points").
		Updates(&client).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
