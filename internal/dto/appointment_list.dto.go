package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type AppointmentListDTO struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Status      string          `json:"status"`
	Price       decimal.Decimal `json:"price"`
	ClientID    *string         `json:"client_id"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	BarberID    string          `json:"barber_id"`
	BarberName  string          `json:"barber_name"`
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Notes       string          `json:"notes"`
}

// NewAppointmentList flattens preloaded appointments for listing.
func NewAppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		item := AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			Price:       ap.Price,
			ClientID:    ap.ClientID,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			BarberID:    ap.BarberID,
			ServiceID:   ap.ServiceID,
			Notes:       ap.Notes,
		}
		if ap.Client != nil && item.ClientName == "" {
			item.ClientName = ap.Client.Name
		}
		if ap.Barber != nil {
			item.BarberName = ap.Barber.Name
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
		}
		out = append(out, item)
	}
	return out
}
