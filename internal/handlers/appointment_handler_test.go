package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

func appointmentRouter(t *testing.T) *harness {
	h := newHarness(t)
	repo := repository.NewAppointmentGormRepository(h.db)
	ah := NewAppointmentHandler(
		appointment.NewListAppointments(repo),
		appointment.NewCreateAppointment(repo, nil),
		appointment.NewUpdateAppointmentStatus(repo, nil),
	)

	h.r.GET("/appointments", ah.List)
	h.r.POST("/appointments", ah.Create)
	h.r.PATCH("/appointments/:id/status", ah.UpdateStatus)
	return h
}

func TestAppointmentStatusOverHTTP(t *testing.T) {
	h := appointmentRouter(t)
	barber := testutil.SeedBarber(t, h.db, h.shop.ID, "Jean")
	service := testutil.SeedService(t, h.db, h.shop.ID, "Corte", "55.00", 30)

	w := h.do(http.MethodPost, "/appointments", gin.H{
		"barber_id":    barber.ID,
		"service_id":   service.ID,
		"client_name":  "Marcos",
		"client_phone": "11966661111",
		"date":         "2025-01-06",
		"start_time":   "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := decode[models.Appointment](t, w)

	w = h.do(http.MethodPatch, "/appointments/"+ap.ID+"/status", gin.H{"status": "finished"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", errorCode(t, w))

	w = h.do(http.MethodPatch, "/appointments/"+ap.ID+"/status", gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(http.MethodPatch, "/appointments/"+ap.ID+"/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_transition", errorCode(t, w))

	w = h.do(http.MethodPatch, "/appointments/missing/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAppointmentsValidatesDate(t *testing.T) {
	h := appointmentRouter(t)

	w := h.do(http.MethodGet, "/appointments?date=06-01-2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", errorCode(t, w))

	w = h.do(http.MethodGet, "/appointments?date=2025-01-06", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]dto.AppointmentListDTO](t, w))
}
