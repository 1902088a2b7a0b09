package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Codes shared by every handler group.
var commonErrors = httperr.Mapping{
	"invalid_request":  {Status: http.StatusBadRequest, Message: "Dados inválidos na requisição."},
	"invalid_date":     {Status: http.StatusBadRequest, Message: "Data inválida. Use o formato AAAA-MM-DD."},
	"invalid_time":     {Status: http.StatusBadRequest, Message: "Horário inválido. Use o formato HH:MM."},
	"invalid_duration": {Status: http.StatusBadRequest, Message: "Duração do serviço inválida."},
	"invalid_price":    {Status: http.StatusBadRequest, Message: "Preço inválido."},
}

// merge returns commonErrors extended with the entries of each m.
func merge(ms ...httperr.Mapping) httperr.Mapping {
	out := httperr.Mapping{}
	for k, v := range commonErrors {
		out[k] = v
	}
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return false
	}
	return true
}

// pagination reads ?page and ?limit.
func pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	return page, limit, (page - 1) * limit
}

// optionalDate reads a yyyy-MM-dd query parameter. It answers 400 itself
// and returns ok=false when the value is malformed.
func optionalDate(c *gin.Context, key string) (date *string, ok bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	if _, err := domain.ParseDate(v); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
		return nil, false
	}
	return &v, true
}

// optionalClock validates an HH:MM body field.
func optionalClock(v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	_, err := domain.ParseClock(*v)
	return err
}

// notFoundAs turns a missing row into the business code of the caller.
func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// dayStart is midnight of the calendar day d in loc.
func dayStart(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
