package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Entry is the HTTP rendering of one business code.
type Entry struct {
	Status  int
	Message string
}

// Mapping translates business codes into responses for a group of handlers.
type Mapping map[string]Entry

// Respond writes err using m. Codes missing from m and non-business errors
// are logged and answered with a generic 500.
func Respond(c *gin.Context, err error, m Mapping) {
	code := Code(err)
	if e, ok := m[code]; ok {
		Write(c, e.Status, code, e.Message)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg("unhandled error")

	Internal(c, "internal_error", "Erro interno. Tente novamente.")
}
