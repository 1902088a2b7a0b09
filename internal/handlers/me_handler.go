package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
)

type MeHandler struct {
	users *repository.UserGormRepository
}

func NewMeHandler(users *repository.UserGormRepository) *MeHandler {
	return &MeHandler{users: users}
}

var meErrors = merge(httperr.Mapping{
	"user_not_found": {Status: http.StatusUnauthorized, Message: "Usuário não encontrado."},
})

// GetMe returns the user behind the session.
func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, notFoundAs(err, "user_not_found"), meErrors)
		return
	}
	httpresp.OK(c, user)
}
