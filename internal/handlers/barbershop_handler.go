package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/tenant"
)

const maxLogoUploadBytes = 5 << 20

type BarbershopHandler struct {
	update     *tenant.UpdateSettings
	uploadLogo *tenant.UploadLogo
}

func NewBarbershopHandler(update *tenant.UpdateSettings, uploadLogo *tenant.UploadLogo) *BarbershopHandler {
	return &BarbershopHandler{update: update, uploadLogo: uploadLogo}
}

var barbershopErrors = merge(httperr.Mapping{
	"invalid_name":          {Status: http.StatusBadRequest, Message: "Informe o nome da barbearia."},
	"invalid_slug":          {Status: http.StatusBadRequest, Message: "Endereço inválido. Use letras minúsculas, números e hífens."},
	"invalid_opening_hours": {Status: http.StatusBadRequest, Message: "O horário de fechamento deve ser depois da abertura."},
	"invalid_work_days":     {Status: http.StatusBadRequest, Message: "Dias de funcionamento inválidos."},
	"invalid_timezone":      {Status: http.StatusBadRequest, Message: "Fuso horário inválido."},
	"invalid_file_type":     {Status: http.StatusBadRequest, Message: "Envie uma imagem JPG, PNG, GIF ou WebP."},
	"file_too_large":        {Status: http.StatusBadRequest, Message: "Imagem muito grande. Limite de 5 MB."},
	"slug_already_exists":   {Status: http.StatusConflict, Message: "Este endereço já está em uso."},
	"uploads_disabled":      {Status: http.StatusServiceUnavailable, Message: "Envio de imagens indisponível."},
})

// GetMe returns the barbershop of the current user, creating it on the
// first call.
func (h *BarbershopHandler) GetMe(c *gin.Context) {
	httpresp.OK(c, middleware.Barbershop(c))
}

func (h *BarbershopHandler) UpdateMe(c *gin.Context) {
	var req tenant.UpdateSettingsInput
	if !bindJSON(c, &req) {
		return
	}

	shop, err := h.update.Execute(
		c.Request.Context(),
		middleware.Barbershop(c),
		middleware.UserID(c),
		req,
	)
	if err != nil {
		httperr.Respond(c, err, barbershopErrors)
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLogoUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Envie a imagem no campo \"file\".")
		return
	}
	if fh.Size > maxLogoUploadBytes {
		httperr.Respond(c, httperr.ErrBusiness("file_too_large"), barbershopErrors)
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err, barbershopErrors)
		return
	}
	defer f.Close()

	shop, err := h.uploadLogo.Execute(
		c.Request.Context(),
		middleware.Barbershop(c),
		middleware.UserID(c),
		f,
		fh.Header.Get("Content-Type"),
	)
	if err != nil {
		httperr.Respond(c, err, barbershopErrors)
		return
	}

	httpresp.OK(c, shop)
}
