package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/usecase/dashboard"
)

type DashboardHandler struct {
	stats   *dashboard.ComputeDashboardStats
	finance *dashboard.ComputeFinanceStats
	report  *dashboard.BuildReport
}

func NewDashboardHandler(
	stats *dashboard.ComputeDashboardStats,
	finance *dashboard.ComputeFinanceStats,
	report *dashboard.BuildReport,
) *DashboardHandler {
	return &DashboardHandler{stats: stats, finance: finance, report: report}
}

var dashboardErrors = merge(httperr.Mapping{
	"invalid_period": {Status: http.StatusBadRequest, Message: "Período inválido. Use week, month ou year."},
})

func (h *DashboardHandler) Stats(c *gin.Context) {
	out, err := h.stats.Execute(c.Request.Context(), middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err, dashboardErrors)
		return
	}
	httpresp.OK(c, out)
}

func (h *DashboardHandler) FinanceStats(c *gin.Context) {
	out, err := h.finance.Execute(c.Request.Context(), middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err, dashboardErrors)
		return
	}
	httpresp.OK(c, out)
}

func (h *DashboardHandler) Report(c *gin.Context) {
	out, err := h.report.Execute(
		c.Request.Context(),
		middleware.Barbershop(c),
		c.DefaultQuery("period", dashboard.PeriodMonth),
	)
	if err != nil {
		httperr.Respond(c, err, dashboardErrors)
		return
	}
	httpresp.OK(c, out)
}
