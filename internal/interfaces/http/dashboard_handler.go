package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Toner-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del dashboard y el reporte PDF.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetSummary devuelve totales de stock, alertas, pendientes y últimos movimientos.
// GET /api/dashboard/summary
//
// Los roles acotados ven solo su unidad; los globales pueden filtrar con ?unit_id.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), scopeUnit(c, c.Query("unit_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// StockReportPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        unit_id  query  string  false  "Unidad"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *DashboardHandler) StockReportPDF(c *fiber.Ctx) error {
	pdf, err := h.report.StockReportPDF(c.UserContext(), scopeUnit(c, c.Query("unit_id")))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="stock_%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(pdf)
}
