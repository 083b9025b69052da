package controller

import (
	"log"
	"net/http"
	"strings"

	"pos/src/checkout/application/usecase"

	"github.com/gin-gonic/gin"
)

// ReportController maneja las peticiones HTTP para reportes del dueño
type ReportController struct {
	dailyReportUC *usecase.DailyReportUseCase
}

// NewReportController crea una nueva instancia del controlador
func NewReportController(dailyReportUC *usecase.DailyReportUseCase) *ReportController {
	return &ReportController{
		dailyReportUC: dailyReportUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/daily", c.DailyReport)
	}

	log.Println("Rutas Report disponibles:")
	log.Println("  GET    /api/v1/reports/daily?date=YYYY-MM-DD")
}

// DailyReport maneja el reporte diario de ventas de la tienda
func (c *ReportController) DailyReport(ctx *gin.Context) {
	// 1. Validar header X-Store-ID (OBLIGATORIO)
	storeID := ctx.GetHeader("X-Store-ID")
	if storeID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "X-Store-ID header is required",
		})
		return
	}

	// 2. Leer query parameter 'date' (OBLIGATORIO)
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required (format: YYYY-MM-DD)",
		})
		return
	}

	// 3. Ejecutar use case
	resp, err := c.dailyReportUC.Execute(ctx.Request.Context(), storeID, date)
	if err != nil {
		log.Printf("Error generating daily report: %v", err)

		if strings.Contains(err.Error(), "invalid date format") {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid date format",
				"details": err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error generating daily report",
			"details": err.Error(),
		})
		return
	}

	// 4. Responder exitosamente
	ctx.JSON(http.StatusOK, resp)
}
