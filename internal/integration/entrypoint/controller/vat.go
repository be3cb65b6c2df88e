// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agency-ops/backend/internal/application/usecase/vat"
	"github.com/agency-ops/backend/internal/domain/valueobject"
	"github.com/agency-ops/backend/internal/integration/entrypoint/dto"
)

// VATController handles quarterly VAT reporting endpoints.
type VATController struct {
	reportUseCase     *vat.GetPeriodReportUseCase
	healthUseCase     *vat.GetDataHealthUseCase
	exportUseCase     *vat.ExportPeriodUseCase
	exportXLSXUseCase *vat.ExportReportXLSXUseCase
}

// NewVATController creates a new VAT controller instance.
func NewVATController(
	reportUseCase *vat.GetPeriodReportUseCase,
	healthUseCase *vat.GetDataHealthUseCase,
	exportUseCase *vat.ExportPeriodUseCase,
	exportXLSXUseCase *vat.ExportReportXLSXUseCase,
) *VATController {
	return &VATController{
		reportUseCase:     reportUseCase,
		healthUseCase:     healthUseCase,
		exportUseCase:     exportUseCase,
		exportXLSXUseCase: exportXLSXUseCase,
	}
}

// periodParams reads the year/quarter/basis query parameters.
func periodParams(ctx *gin.Context) (year, quarter int, basis valueobject.AccountingBasis, err error) {
	year, err = strconv.Atoi(ctx.Query("year"))
	if err != nil {
		return 0, 0, "", fmt.Errorf("year must be a number")
	}
	quarter, err = strconv.Atoi(ctx.Query("quarter"))
	if err != nil {
		return 0, 0, "", fmt.Errorf("quarter must be a number")
	}
	return year, quarter, valueobject.AccountingBasis(ctx.Query("basis")), nil
}

// Report handles GET /vat/report requests.
func (c *VATController) Report(ctx *gin.Context) {
	year, quarter, basis, err := periodParams(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.reportUseCase.Execute(ctx.Request.Context(), vat.GetPeriodReportInput{
		Year:    year,
		Quarter: quarter,
		Basis:   basis,
	})
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodReportResponse(output))
}

// DataHealth handles GET /vat/health requests.
func (c *VATController) DataHealth(ctx *gin.Context) {
	output, err := c.healthUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataHealthResponse(output.Health))
}

// Export handles GET /vat/export requests and streams the CSV download.
func (c *VATController) Export(ctx *gin.Context) {
	year, quarter, basis, err := periodParams(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), vat.ExportPeriodInput{
		Year:    year,
		Quarter: quarter,
		Basis:   basis,
	})
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// ExportXLSX handles GET /vat/export-xlsx requests and streams the workbook.
func (c *VATController) ExportXLSX(ctx *gin.Context) {
	year, quarter, basis, err := periodParams(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.exportXLSXUseCase.Execute(ctx.Request.Context(), vat.ExportReportXLSXInput{
		Year:    year,
		Quarter: quarter,
		Basis:   basis,
	})
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}
