// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scope3-tracker/backend/internal/application/usecase/export"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles report export endpoints.
type ReportController struct {
	exportUseCase *export.ExportReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(exportUseCase *export.ExportReportUseCase) *ReportController {
	return &ReportController{
		exportUseCase: exportUseCase,
	}
}

// Export handles GET /reports/export requests. The response is a CSV
// download honoring the same filter parameters as the entries list.
func (c *ReportController) Export(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := export.ExportReportInput{
		CompanyID: companyID,
		Criteria:  parseCriteria(ctx),
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(output.Content))
}
