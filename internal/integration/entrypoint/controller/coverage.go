// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scope3-tracker/backend/internal/application/usecase/coverage"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/middleware"
)

// CoverageController handles coverage gap reminder endpoints.
type CoverageController struct {
	remindersUseCase *coverage.GetRemindersUseCase
	digestUseCase    *coverage.QueueDigestUseCase
}

// NewCoverageController creates a new coverage controller instance.
func NewCoverageController(
	remindersUseCase *coverage.GetRemindersUseCase,
	digestUseCase *coverage.QueueDigestUseCase,
) *CoverageController {
	return &CoverageController{
		remindersUseCase: remindersUseCase,
		digestUseCase:    digestUseCase,
	}
}

// GetReminders handles GET /coverage/reminders requests.
func (c *CoverageController) GetReminders(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := coverage.GetRemindersInput{
		CompanyID: companyID,
		Criteria:  parseCriteria(ctx),
	}

	output, err := c.remindersUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute coverage reminders",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCoverageRemindersResponse(output))
}

// QueueDigest handles POST /coverage/reminders/digest requests.
func (c *CoverageController) QueueDigest(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.QueueDigestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := coverage.QueueDigestInput{
		CompanyID:      companyID,
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
	}

	output, err := c.digestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.QueueDigestResponse{
		TargetYear:    output.TargetYear,
		ReminderCount: output.ReminderCount,
		Queued:        output.Queued,
	})
}
