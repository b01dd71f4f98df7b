// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scope3-tracker/backend/internal/application/usecase/entry"
	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/middleware"
)

// EntryController handles emission entry endpoints.
type EntryController struct {
	listUseCase       *entry.ListEntriesUseCase
	createUseCase     *entry.CreateEntryUseCase
	bulkCreateUseCase *entry.BulkCreateEntriesUseCase
	updateUseCase     *entry.UpdateEntryUseCase
	deleteUseCase     *entry.DeleteEntryUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	listUseCase *entry.ListEntriesUseCase,
	createUseCase *entry.CreateEntryUseCase,
	bulkCreateUseCase *entry.BulkCreateEntriesUseCase,
	updateUseCase *entry.UpdateEntryUseCase,
	deleteUseCase *entry.DeleteEntryUseCase,
) *EntryController {
	return &EntryController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		bulkCreateUseCase: bulkCreateUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
	}
}

// List handles GET /entries requests.
func (c *EntryController) List(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := entry.ListEntriesInput{
		CompanyID: companyID,
		Criteria:  parseCriteria(ctx),
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve entries",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(output))
}

// Create handles POST /entries requests.
func (c *EntryController) Create(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(ctx)

	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRequiredFields),
		})
		return
	}

	input := entry.CreateEntryInput{
		CompanyID: companyID,
		UserID:    userID,
		Candidate: toCandidate(req),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEntryResponse(output.Entry))
}

// BulkCreate handles POST /entries/bulk requests.
func (c *EntryController) BulkCreate(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(ctx)

	var req dto.BulkCreateEntriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRequiredFields),
		})
		return
	}

	candidates := make([]entry.Candidate, len(req.Entries))
	for i, row := range req.Entries {
		candidates[i] = toCandidate(row)
	}

	input := entry.BulkCreateEntriesInput{
		CompanyID:  companyID,
		UserID:     userID,
		Candidates: candidates,
	}

	output, err := c.bulkCreateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	entries := make([]dto.EntryResponse, len(output.Entries))
	for i, e := range output.Entries {
		entries[i] = dto.ToEntryResponse(e)
	}

	ctx.JSON(http.StatusCreated, dto.EntryListResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Update handles PATCH /entries/:id requests.
func (c *EntryController) Update(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	var req dto.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := entry.UpdateEntryInput{
		EntryID:         entryID,
		CompanyID:       companyID,
		Year:            req.Year,
		Month:           req.Month,
		SpendCountry:    req.SpendCountry,
		SpendRegion:     req.SpendRegion,
		CategoryID:      req.CategoryID,
		Currency:        req.Currency,
		EmissionsSource: req.EmissionsSource,
		VendorName:      req.VendorName,
		Notes:           req.Notes,
	}

	if req.Method != nil {
		method := entity.CalculationMethod(*req.Method)
		input.Method = &method
	}
	if req.SpendAmount != nil {
		amount := decimal.NewFromFloat(*req.SpendAmount)
		input.SpendAmount = &amount
	}
	if req.Emissions != nil {
		emissions := decimal.NewFromFloat(*req.Emissions)
		input.Emissions = &emissions
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry))
}

// Delete handles DELETE /entries/:id requests.
func (c *EntryController) Delete(ctx *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	input := entry.DeleteEntryInput{
		EntryID:   entryID,
		CompanyID: companyID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// toCandidate converts a create request row to a use case candidate.
func toCandidate(req dto.CreateEntryRequest) entry.Candidate {
	candidate := entry.Candidate{
		Year:            req.Year,
		Month:           req.Month,
		SpendCountry:    req.SpendCountry,
		SpendRegion:     req.SpendRegion,
		Method:          entity.CalculationMethod(req.Method),
		CategoryID:      req.CategoryID,
		Currency:        req.Currency,
		EmissionsSource: req.EmissionsSource,
		VendorName:      req.VendorName,
		Notes:           req.Notes,
	}

	if req.SpendAmount != nil {
		amount := decimal.NewFromFloat(*req.SpendAmount)
		candidate.SpendAmount = &amount
	}
	if req.Emissions != nil {
		emissions := decimal.NewFromFloat(*req.Emissions)
		candidate.Emissions = &emissions
	}

	return candidate
}
