package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scope3-tracker/backend/internal/application/usecase/report"
	"github.com/scope3-tracker/backend/internal/domain/entity"
)

// parseCriteria reads the shared filter query parameters. Unparseable
// values are ignored rather than rejected; an absent filter is the same as
// no filter.
func parseCriteria(ctx *gin.Context) report.Criteria {
	var criteria report.Criteria

	if yearStr := ctx.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			criteria.Year = &year
		}
	}
	if category := ctx.Query("category"); category != "" {
		criteria.CategoryLabel = &category
	}
	if methodStr := ctx.Query("method"); methodStr != "" {
		method := entity.CalculationMethod(methodStr)
		criteria.Method = &method
	}
	if country := ctx.Query("country"); country != "" {
		criteria.Country = &country
	}
	if region := ctx.Query("region"); region != "" {
		criteria.Region = &region
	}

	return criteria
}
