package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) PayrollSummary(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_month", "month must be 1-12"))
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_year", "year is required"))
		return
	}

	summary, err := s.payrollSvc.MonthlySummary(c.Request.Context(), month, year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, summary)
}
