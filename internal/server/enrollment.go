package server

import (
	"github.com/gin-gonic/gin"

	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
)

func (s *Server) EnrollmentHistory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "student id must be a snowflake id"))
		return
	}

	records, err := s.enrollSvc.History(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, records)
}

func (s *Server) AdjustEnrollment(c *gin.Context) {
	var req enrollmentdomain.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}
	if req.StudentID == 0 {
		AbortWithError(c, newValidationError("invalid_request", "student_id is required"))
		return
	}

	rec, err := s.enrollSvc.Adjust(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rec)
}
