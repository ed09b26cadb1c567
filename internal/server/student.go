package server

import (
	"time"

	"github.com/gin-gonic/gin"

	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

type registerStudentRequest struct {
	Code      string  `json:"code"`
	FullName  string  `json:"full_name"`
	ClassID   *string `json:"class_id,omitempty"`
	ClassName string  `json:"class_name,omitempty"`
	Status    string  `json:"status,omitempty"`
}

func (s *Server) RegisterStudent(c *gin.Context) {
	var req registerStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}
	if req.Code == "" || req.FullName == "" {
		AbortWithError(c, newValidationError("invalid_request", "code and full_name are required"))
		return
	}

	account := &studentdomain.StudentAccount{
		Code:      req.Code,
		FullName:  req.FullName,
		ClassName: req.ClassName,
		Status:    studentdomain.AccountStatus(req.Status),
	}
	if req.ClassID != nil {
		id, err := parseID(*req.ClassID)
		if err != nil {
			AbortWithError(c, newValidationError("invalid_id", "class id must be a snowflake id"))
			return
		}
		account.ClassID = &id
	}

	account, err := s.studentSvc.Register(c.Request.Context(), account)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, account)
}

func (s *Server) ListStudents(c *gin.Context) {
	accounts, err := s.studentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, accounts)
}

func (s *Server) GetStudent(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "student id must be a snowflake id"))
		return
	}

	account, err := s.studentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, account)
}

func (s *Server) ClassifyStudent(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "student id must be a snowflake id"))
		return
	}

	classification, err := s.studentSvc.Classify(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, classification)
}

func (s *Server) RecordAttendance(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "student id must be a snowflake id"))
		return
	}

	var req studentdomain.AttendanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	account, err := s.studentSvc.RecordAttendance(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, account)
}

type paymentDateRequest struct {
	Due time.Time `json:"due"`
}

func (s *Server) SetNextPaymentDate(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "student id must be a snowflake id"))
		return
	}

	var req paymentDateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Due.IsZero() {
		AbortWithError(c, newValidationError("invalid_request", "due date is required"))
		return
	}

	if err := s.studentSvc.SetNextPaymentDate(c.Request.Context(), id, req.Due); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"due": req.Due})
}

type contractPaymentRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) RecordContractPayment(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "student id must be a snowflake id"))
		return
	}

	var req contractPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	account, err := s.studentSvc.RecordContractPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, account)
}
