package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

func (s *Server) CreateWorkSession(c *gin.Context) {
	var req wsdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	session, err := s.wsSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, session)
}

func (s *Server) ListWorkSessions(c *gin.Context) {
	filter := wsdomain.ListFilter{
		Status: wsdomain.WorkStatus(c.Query("status")),
	}
	if raw := c.Query("staff_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			AbortWithError(c, newValidationError("invalid_staff_id", "staff_id must be a snowflake id"))
			return
		}
		filter.StaffID = &id
	}

	sessions, err := s.wsSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, sessions)
}

type confirmRequest struct {
	Actor string `json:"actor"`
}

func (s *Server) ConfirmWorkSession(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "work session id must be a snowflake id"))
		return
	}

	var req confirmRequest
	_ = c.ShouldBindJSON(&req)

	session, err := s.wsSvc.Confirm(c.Request.Context(), id, req.Actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, session)
}

func (s *Server) RejectWorkSession(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "work session id must be a snowflake id"))
		return
	}

	var req confirmRequest
	_ = c.ShouldBindJSON(&req)

	session, err := s.wsSvc.Reject(c.Request.Context(), id, req.Actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, session)
}

type confirmAllRequest struct {
	IDs   []string `json:"ids"`
	Actor string   `json:"actor"`
}

func (s *Server) ConfirmAllWorkSessions(c *gin.Context) {
	var req confirmAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	ids := make([]snowflake.ID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := parseID(raw)
		if err != nil {
			AbortWithError(c, newValidationError("invalid_id", "ids must be snowflake ids"))
			return
		}
		ids = append(ids, id)
	}

	count, err := s.wsSvc.ConfirmAll(c.Request.Context(), ids, req.Actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"confirmed": count})
}

func (s *Server) CorrectWorkSession(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "work session id must be a snowflake id"))
		return
	}

	var req wsdomain.Correction
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	session, err := s.wsSvc.ApplyCorrection(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, session)
}
