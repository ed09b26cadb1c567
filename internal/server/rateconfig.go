package server

import (
	"github.com/gin-gonic/gin"

	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
)

func (s *Server) CreateSalaryRule(c *gin.Context) {
	var req ratedomain.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}
	if req.StaffID == 0 || req.ClassID == 0 {
		AbortWithError(c, newValidationError("invalid_request", "staff_id and class_id are required"))
		return
	}

	rule, err := s.rateSvc.CreateRule(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}

func (s *Server) ListSalaryRules(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "staff id must be a snowflake id"))
		return
	}

	rules, err := s.rateSvc.ListRulesByStaff(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rules)
}

func (s *Server) ListRateTiers(c *gin.Context) {
	rangeType, err := ratedomain.ParseRangeType(c.Param("type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tiers, err := s.rateSvc.ListTiers(c.Request.Context(), rangeType)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, tiers)
}

type replaceTiersRequest struct {
	Tiers []ratedomain.TierInput `json:"tiers"`
}

func (s *Server) ReplaceRateTiers(c *gin.Context) {
	rangeType, err := ratedomain.ParseRangeType(c.Param("type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req replaceTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	tiers, err := s.rateSvc.ReplaceTiers(c.Request.Context(), rangeType, req.Tiers)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, tiers)
}
