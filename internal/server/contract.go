package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
)

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

func (s *Server) CreateContract(c *gin.Context) {
	var req contractdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("invalid_request", err.Error()))
		return
	}

	contract, err := s.contractSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, contract)
}

func (s *Server) GetContract(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "contract id must be a snowflake id"))
		return
	}

	contract, err := s.contractSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, contract)
}

func (s *Server) ListContracts(c *gin.Context) {
	filter := contractdomain.ListFilter{
		Status:   contractdomain.ContractStatus(c.Query("status")),
		Category: contractdomain.ContractCategory(c.Query("category")),
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			AbortWithError(c, newValidationError("invalid_student_id", "student_id must be a snowflake id"))
			return
		}
		filter.StudentID = &id
	}

	contracts, err := s.contractSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, contracts)
}

type updateContractStatusRequest struct {
	Status contractdomain.ContractStatus `json:"status"`
}

func (s *Server) UpdateContractStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "contract id must be a snowflake id"))
		return
	}

	var req updateContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		AbortWithError(c, newValidationError("invalid_request", "status is required"))
		return
	}

	contract, err := s.contractSvc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, contract)
}
