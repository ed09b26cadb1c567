package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) ClassRoster(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_id", "class id must be a snowflake id"))
		return
	}

	snap, err := s.rosterSvc.Snapshot(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, snap)
}

func (s *Server) RosterAll(c *gin.Context) {
	agg, err := s.rosterSvc.SnapshotAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, agg)
}
