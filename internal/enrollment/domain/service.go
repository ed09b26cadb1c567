package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrZeroAdjustment = errors.New("zero_session_adjustment")

// Service reads the enrollment history. Records are written only by the
// crediting engine; manual adjustments go through Adjust so they leave a
// trace like everything else.
type Service interface {
	History(ctx context.Context, studentID snowflake.ID) ([]EnrollmentRecord, error)
	Adjust(ctx context.Context, req AdjustRequest) (*EnrollmentRecord, error)
}

// AdjustRequest is a manual entitlement correction outside any contract.
type AdjustRequest struct {
	StudentID snowflake.ID `json:"student_id"`
	Sessions  int          `json:"sessions"`
	CreatedBy string       `json:"created_by"`
	Note      string       `json:"note"`
}
