package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	StaffID      snowflake.ID  `json:"staff_id"`
	StaffName    string        `json:"staff_name"`
	Position     string        `json:"position"`
	Date         time.Time     `json:"date"`
	TimeStart    string        `json:"time_start"`
	TimeEnd      string        `json:"time_end"`
	ClassID      *snowflake.ID `json:"class_id,omitempty"`
	ClassName    string        `json:"class_name,omitempty"`
	Type         WorkType      `json:"type"`
	StudentCount int           `json:"student_count"`
	Note         string        `json:"note,omitempty"`
}

// Correction is an explicit, auditable edit to an already confirmed
// session. Nil fields are left untouched.
type Correction struct {
	Date         *time.Time    `json:"date,omitempty"`
	TimeStart    *string       `json:"time_start,omitempty"`
	TimeEnd      *string       `json:"time_end,omitempty"`
	ClassID      *snowflake.ID `json:"class_id,omitempty"`
	Type         *WorkType     `json:"type,omitempty"`
	ManualAmount *int64        `json:"manual_amount,omitempty"`
	Note         *string       `json:"note,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*WorkSession, error)
	Get(ctx context.Context, id snowflake.ID) (*WorkSession, error)
	List(ctx context.Context, filter ListFilter) ([]WorkSession, error)
	Confirm(ctx context.Context, id snowflake.ID, actor string) (*WorkSession, error)
	Reject(ctx context.Context, id snowflake.ID, actor string) (*WorkSession, error)
	// ConfirmAll transitions every given pending session or none of them.
	ConfirmAll(ctx context.Context, ids []snowflake.ID, actor string) (int, error)
	ApplyCorrection(ctx context.Context, id snowflake.ID, c Correction) (*WorkSession, error)
}
