// Package domain defines the compensation engine's outputs: the per-staff
// monthly summary and its drill-down, plus the tagged rate resolution.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type ResolutionKind string

const (
	ResolutionExplicit   ResolutionKind = "explicit"
	ResolutionTiered     ResolutionKind = "tiered"
	ResolutionManual     ResolutionKind = "manual"
	ResolutionUnresolved ResolutionKind = "unresolved"
)

// Resolution is the outcome of rate lookup for one work session. Exactly
// one of RuleID/TierID is set for explicit/tiered kinds; Unresolved
// contributes zero and is flagged, never silently dropped.
type Resolution struct {
	Kind   ResolutionKind `json:"kind"`
	Amount int64          `json:"amount"`
	RuleID *snowflake.ID  `json:"rule_id,omitempty"`
	TierID *snowflake.ID  `json:"tier_id,omitempty"`
}

// DrillDownLine is one contributing session. The summary total is the sum
// of these exact amounts; there is no second computation path.
type DrillDownLine struct {
	SessionID    snowflake.ID      `json:"session_id"`
	Date         time.Time         `json:"date"`
	TimeStart    string            `json:"time_start"`
	TimeEnd      string            `json:"time_end"`
	ClassName    string            `json:"class_name,omitempty"`
	Type         wsdomain.WorkType `json:"type"`
	StudentCount int               `json:"student_count"`
	Resolution   Resolution        `json:"resolution"`
	Amount       int64             `json:"amount"`
}

type StaffSummary struct {
	StaffID           snowflake.ID `json:"staff_id"`
	StaffName         string       `json:"staff_name"`
	Position          string       `json:"position"`
	ConfirmedSessions int          `json:"confirmed_sessions"`

	// EstimatedSalary = Σ drill-down amounts + FixedSalary + Allowance.
	// KPIBonus is tracked separately, not folded into the estimate.
	EstimatedSalary int64 `json:"estimated_salary"`
	FixedSalary     int64 `json:"fixed_salary"`
	Allowance       int64 `json:"allowance"`
	KPIBonus        int64 `json:"kpi_bonus"`

	Lines      []DrillDownLine `json:"lines"`
	Unresolved []snowflake.ID  `json:"unresolved,omitempty"`
}

type MonthlySummary struct {
	Month int            `json:"month"`
	Year  int            `json:"year"`
	Staff []StaffSummary `json:"staff"`
}

var ErrInvalidPeriod = errors.New("invalid_payroll_period")

type Service interface {
	MonthlySummary(ctx context.Context, month, year int) (*MonthlySummary, error)
}
