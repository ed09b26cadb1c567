// Package domain holds the work session ledger: individual teaching and
// assistant occurrences with a confirmation state machine.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type WorkType string

const (
	TypeMainTeaching WorkType = "main_teaching"
	TypeAssistant    WorkType = "assistant"
	TypeFeedback     WorkType = "feedback"
	TypeSubstitute   WorkType = "substitute"
	TypeMakeup       WorkType = "makeup"
)

type WorkStatus string

const (
	StatusPending   WorkStatus = "pending"
	StatusConfirmed WorkStatus = "confirmed"
	StatusRejected  WorkStatus = "rejected"
)

type WorkSession struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	StaffID   snowflake.ID `gorm:"not null;index"`
	StaffName string       `gorm:"type:text"`
	Position  string       `gorm:"type:text"`

	Date      time.Time `gorm:"type:date;not null;index"`
	TimeStart string    `gorm:"type:text;not null"` // HH:MM
	TimeEnd   string    `gorm:"type:text;not null"`

	ClassID   *snowflake.ID `gorm:"index"`
	ClassName string        `gorm:"type:text"`

	Type   WorkType   `gorm:"type:text;not null"`
	Status WorkStatus `gorm:"type:text;not null;index"`

	StudentCount int `gorm:"not null;default:0"`

	// ManualAmount, when set, is a persisted drill-down correction and wins
	// over anything the rate resolver would compute.
	ManualAmount *int64 ``

	Note        string     `gorm:"type:text"`
	ConfirmedAt *time.Time ``
	ConfirmedBy string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (WorkSession) TableName() string { return "work_sessions" }

// Minutes is the session duration. Malformed times count as zero.
func (w *WorkSession) Minutes() int {
	start, err1 := time.Parse("15:04", w.TimeStart)
	end, err2 := time.Parse("15:04", w.TimeEnd)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

var (
	ErrSessionNotFound = errors.New("work_session_not_found")
	ErrNotPending      = errors.New("work_session_not_pending")
	ErrNotConfirmed    = errors.New("work_session_not_confirmed")
	ErrEmptyBatch      = errors.New("empty_confirmation_batch")
)

type ListFilter struct {
	StaffID *snowflake.ID
	Status  WorkStatus
	From    *time.Time
	To      *time.Time
}

type Repository interface {
	Insert(ctx context.Context, w *WorkSession) error
	FindByID(ctx context.Context, id snowflake.ID) (*WorkSession, error)
	FindByIDs(ctx context.Context, ids []snowflake.ID) ([]WorkSession, error)
	List(ctx context.Context, filter ListFilter) ([]WorkSession, error)
	ListConfirmedInPeriod(ctx context.Context, from, to time.Time) ([]WorkSession, error)
	Update(ctx context.Context, w *WorkSession) error
	// MarkConfirmed transitions the given pending sessions in one
	// statement and reports how many rows it touched.
	MarkConfirmed(ctx context.Context, ids []snowflake.ID, at time.Time, actor string) (int64, error)
}
