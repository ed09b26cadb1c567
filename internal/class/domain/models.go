// Package domain holds the class directory consumed by the roster
// aggregator and the payroll tier lookup. Maintained by the scheduling
// side of the system; the engine only reads it.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ClassStatus string

const (
	StatusStudying ClassStatus = "studying"
	StatusFinished ClassStatus = "finished"
	StatusPaused   ClassStatus = "paused"
	StatusPending  ClassStatus = "pending"
)

type Class struct {
	ID     snowflake.ID `gorm:"primaryKey"`
	Name   string       `gorm:"type:text;not null;index"`
	Status ClassStatus  `gorm:"type:text;not null"`

	TeacherID   *snowflake.ID `gorm:"index"`
	AssistantID *snowflake.ID `gorm:"index"`

	// AvgStudents keys the Teaching tier lookup when no explicit salary
	// rule exists for a staff/class pair.
	AvgStudents int `gorm:"not null;default:0"`

	// FeedbackVolume keys the AssistantFeedback tier lookup.
	FeedbackVolume int `gorm:"not null;default:0"`

	TotalSessions int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Class) TableName() string { return "classes" }

var ErrClassNotFound = errors.New("class_not_found")

type Repository interface {
	Insert(ctx context.Context, c *Class) error
	FindByID(ctx context.Context, id snowflake.ID) (*Class, error)
	List(ctx context.Context) ([]Class, error)
}
