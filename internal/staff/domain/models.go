// Package domain holds the staff directory consumed by the compensation
// engine. Maintained externally; the engine reads names, positions and the
// fixed salary components.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Position string

const (
	PositionTeacher        Position = "teacher"
	PositionForeignTeacher Position = "foreign_teacher"
	PositionAssistant      Position = "assistant"
)

type Staff struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	Code     string       `gorm:"type:text;uniqueIndex"`
	Name     string       `gorm:"type:text;not null"`
	Position Position     `gorm:"type:text;not null"`
	Active   bool         `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Staff) TableName() string { return "staff" }

var ErrStaffNotFound = errors.New("staff_not_found")

type Repository interface {
	Insert(ctx context.Context, s *Staff) error
	FindByID(ctx context.Context, id snowflake.ID) (*Staff, error)
	List(ctx context.Context) ([]Staff, error)
}
