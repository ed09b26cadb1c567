// Package domain holds the append-only enrollment history: one record per
// entitlement change on a student account, written in the same transaction
// as the change itself.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type RecordKind string

const (
	KindNewContract  RecordKind = "new_contract"
	KindRenewal      RecordKind = "renewal"
	KindLinked       RecordKind = "linked"
	KindManualAdjust RecordKind = "manual_adjust"
)

type EnrollmentRecord struct {
	ID        snowflake.ID  `gorm:"primaryKey"`
	StudentID snowflake.ID  `gorm:"not null;index"`
	ClassID   *snowflake.ID `gorm:"index"`

	Kind       RecordKind    `gorm:"type:text;not null"`
	Sessions   int           `gorm:"not null"`
	Amount     int64         `gorm:"not null;default:0"`
	ContractID *snowflake.ID `gorm:"index"`

	CreatedBy string    `gorm:"type:text"`
	Note      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (EnrollmentRecord) TableName() string { return "enrollment_records" }

type Repository interface {
	Insert(ctx context.Context, rec *EnrollmentRecord) error
	ListByStudent(ctx context.Context, studentID snowflake.ID) ([]EnrollmentRecord, error)
}
