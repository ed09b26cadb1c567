package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) enrollmentdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, rec *enrollmentdomain.EnrollmentRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) ListByStudent(ctx context.Context, studentID snowflake.ID) ([]enrollmentdomain.EnrollmentRecord, error) {
	var out []enrollmentdomain.EnrollmentRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
