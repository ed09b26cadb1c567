package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) studentdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, a *studentdomain.StudentAccount) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*studentdomain.StudentAccount, error) {
	var a studentdomain.StudentAccount
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context) ([]studentdomain.StudentAccount, error) {
	var out []studentdomain.StudentAccount
	err := r.db.WithContext(ctx).Order("code").Find(&out).Error
	return out, err
}

func (r *repository) Save(ctx context.Context, a *studentdomain.StudentAccount) error {
	res := r.db.WithContext(ctx).Model(&studentdomain.StudentAccount{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"status":              a.Status,
			"registered_sessions": a.RegisteredSessions,
			"attended_sessions":   a.AttendedSessions,
			"contract_debt":       a.ContractDebt,
			"updated_at":          a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return studentdomain.ErrStudentNotFound
	}
	return nil
}

func (r *repository) SetNextPaymentDate(ctx context.Context, id snowflake.ID, due time.Time) error {
	res := r.db.WithContext(ctx).Model(&studentdomain.StudentAccount{}).
		Where("id = ?", id).
		Update("next_payment_date", due)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return studentdomain.ErrStudentNotFound
	}
	return nil
}
