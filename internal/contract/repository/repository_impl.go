package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) contractdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, c *contractdomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*contractdomain.Contract, error) {
	var c contractdomain.Contract
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, filter contractdomain.ListFilter) ([]contractdomain.Contract, error) {
	q := r.db.WithContext(ctx).Model(&contractdomain.Contract{})
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var out []contractdomain.Contract
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) UpdateStatus(ctx context.Context, id snowflake.ID, status contractdomain.ContractStatus) error {
	res := r.db.WithContext(ctx).Model(&contractdomain.Contract{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contractdomain.ErrContractNotFound
	}
	return nil
}
