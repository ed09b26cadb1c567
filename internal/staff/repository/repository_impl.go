package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	staffdomain "github.com/edupointlabs/edupoint/internal/staff/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) staffdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, s *staffdomain.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*staffdomain.Staff, error) {
	var s staffdomain.Staff
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]staffdomain.Staff, error) {
	var out []staffdomain.Staff
	err := r.db.WithContext(ctx).Order("code").Find(&out).Error
	return out, err
}
