package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) classdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, c *classdomain.Class) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*classdomain.Class, error) {
	var c classdomain.Class
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]classdomain.Class, error) {
	var out []classdomain.Class
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}
