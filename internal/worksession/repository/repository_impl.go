package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) wsdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, w *wsdomain.WorkSession) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*wsdomain.WorkSession, error) {
	var w wsdomain.WorkSession
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []snowflake.ID) ([]wsdomain.WorkSession, error) {
	var out []wsdomain.WorkSession
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *repository) List(ctx context.Context, filter wsdomain.ListFilter) ([]wsdomain.WorkSession, error) {
	q := r.db.WithContext(ctx).Model(&wsdomain.WorkSession{})
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date < ?", *filter.To)
	}
	var out []wsdomain.WorkSession
	err := q.Order("date DESC, time_start").Find(&out).Error
	return out, err
}

func (r *repository) ListConfirmedInPeriod(ctx context.Context, from, to time.Time) ([]wsdomain.WorkSession, error) {
	var out []wsdomain.WorkSession
	err := r.db.WithContext(ctx).
		Where("status = ? AND date >= ? AND date < ?", wsdomain.StatusConfirmed, from, to).
		Order("staff_id, date, time_start").
		Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, w *wsdomain.WorkSession) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) MarkConfirmed(ctx context.Context, ids []snowflake.ID, at time.Time, actor string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&wsdomain.WorkSession{}).
		Where("id IN ? AND status = ?", ids, wsdomain.StatusPending).
		Updates(map[string]any{
			"status":       wsdomain.StatusConfirmed,
			"confirmed_at": at,
			"confirmed_by": actor,
			"updated_at":   at,
		})
	return res.RowsAffected, res.Error
}
