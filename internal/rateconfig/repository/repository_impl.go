package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ratedomain.Repository {
	return &repository{db: db}
}

func (r *repository) InsertRule(ctx context.Context, rule *ratedomain.SalaryRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindRule(ctx context.Context, staffID, classID snowflake.ID, workType wsdomain.WorkType) (*ratedomain.SalaryRule, error) {
	var rule ratedomain.SalaryRule
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND class_id = ? AND work_type = ?", staffID, classID, workType).
		Order("effective_date DESC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) ListRulesByStaff(ctx context.Context, staffID snowflake.ID) ([]ratedomain.SalaryRule, error) {
	var out []ratedomain.SalaryRule
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("effective_date DESC").
		Find(&out).Error
	return out, err
}

// ReplaceTiers swaps the whole table for a range type in one transaction,
// rejecting invalid partitions before touching anything.
func (r *repository) ReplaceTiers(ctx context.Context, rangeType ratedomain.RangeType, tiers []ratedomain.RangeTier) error {
	if err := ratedomain.ValidateTiers(tiers); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("range_type = ?", rangeType).Delete(&ratedomain.RangeTier{}).Error; err != nil {
			return err
		}
		for i := range tiers {
			tiers[i].RangeType = rangeType
			if err := tx.Create(&tiers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) ListTiers(ctx context.Context, rangeType ratedomain.RangeType) ([]ratedomain.RangeTier, error) {
	var out []ratedomain.RangeTier
	err := r.db.WithContext(ctx).
		Where("range_type = ?", rangeType).
		Order("min_count").
		Find(&out).Error
	return out, err
}
