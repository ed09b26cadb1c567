// Package domain holds the pay rate configuration: explicit per staff/class
// salary rules and the tiered fallback tables.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type RateUnit string

const (
	// UnitHour pays BaseRate per 60 minutes, UnitShift per 90 minutes.
	UnitHour  RateUnit = "hour"
	UnitShift RateUnit = "shift"
)

func (u RateUnit) Minutes() int {
	if u == UnitShift {
		return 90
	}
	return 60
}

// SalaryRule binds (staff, class, work type) to a rate. It always wins over
// the tier table.
type SalaryRule struct {
	ID       snowflake.ID      `gorm:"primaryKey"`
	StaffID  snowflake.ID      `gorm:"not null;index:idx_salary_rules_staff_class"`
	ClassID  snowflake.ID      `gorm:"not null;index:idx_salary_rules_staff_class"`
	WorkType wsdomain.WorkType `gorm:"type:text;not null"`

	RateUnit RateUnit `gorm:"type:text;not null"`
	BaseRate int64    `gorm:"not null"`

	FixedSalary int64 `gorm:"not null;default:0"`
	Allowance   int64 `gorm:"not null;default:0"`
	KPIBonus    int64 `gorm:"not null;default:0"`

	EffectiveDate time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SalaryRule) TableName() string { return "salary_rules" }

type RangeType string

const (
	// RangeTeaching tiers by the class's average student count.
	RangeTeaching RangeType = "teaching"
	// RangeAssistantFeedback tiers by the class's feedback volume.
	RangeAssistantFeedback RangeType = "assistant_feedback"
)

// RangeTier is one row of a tier table: [MinCount, MaxCount] inclusive,
// MaxCount nil for an open upper bound.
type RangeTier struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	RangeType RangeType    `gorm:"type:text;not null;index"`
	MinCount  int          `gorm:"not null"`
	MaxCount  *int         ``
	Amount    int64        `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RangeTier) TableName() string { return "salary_range_configs" }

var (
	ErrOverlappingTiers = errors.New("overlapping_tier_ranges")
	ErrUnorderedTiers   = errors.New("unordered_tier_ranges")
	ErrNoTiers          = errors.New("no_tiers_configured")
	ErrInvalidRangeType = errors.New("invalid_range_type")
)

// ValidateTiers requires a strictly ordered partition: ascending, no
// overlaps, only the last tier open-ended.
func ValidateTiers(tiers []RangeTier) error {
	if len(tiers) == 0 {
		return ErrNoTiers
	}
	for i := 0; i < len(tiers); i++ {
		t := tiers[i]
		if t.MaxCount != nil && *t.MaxCount < t.MinCount {
			return ErrUnorderedTiers
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if prev.MaxCount == nil {
			// An open-ended tier must be last.
			return ErrOverlappingTiers
		}
		if t.MinCount <= *prev.MaxCount {
			return ErrOverlappingTiers
		}
	}
	return nil
}

// TierFor selects the tier covering count. The table must already satisfy
// ValidateTiers, so at most one tier can match.
func TierFor(tiers []RangeTier, count int) *RangeTier {
	for i := range tiers {
		t := &tiers[i]
		if count < t.MinCount {
			continue
		}
		if t.MaxCount == nil || count <= *t.MaxCount {
			return t
		}
	}
	return nil
}

type Repository interface {
	InsertRule(ctx context.Context, r *SalaryRule) error
	// FindRule returns the active rule for (staff, class, work type), the
	// latest effective one when several exist.
	FindRule(ctx context.Context, staffID, classID snowflake.ID, workType wsdomain.WorkType) (*SalaryRule, error)
	ListRulesByStaff(ctx context.Context, staffID snowflake.ID) ([]SalaryRule, error)
	ReplaceTiers(ctx context.Context, rangeType RangeType, tiers []RangeTier) error
	ListTiers(ctx context.Context, rangeType RangeType) ([]RangeTier, error)
}
