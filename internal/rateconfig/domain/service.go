package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type CreateRuleRequest struct {
	StaffID  snowflake.ID `json:"staff_id"`
	ClassID  snowflake.ID `json:"class_id"`
	WorkType string       `json:"work_type"`

	RateUnit RateUnit `json:"rate_unit"`
	BaseRate int64    `json:"base_rate"`

	FixedSalary int64 `json:"fixed_salary"`
	Allowance   int64 `json:"allowance"`
	KPIBonus    int64 `json:"kpi_bonus"`
}

// ParseRangeType validates a range type coming off the wire.
func ParseRangeType(s string) (RangeType, error) {
	switch RangeType(s) {
	case RangeTeaching, RangeAssistantFeedback:
		return RangeType(s), nil
	default:
		return "", ErrInvalidRangeType
	}
}

// TierInput is one tier row as submitted; ids are assigned on write.
type TierInput struct {
	MinCount int   `json:"min_count"`
	MaxCount *int  `json:"max_count,omitempty"`
	Amount   int64 `json:"amount"`
}

type Service interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (*SalaryRule, error)
	ListRulesByStaff(ctx context.Context, staffID snowflake.ID) ([]SalaryRule, error)
	// ReplaceTiers swaps the whole tier table for one range type,
	// validating the partition first.
	ReplaceTiers(ctx context.Context, rangeType RangeType, tiers []TierInput) ([]RangeTier, error)
	ListTiers(ctx context.Context, rangeType RangeType) ([]RangeTier, error)
}
