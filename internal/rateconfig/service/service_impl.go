package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/clock"
	"github.com/edupointlabs/edupoint/internal/rateconfig/repository"

	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type Service struct {
	log   *zap.Logger
	clock clock.Clock

	genID *snowflake.Node
	repo  ratedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
}

func NewService(p ServiceParam) ratedomain.Service {
	return &Service{
		log:   p.Log.Named("rateconfig.service"),
		clock: p.Clock,

		genID: p.GenID,
		repo:  repository.NewRepository(p.DB),
	}
}

func (s *Service) CreateRule(ctx context.Context, req ratedomain.CreateRuleRequest) (*ratedomain.SalaryRule, error) {
	now := s.clock.Now(ctx)
	rule := &ratedomain.SalaryRule{
		ID:       s.genID.Generate(),
		StaffID:  req.StaffID,
		ClassID:  req.ClassID,
		WorkType: wsdomain.WorkType(req.WorkType),

		RateUnit: req.RateUnit,
		BaseRate: req.BaseRate,

		FixedSalary: req.FixedSalary,
		Allowance:   req.Allowance,
		KPIBonus:    req.KPIBonus,

		EffectiveDate: now,
		CreatedAt:     now,
	}
	if err := s.repo.InsertRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("insert salary rule: %w", err)
	}

	s.log.Info("salary rule created",
		zap.String("staff_id", rule.StaffID.String()),
		zap.String("class_id", rule.ClassID.String()),
		zap.String("work_type", string(rule.WorkType)),
		zap.Int64("base_rate", rule.BaseRate),
	)
	return rule, nil
}

func (s *Service) ListRulesByStaff(ctx context.Context, staffID snowflake.ID) ([]ratedomain.SalaryRule, error) {
	return s.repo.ListRulesByStaff(ctx, staffID)
}

func (s *Service) ReplaceTiers(ctx context.Context, rangeType ratedomain.RangeType, inputs []ratedomain.TierInput) ([]ratedomain.RangeTier, error) {
	now := s.clock.Now(ctx)
	tiers := make([]ratedomain.RangeTier, 0, len(inputs))
	for _, in := range inputs {
		tiers = append(tiers, ratedomain.RangeTier{
			ID:        s.genID.Generate(),
			RangeType: rangeType,
			MinCount:  in.MinCount,
			MaxCount:  in.MaxCount,
			Amount:    in.Amount,
			CreatedAt: now,
		})
	}
	if err := s.repo.ReplaceTiers(ctx, rangeType, tiers); err != nil {
		return nil, err
	}

	s.log.Info("tier table replaced",
		zap.String("range_type", string(rangeType)),
		zap.Int("tiers", len(tiers)),
	)
	return tiers, nil
}

func (s *Service) ListTiers(ctx context.Context, rangeType ratedomain.RangeType) ([]ratedomain.RangeTier, error) {
	return s.repo.ListTiers(ctx, rangeType)
}
