package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/observability"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	classrepo "github.com/edupointlabs/edupoint/internal/class/repository"
	payrolldomain "github.com/edupointlabs/edupoint/internal/payroll/domain"
	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	raterepo "github.com/edupointlabs/edupoint/internal/rateconfig/repository"
	staffdomain "github.com/edupointlabs/edupoint/internal/staff/domain"
	staffrepo "github.com/edupointlabs/edupoint/internal/staff/repository"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
	wsrepo "github.com/edupointlabs/edupoint/internal/worksession/repository"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	sessions wsdomain.Repository
	rates    ratedomain.Repository
	classes  classdomain.Repository
	staff    staffdomain.Repository
	metrics  *observability.Metrics
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Metrics *observability.Metrics `optional:"true"`
}

func NewService(p ServiceParam) payrolldomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("payroll.service"),

		sessions: wsrepo.NewRepository(p.DB),
		rates:    raterepo.NewRepository(p.DB),
		classes:  classrepo.NewRepository(p.DB),
		staff:    staffrepo.NewRepository(p.DB),
		metrics:  p.Metrics,
	}
}

// MonthlySummary folds every confirmed work session in the period into a
// per-staff payable figure. The drill-down lines are the very amounts the
// summary sums.
func (s *Service) MonthlySummary(ctx context.Context, month, year int) (*payrolldomain.MonthlySummary, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, fmt.Errorf("%w: %d/%d", payrolldomain.ErrInvalidPeriod, month, year)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	sessions, err := s.sessions.ListConfirmedInPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load confirmed sessions: %w", err)
	}

	teachingTiers, err := s.rates.ListTiers(ctx, ratedomain.RangeTeaching)
	if err != nil {
		return nil, err
	}
	feedbackTiers, err := s.rates.ListTiers(ctx, ratedomain.RangeAssistantFeedback)
	if err != nil {
		return nil, err
	}

	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	classByID := make(map[snowflake.ID]*classdomain.Class, len(classes))
	for i := range classes {
		classByID[classes[i].ID] = &classes[i]
	}

	byStaff := make(map[snowflake.ID]*payrolldomain.StaffSummary)
	var order []snowflake.ID

	for i := range sessions {
		sess := &sessions[i]

		sum, ok := byStaff[sess.StaffID]
		if !ok {
			sum = &payrolldomain.StaffSummary{
				StaffID:   sess.StaffID,
				StaffName: sess.StaffName,
				Position:  sess.Position,
			}
			byStaff[sess.StaffID] = sum
			order = append(order, sess.StaffID)
		}

		res, err := s.resolveRate(ctx, sess, classByID, teachingTiers, feedbackTiers)
		if err != nil {
			return nil, err
		}
		if res.Kind == payrolldomain.ResolutionUnresolved {
			sum.Unresolved = append(sum.Unresolved, sess.ID)
			if s.metrics != nil {
				s.metrics.UnresolvedRates.Inc()
			}
			s.log.Warn("no pay rate resolved",
				zap.String("session_id", sess.ID.String()),
				zap.String("staff_id", sess.StaffID.String()),
				zap.String("type", string(sess.Type)),
			)
		}

		sum.ConfirmedSessions++
		sum.Lines = append(sum.Lines, payrolldomain.DrillDownLine{
			SessionID:    sess.ID,
			Date:         sess.Date,
			TimeStart:    sess.TimeStart,
			TimeEnd:      sess.TimeEnd,
			ClassName:    sess.ClassName,
			Type:         sess.Type,
			StudentCount: sess.StudentCount,
			Resolution:   res,
			Amount:       res.Amount,
		})
		sum.EstimatedSalary += res.Amount
	}

	// Staff-level fixed components come from the staff's salary rules.
	for _, staffID := range order {
		sum := byStaff[staffID]
		fixed, allowance, kpi, err := s.fixedComponents(ctx, staffID)
		if err != nil {
			return nil, err
		}
		sum.FixedSalary = fixed
		sum.Allowance = allowance
		sum.KPIBonus = kpi
		sum.EstimatedSalary += fixed + allowance
	}

	sort.Slice(order, func(i, j int) bool {
		return byStaff[order[i]].StaffName < byStaff[order[j]].StaffName
	})

	out := &payrolldomain.MonthlySummary{Month: month, Year: year}
	for _, staffID := range order {
		out.Staff = append(out.Staff, *byStaff[staffID])
	}
	return out, nil
}

// resolveRate is the ordered resolver: a persisted manual correction wins,
// then the explicit salary rule, then the tier table for the work type.
func (s *Service) resolveRate(
	ctx context.Context,
	sess *wsdomain.WorkSession,
	classByID map[snowflake.ID]*classdomain.Class,
	teachingTiers, feedbackTiers []ratedomain.RangeTier,
) (payrolldomain.Resolution, error) {
	if sess.ManualAmount != nil {
		return payrolldomain.Resolution{Kind: payrolldomain.ResolutionManual, Amount: *sess.ManualAmount}, nil
	}

	if sess.ClassID != nil {
		rule, err := s.rates.FindRule(ctx, sess.StaffID, *sess.ClassID, sess.Type)
		if err != nil {
			return payrolldomain.Resolution{}, fmt.Errorf("rate lookup for session %s: %w", sess.ID, err)
		}
		if rule != nil {
			ruleID := rule.ID
			return payrolldomain.Resolution{
				Kind:   payrolldomain.ResolutionExplicit,
				Amount: proratedAmount(rule.BaseRate, rule.RateUnit, sess.Minutes()),
				RuleID: &ruleID,
			}, nil
		}
	}

	tiers, key := tierLookup(sess, classByID, teachingTiers, feedbackTiers)
	if tier := ratedomain.TierFor(tiers, key); tier != nil {
		tierID := tier.ID
		return payrolldomain.Resolution{
			Kind:   payrolldomain.ResolutionTiered,
			Amount: tier.Amount,
			TierID: &tierID,
		}, nil
	}

	return payrolldomain.Resolution{Kind: payrolldomain.ResolutionUnresolved}, nil
}

func (s *Service) fixedComponents(ctx context.Context, staffID snowflake.ID) (fixed, allowance, kpi int64, err error) {
	rules, err := s.rates.ListRulesByStaff(ctx, staffID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("load salary rules for %s: %w", staffID, err)
	}
	if len(rules) == 0 {
		return 0, 0, 0, nil
	}
	// Rules are ordered newest first. The latest-effective rule carries the
	// whole fixed package, including any component it zeroes out, so an
	// older rule can never revive a retired salary or allowance.
	latest := rules[0]
	return latest.FixedSalary, latest.Allowance, latest.KPIBonus, nil
}
