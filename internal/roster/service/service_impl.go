package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/observability"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	classrepo "github.com/edupointlabs/edupoint/internal/class/repository"
	rosterdomain "github.com/edupointlabs/edupoint/internal/roster/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
	studentrepo "github.com/edupointlabs/edupoint/internal/student/repository"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	classes  classdomain.Repository
	students studentdomain.Repository
	metrics  *observability.Metrics
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Metrics *observability.Metrics `optional:"true"`
}

func NewService(p ServiceParam) rosterdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("roster.service"),

		classes:  classrepo.NewRepository(p.DB),
		students: studentrepo.NewRepository(p.DB),
		metrics:  p.Metrics,
	}
}

func (s *Service) Snapshot(ctx context.Context, classID snowflake.ID) (*rosterdomain.Snapshot, error) {
	cls, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if cls == nil {
		return nil, classdomain.ErrClassNotFound
	}

	accounts, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := s.fold(cls, accounts)
	return &snap, nil
}

func (s *Service) SnapshotAll(ctx context.Context) (*rosterdomain.Aggregation, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[snowflake.ID]bool, len(classes))
	for _, cls := range classes {
		byID[cls.ID] = true
	}

	agg := &rosterdomain.Aggregation{}
	for i := range classes {
		agg.Snapshots = append(agg.Snapshots, s.fold(&classes[i], accounts))
	}

	for _, a := range accounts {
		switch {
		case a.ClassID != nil && !byID[*a.ClassID]:
			agg.Orphans = append(agg.Orphans, rosterdomain.Orphan{
				StudentID:   a.ID,
				StudentCode: a.Code,
				ClassID:     *a.ClassID,
			})
		case a.ClassID == nil && !nameMatchesAny(a.ClassName, classes):
			agg.Unmapped++
		}
	}
	if len(agg.Orphans) > 0 {
		s.log.Warn("orphaned roster records detected", zap.Int("count", len(agg.Orphans)))
	}
	return agg, nil
}

// fold recomputes one class snapshot from scratch. Accounts map by explicit
// class id, or by case-insensitive name for legacy records that predate
// class ids; the name path is ambiguous under duplicate names and is logged.
func (s *Service) fold(cls *classdomain.Class, accounts []studentdomain.StudentAccount) rosterdomain.Snapshot {
	snap := rosterdomain.Snapshot{ClassID: cls.ID, ClassName: cls.Name}

	for i := range accounts {
		a := &accounts[i]
		switch {
		case a.ClassID != nil:
			if *a.ClassID != cls.ID {
				continue
			}
		case strings.EqualFold(strings.TrimSpace(a.ClassName), cls.Name):
			snap.NameMatched++
			if s.metrics != nil {
				s.metrics.LegacyNameMatches.Inc()
			}
			s.log.Warn("account mapped by class name, not id",
				zap.String("student_id", a.ID.String()),
				zap.String("class_name", cls.Name),
			)
		default:
			continue
		}

		snap.Total++
		switch bucketFor(a) {
		case studentdomain.ClassDebt:
			snap.Debt++
		default:
			switch a.Status {
			case studentdomain.StatusTrial:
				snap.Trial++
			case studentdomain.StatusReserved:
				snap.Reserved++
			case studentdomain.StatusDropped:
				snap.Dropped++
			default:
				snap.Active++
			}
		}

		if a.Status != studentdomain.StatusReserved && a.Status != studentdomain.StatusDropped {
			remaining := a.Remaining()
			if remaining > 0 {
				snap.RemainingSessions += remaining
				snap.RemainingValue += int64(remaining) * studentdomain.SessionUnitPrice
			}
		}
	}
	return snap
}

// bucketFor gives the debt flag priority over the lifecycle status.
func bucketFor(a *studentdomain.StudentAccount) studentdomain.ClassificationKind {
	if a.Status == studentdomain.StatusDebt || a.Status == studentdomain.StatusContractDebt {
		return studentdomain.ClassDebt
	}
	if c := studentdomain.Classify(a); c.Kind == studentdomain.ClassDebt {
		return studentdomain.ClassDebt
	}
	return studentdomain.ClassNormal
}

func nameMatchesAny(name string, classes []classdomain.Class) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, cls := range classes {
		if strings.EqualFold(cls.Name, name) {
			return true
		}
	}
	return false
}
