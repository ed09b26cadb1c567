package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/clock"
	"github.com/edupointlabs/edupoint/internal/student/repository"

	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID *snowflake.Node
	repo  studentdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
}

func NewService(p ServiceParam) studentdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("student.service"),
		clock: p.Clock,

		genID: p.GenID,
		repo:  repository.NewRepository(p.DB),
	}
}

func (s *Service) Register(ctx context.Context, a *studentdomain.StudentAccount) (*studentdomain.StudentAccount, error) {
	now := s.clock.Now(ctx)
	if a.ID == 0 {
		a.ID = s.genID.Generate()
	}
	if a.Status == "" {
		a.Status = studentdomain.StatusTrial
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*studentdomain.StudentAccount, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, studentdomain.ErrStudentNotFound
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]studentdomain.StudentAccount, error) {
	return s.repo.List(ctx)
}

func (s *Service) Classify(ctx context.Context, id snowflake.ID) (*studentdomain.Classification, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := studentdomain.Classify(a)
	return &c, nil
}

// RecordAttendance applies a consumption write from the attendance
// collaborator. Counters and status land in a single save so a concurrent
// reader never sees a half-applied update.
func (s *Service) RecordAttendance(ctx context.Context, id snowflake.ID, upd studentdomain.AttendanceUpdate) (*studentdomain.StudentAccount, error) {
	if upd.Sessions < 0 {
		return nil, studentdomain.ErrNegativeAmount
	}

	var out *studentdomain.StudentAccount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repository.NewRepository(tx)

		a, err := repoTx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return studentdomain.ErrStudentNotFound
		}

		a.AttendedSessions += upd.Sessions
		if upd.NewStatus != nil {
			a.Status = *upd.NewStatus
		}
		a.UpdatedAt = s.clock.Now(ctx)

		if err := repoTx.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordContractPayment settles part of an installment balance. The balance
// never goes below zero; clearing it moves a contract-debt account back to
// active.
func (s *Service) RecordContractPayment(ctx context.Context, id snowflake.ID, amount int64) (*studentdomain.StudentAccount, error) {
	if amount <= 0 {
		return nil, studentdomain.ErrNegativeAmount
	}

	var out *studentdomain.StudentAccount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repository.NewRepository(tx)

		a, err := repoTx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return studentdomain.ErrStudentNotFound
		}

		a.ContractDebt -= amount
		if a.ContractDebt < 0 {
			a.ContractDebt = 0
		}
		if a.ContractDebt == 0 && a.Status == studentdomain.StatusContractDebt {
			a.Status = studentdomain.StatusActive
		}
		a.UpdatedAt = s.clock.Now(ctx)

		if err := repoTx.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contract payment recorded",
		zap.String("student_id", id.String()),
		zap.Int64("amount", amount),
		zap.Int64("contract_debt", out.ContractDebt),
	)
	return out, nil
}

// SetNextPaymentDate annotates the account with a payment reminder. Pure
// metadata, not a ledger mutation.
func (s *Service) SetNextPaymentDate(ctx context.Context, id snowflake.ID, due time.Time) error {
	return s.repo.SetNextPaymentDate(ctx, id, due)
}
