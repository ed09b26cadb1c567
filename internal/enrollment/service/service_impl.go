package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/clock"
	"github.com/edupointlabs/edupoint/internal/enrollment/repository"

	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	studentrepo "github.com/edupointlabs/edupoint/internal/student/repository"

	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID *snowflake.Node
	repo  enrollmentdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
}

func NewService(p ServiceParam) enrollmentdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("enrollment.service"),
		clock: p.Clock,

		genID: p.GenID,
		repo:  repository.NewRepository(p.DB),
	}
}

func (s *Service) History(ctx context.Context, studentID snowflake.ID) ([]enrollmentdomain.EnrollmentRecord, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// Adjust moves the registered counter by a signed delta and appends the
// matching history record in the same transaction.
func (s *Service) Adjust(ctx context.Context, req enrollmentdomain.AdjustRequest) (*enrollmentdomain.EnrollmentRecord, error) {
	if req.Sessions == 0 {
		return nil, enrollmentdomain.ErrZeroAdjustment
	}

	var rec *enrollmentdomain.EnrollmentRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		students := studentrepo.NewRepository(tx)
		records := repository.NewRepository(tx)

		account, err := students.FindByID(ctx, req.StudentID)
		if err != nil {
			return err
		}
		if account == nil {
			return studentdomain.ErrStudentNotFound
		}

		now := s.clock.Now(ctx)
		account.RegisteredSessions += req.Sessions
		account.UpdatedAt = now
		if err := students.Save(ctx, account); err != nil {
			return fmt.Errorf("save student %s: %w", req.StudentID, err)
		}

		rec = &enrollmentdomain.EnrollmentRecord{
			ID:        s.genID.Generate(),
			StudentID: req.StudentID,
			ClassID:   account.ClassID,
			Kind:      enrollmentdomain.KindManualAdjust,
			Sessions:  req.Sessions,
			CreatedBy: req.CreatedBy,
			Note:      req.Note,
			CreatedAt: now,
		}
		return records.Insert(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("manual session adjustment",
		zap.String("student_id", req.StudentID.String()),
		zap.Int("sessions", req.Sessions),
		zap.String("created_by", req.CreatedBy),
	)
	return rec, nil
}
