package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/clock"
	"github.com/edupointlabs/edupoint/internal/observability"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
	creditingdomain "github.com/edupointlabs/edupoint/internal/crediting/domain"
	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	enrollmentrepo "github.com/edupointlabs/edupoint/internal/enrollment/repository"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
	studentrepo "github.com/edupointlabs/edupoint/internal/student/repository"
)

type Engine struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID   *snowflake.Node
	metrics *observability.Metrics
}

type EngineParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Metrics *observability.Metrics `optional:"true"`
}

func NewEngine(p EngineParam) creditingdomain.Engine {
	return &Engine{
		db:    p.DB,
		log:   p.Log.Named("crediting.engine"),
		clock: p.Clock,

		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

// ApplyPaidTransition credits a student account for a contract that just
// became Paid. Safe under at-least-once delivery: a redelivered event fails
// the "status actually changed" precondition and is a no-op. With a non-nil
// tx the account update and enrollment record join the caller's transaction.
func (e *Engine) ApplyPaidTransition(ctx context.Context, tx *gorm.DB, prior, next *contractdomain.Contract) (creditingdomain.Result, error) {
	if next.Status != contractdomain.StatusPaid {
		return creditingdomain.ResultSkippedNotPaid, nil
	}
	if prior != nil && prior.Status == next.Status {
		return creditingdomain.ResultSkippedNotPaid, nil
	}

	if next.Type != contractdomain.TypeStudent || next.StudentID == nil {
		return creditingdomain.ResultSkippedNotStudent, nil
	}

	grant, err := next.SessionGrant()
	if err != nil {
		return "", err
	}
	if grant == 0 {
		// Material-only contract; sessions untouched.
		return creditingdomain.ResultSkippedNoCourses, nil
	}

	studentID := *next.StudentID
	result := creditingdomain.ResultCredited

	db := e.db
	if tx != nil {
		db = tx
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		students := studentrepo.NewRepository(tx)
		enrollments := enrollmentrepo.NewRepository(tx)

		account, err := students.FindByID(ctx, studentID)
		if err != nil {
			return fmt.Errorf("load student %s: %w", studentID, err)
		}
		if account == nil {
			// No phantom accounts: an unknown student id drops the credit.
			result = creditingdomain.ResultSkippedNoAccount
			return nil
		}

		applyGrant(account, next.Category, grant)
		account.UpdatedAt = e.clock.Now(ctx)

		if err := students.Save(ctx, account); err != nil {
			return fmt.Errorf("save student %s: %w", studentID, err)
		}

		contractID := next.ID
		rec := &enrollmentdomain.EnrollmentRecord{
			ID:         e.genID.Generate(),
			StudentID:  studentID,
			ClassID:    account.ClassID,
			Kind:       recordKind(next.Category),
			Sessions:   grant,
			Amount:     next.TotalAmount,
			ContractID: &contractID,
			CreatedBy:  next.CreatedBy,
			CreatedAt:  e.clock.Now(ctx),
		}
		if err := enrollments.Insert(ctx, rec); err != nil {
			return fmt.Errorf("append enrollment record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if e.metrics != nil {
		e.metrics.CreditOutcomes.WithLabelValues(string(result)).Inc()
		if result == creditingdomain.ResultCredited {
			e.metrics.SessionsCredited.Add(float64(grant))
		}
	}

	switch result {
	case creditingdomain.ResultCredited:
		e.log.Info("contract credited",
			zap.String("contract_id", next.ID.String()),
			zap.String("student_id", studentID.String()),
			zap.Int("sessions", grant),
			zap.String("category", string(next.Category)),
		)
	case creditingdomain.ResultSkippedNoAccount:
		e.log.Warn("credit skipped, student account missing",
			zap.String("contract_id", next.ID.String()),
			zap.String("student_id", studentID.String()),
		)
	}
	return result, nil
}

// applyGrant is the crediting policy. Renewal and linked contracts always
// top up. A new contract sets the first grant when the account has no
// sessions yet, otherwise it is an additional purchase; it also promotes a
// trial account to active.
func applyGrant(account *studentdomain.StudentAccount, category contractdomain.ContractCategory, grant int) {
	switch category {
	case contractdomain.CategoryRenewal, contractdomain.CategoryLinked:
		account.RegisteredSessions += grant
	default:
		if account.RegisteredSessions == 0 {
			account.RegisteredSessions = grant
		} else {
			account.RegisteredSessions += grant
		}
		if category == contractdomain.CategoryNew && account.Status == studentdomain.StatusTrial {
			account.Status = studentdomain.StatusActive
		}
	}
}

func recordKind(category contractdomain.ContractCategory) enrollmentdomain.RecordKind {
	switch category {
	case contractdomain.CategoryRenewal:
		return enrollmentdomain.KindRenewal
	case contractdomain.CategoryLinked:
		return enrollmentdomain.KindLinked
	default:
		return enrollmentdomain.KindNewContract
	}
}
