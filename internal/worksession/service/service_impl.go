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
	"github.com/edupointlabs/edupoint/internal/worksession/repository"

	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID   *snowflake.Node
	repo    wsdomain.Repository
	metrics *observability.Metrics
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Metrics *observability.Metrics `optional:"true"`
}

func NewService(p ServiceParam) wsdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("worksession.service"),
		clock: p.Clock,

		genID:   p.GenID,
		repo:    repository.NewRepository(p.DB),
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req wsdomain.CreateRequest) (*wsdomain.WorkSession, error) {
	now := s.clock.Now(ctx)
	w := &wsdomain.WorkSession{
		ID:           s.genID.Generate(),
		StaffID:      req.StaffID,
		StaffName:    req.StaffName,
		Position:     req.Position,
		Date:         req.Date,
		TimeStart:    req.TimeStart,
		TimeEnd:      req.TimeEnd,
		ClassID:      req.ClassID,
		ClassName:    req.ClassName,
		Type:         req.Type,
		Status:       wsdomain.StatusPending,
		StudentCount: req.StudentCount,
		Note:         req.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, w); err != nil {
		return nil, fmt.Errorf("insert work session: %w", err)
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*wsdomain.WorkSession, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, wsdomain.ErrSessionNotFound
	}
	return w, nil
}

func (s *Service) List(ctx context.Context, filter wsdomain.ListFilter) ([]wsdomain.WorkSession, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Confirm(ctx context.Context, id snowflake.ID, actor string) (*wsdomain.WorkSession, error) {
	return s.transition(ctx, id, wsdomain.StatusConfirmed, actor)
}

func (s *Service) Reject(ctx context.Context, id snowflake.ID, actor string) (*wsdomain.WorkSession, error) {
	return s.transition(ctx, id, wsdomain.StatusRejected, actor)
}

func (s *Service) transition(ctx context.Context, id snowflake.ID, to wsdomain.WorkStatus, actor string) (*wsdomain.WorkSession, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status != wsdomain.StatusPending {
		return nil, fmt.Errorf("%w: %s is %s", wsdomain.ErrNotPending, id, w.Status)
	}

	now := s.clock.Now(ctx)
	w.Status = to
	w.UpdatedAt = now
	if to == wsdomain.StatusConfirmed {
		w.ConfirmedAt = &now
		w.ConfirmedBy = actor
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("update work session %s: %w", id, err)
	}
	return w, nil
}

// ConfirmAll confirms the whole batch or nothing. Ids that are missing or
// not pending fail the batch; the caller retries the entire action.
func (s *Service) ConfirmAll(ctx context.Context, ids []snowflake.ID, actor string) (int, error) {
	if len(ids) == 0 {
		return 0, wsdomain.ErrEmptyBatch
	}

	now := s.clock.Now(ctx)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repository.NewRepository(tx)

		affected, err := repoTx.MarkConfirmed(ctx, ids, now, actor)
		if err != nil {
			return err
		}
		if affected != int64(len(ids)) {
			// Rolls back the rows already updated in this tx.
			return fmt.Errorf("%w: %d of %d sessions pending", wsdomain.ErrNotPending, affected, len(ids))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.BatchConfirms.Inc()
		s.metrics.BatchConfirmSize.Observe(float64(len(ids)))
	}
	s.log.Info("work sessions confirmed",
		zap.Int("count", len(ids)),
		zap.String("actor", actor),
	)
	return len(ids), nil
}

// ApplyCorrection edits a confirmed session as an explicit correction. The
// manual amount is persisted and never re-derived by the rate engine.
func (s *Service) ApplyCorrection(ctx context.Context, id snowflake.ID, c wsdomain.Correction) (*wsdomain.WorkSession, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status != wsdomain.StatusConfirmed {
		return nil, fmt.Errorf("%w: %s is %s", wsdomain.ErrNotConfirmed, id, w.Status)
	}

	if c.Date != nil {
		w.Date = *c.Date
	}
	if c.TimeStart != nil {
		w.TimeStart = *c.TimeStart
	}
	if c.TimeEnd != nil {
		w.TimeEnd = *c.TimeEnd
	}
	if c.ClassID != nil {
		w.ClassID = c.ClassID
	}
	if c.Type != nil {
		w.Type = *c.Type
	}
	if c.ManualAmount != nil {
		w.ManualAmount = c.ManualAmount
	}
	if c.Note != nil {
		w.Note = *c.Note
	}
	w.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("apply correction to %s: %w", id, err)
	}

	s.log.Info("work session corrected",
		zap.String("session_id", id.String()),
		zap.Bool("manual_amount", c.ManualAmount != nil),
	)
	return w, nil
}
