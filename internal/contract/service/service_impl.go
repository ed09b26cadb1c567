package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/clock"
	"github.com/edupointlabs/edupoint/internal/contract/repository"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
	creditingdomain "github.com/edupointlabs/edupoint/internal/crediting/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID     *snowflake.Node
	repo      contractdomain.Repository
	crediting creditingdomain.Engine
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Crediting creditingdomain.Engine
}

func NewService(p ServiceParam) contractdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("contract.service"),
		clock: p.Clock,

		genID:     p.GenID,
		repo:      repository.NewRepository(p.DB),
		crediting: p.Crediting,
	}
}

func (s *Service) Create(ctx context.Context, req contractdomain.CreateRequest) (*contractdomain.Contract, error) {
	if len(req.Items) == 0 {
		return nil, contractdomain.ErrNoLineItems
	}
	if req.Type == contractdomain.TypeStudent && req.StudentID == nil {
		return nil, contractdomain.ErrStudentRequired
	}

	status := contractdomain.StatusDraft
	if req.Paid {
		status = contractdomain.StatusPaid
	}

	now := s.clock.Now(ctx)
	c := &contractdomain.Contract{
		ID:         s.genID.Generate(),
		Code:       req.Code,
		Type:       req.Type,
		Category:   req.Category,
		StudentID:  req.StudentID,
		Status:     status,
		PaidAmount: req.PaidAmount,
		CreatedBy:  req.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.SetLineItems(req.Items); err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		c.TotalAmount += item.FinalPrice
	}

	// The insert and its credit commit together: a crediting failure must
	// not leave a Paid contract whose sessions were never granted.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewRepository(tx).Insert(ctx, c); err != nil {
			return fmt.Errorf("insert contract: %w", err)
		}

		// A contract created directly as Paid is credited here and only
		// here; UpdateStatus never sees its creation, so the two paths
		// cannot both fire for the same contract.
		if status == contractdomain.StatusPaid {
			if _, err := s.crediting.ApplyPaidTransition(ctx, tx, nil, c); err != nil {
				return fmt.Errorf("credit contract %s: %w", c.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contract created",
		zap.String("contract_id", c.ID.String()),
		zap.String("status", string(c.Status)),
		zap.Int64("total_amount", c.TotalAmount),
	)
	return c, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*contractdomain.Contract, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, contractdomain.ErrContractNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filter contractdomain.ListFilter) ([]contractdomain.Contract, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, status contractdomain.ContractStatus) (*contractdomain.Contract, error) {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contractdomain.CanTransition(prior.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", contractdomain.ErrInvalidTransition, prior.Status, status)
	}

	next := *prior
	next.Status = status
	next.UpdatedAt = s.clock.Now(ctx)

	// Status write and credit are a single unit of work: if crediting
	// fails the contract stays in its prior status and the whole action
	// can be retried.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewRepository(tx).UpdateStatus(ctx, id, status); err != nil {
			return fmt.Errorf("update contract %s status: %w", id, err)
		}

		if _, err := s.crediting.ApplyPaidTransition(ctx, tx, prior, &next); err != nil {
			return fmt.Errorf("credit contract %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contract status updated",
		zap.String("contract_id", id.String()),
		zap.String("from", string(prior.Status)),
		zap.String("to", string(status)),
	)
	return &next, nil
}
