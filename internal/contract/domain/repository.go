package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrContractNotFound  = errors.New("contract_not_found")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNoLineItems       = errors.New("contract_has_no_line_items")
	ErrStudentRequired   = errors.New("student_contract_requires_student")
)

type Repository interface {
	Insert(ctx context.Context, c *Contract) error
	FindByID(ctx context.Context, id snowflake.ID) (*Contract, error)
	List(ctx context.Context, filter ListFilter) ([]Contract, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status ContractStatus) error
}

type ListFilter struct {
	StudentID *snowflake.ID
	Status    ContractStatus
	Category  ContractCategory
}
