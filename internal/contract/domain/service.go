package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	Code      string           `json:"code"`
	Type      ContractType     `json:"type"`
	Category  ContractCategory `json:"category"`
	StudentID *snowflake.ID    `json:"student_id,omitempty"`
	Items     []LineItem       `json:"items"`
	// Paid creates the contract directly in Paid status (immediate cash
	// sale); otherwise it starts as a draft.
	Paid       bool   `json:"paid"`
	PaidAmount int64  `json:"paid_amount"`
	CreatedBy  string `json:"created_by"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Contract, error)
	Get(ctx context.Context, id snowflake.ID) (*Contract, error)
	List(ctx context.Context, filter ListFilter) ([]Contract, error)
	// UpdateStatus validates the FSM edge, persists it, and dispatches the
	// transition to the crediting engine. This is the only code path that
	// can observe "became Paid".
	UpdateStatus(ctx context.Context, id snowflake.ID, status ContractStatus) (*Contract, error)
}
