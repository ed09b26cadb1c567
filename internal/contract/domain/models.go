// Package domain holds the contract ledger models and status state machine.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ContractType string

const (
	TypeStudent  ContractType = "student"
	TypeMaterial ContractType = "material"
)

type ContractCategory string

const (
	CategoryNew     ContractCategory = "new"
	CategoryRenewal ContractCategory = "renewal"
	CategoryLinked  ContractCategory = "linked"
)

type ContractStatus string

const (
	StatusDraft     ContractStatus = "draft"
	StatusPaid      ContractStatus = "paid"
	StatusDebt      ContractStatus = "debt"
	StatusCancelled ContractStatus = "cancelled"
)

// validTransitions is the full status machine. Paid is terminal for
// crediting purposes: the debt and cancellation edges never re-enter Paid.
var validTransitions = map[ContractStatus][]ContractStatus{
	StatusDraft: {StatusPaid, StatusCancelled},
	StatusPaid:  {StatusDebt, StatusCancelled},
	StatusDebt:  {StatusCancelled},
}

func CanTransition(from, to ContractStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ItemKind string

const (
	ItemCourse  ItemKind = "course"
	ItemProduct ItemKind = "product"
)

// LineItem is one row of a contract: a course-session bundle or a product
// unit. Stored as a JSON array on the contract document.
type LineItem struct {
	Kind       ItemKind     `json:"kind"`
	RefID      snowflake.ID `json:"ref_id"`
	Name       string       `json:"name"`
	Quantity   int          `json:"quantity"`
	UnitPrice  int64        `json:"unit_price"`
	FinalPrice int64        `json:"final_price"`
}

type Contract struct {
	ID        snowflake.ID     `gorm:"primaryKey"`
	Code      string           `gorm:"type:text;uniqueIndex"`
	Type      ContractType     `gorm:"type:text;not null"`
	Category  ContractCategory `gorm:"type:text;not null"`
	StudentID *snowflake.ID    `gorm:"index"`
	Items     datatypes.JSON   `gorm:"not null"`
	Status    ContractStatus   `gorm:"type:text;not null;index"`

	TotalAmount int64 `gorm:"not null"`
	PaidAmount  int64 `gorm:"not null;default:0"`

	CreatedBy string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) LineItems() ([]LineItem, error) {
	if len(c.Items) == 0 {
		return nil, nil
	}
	var items []LineItem
	if err := json.Unmarshal(c.Items, &items); err != nil {
		return nil, fmt.Errorf("decode contract %s items: %w", c.ID, err)
	}
	return items, nil
}

func (c *Contract) SetLineItems(items []LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode contract items: %w", err)
	}
	c.Items = raw
	return nil
}

// SessionGrant is the number of sessions this contract entitles: the sum of
// quantities over course items. Material-only contracts grant zero.
func (c *Contract) SessionGrant() (int, error) {
	items, err := c.LineItems()
	if err != nil {
		return 0, err
	}
	grant := 0
	for _, item := range items {
		if item.Kind == ItemCourse {
			grant += item.Quantity
		}
	}
	return grant, nil
}
