// Package domain holds the Student Session Account: the authoritative
// entitlement and consumption counters plus debt classification.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SessionUnitPrice is the fixed value of one teaching session in đồng.
// Overage debt is priced at this rate.
const SessionUnitPrice int64 = 150_000

// WarningThreshold is the remaining-session count at or below which an
// active account is flagged as near exhaustion.
const WarningThreshold = 6

type AccountStatus string

const (
	StatusTrial        AccountStatus = "trial"
	StatusActive       AccountStatus = "active"
	StatusReserved     AccountStatus = "reserved"
	StatusDropped      AccountStatus = "dropped"
	StatusDebt         AccountStatus = "debt"
	StatusContractDebt AccountStatus = "contract_debt"
)

type StudentAccount struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	Code     string       `gorm:"type:text;uniqueIndex"`
	FullName string       `gorm:"type:text;not null"`

	// ClassID links the account to its class. ClassName is the legacy
	// denormalised name kept for records imported before class IDs existed.
	ClassID   *snowflake.ID `gorm:"index"`
	ClassName string        `gorm:"type:text"`

	Status AccountStatus `gorm:"type:text;not null;index"`

	RegisteredSessions int `gorm:"not null;default:0"`
	AttendedSessions   int `gorm:"not null;default:0"`

	ContractDebt    int64      `gorm:"not null;default:0"`
	NextPaymentDate *time.Time ``

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (StudentAccount) TableName() string { return "students" }

func (a *StudentAccount) Remaining() int {
	return a.RegisteredSessions - a.AttendedSessions
}

type ClassificationKind string

const (
	ClassNormal         ClassificationKind = "normal"
	ClassNearExhaustion ClassificationKind = "near_exhaustion"
	ClassExhausted      ClassificationKind = "exhausted"
	ClassDebt           ClassificationKind = "debt"
)

// Classification is the debt standing of one account. DebtAmount is set
// only for the Debt kind.
type Classification struct {
	Kind              ClassificationKind `json:"kind"`
	RemainingSessions int                `json:"remaining_sessions"`
	DebtSessions      int                `json:"debt_sessions,omitempty"`
	DebtAmount        int64              `json:"debt_amount,omitempty"`
}

// Classify derives the debt standing from the counters. Overage debt means
// teaching was delivered beyond what was purchased; it is priced at
// SessionUnitPrice per exceeded session.
func Classify(a *StudentAccount) Classification {
	remaining := a.Remaining()
	exceeded := -remaining

	overageEligible := a.Status != StatusReserved && a.Status != StatusDropped

	switch {
	case exceeded > 0 && overageEligible:
		return Classification{
			Kind:              ClassDebt,
			RemainingSessions: remaining,
			DebtSessions:      exceeded,
			DebtAmount:        int64(exceeded) * SessionUnitPrice,
		}
	case remaining == 0 && overageEligible:
		return Classification{Kind: ClassExhausted}
	case remaining > 0 && remaining <= WarningThreshold && a.Status == StatusActive:
		return Classification{Kind: ClassNearExhaustion, RemainingSessions: remaining}
	default:
		return Classification{Kind: ClassNormal, RemainingSessions: remaining}
	}
}
