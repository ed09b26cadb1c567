// Package domain defines the session crediting engine: the single handler
// that turns a contract's arrival at Paid into an entitlement change on
// exactly one student account, exactly once.
package domain

import (
	"context"

	"gorm.io/gorm"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
)

// Result tags what the engine did with one status event. Skips are normal
// traffic, not failures.
type Result string

const (
	ResultCredited          Result = "credited"
	ResultSkippedNotPaid    Result = "skipped_not_paid"
	ResultSkippedNotStudent Result = "skipped_not_student"
	ResultSkippedNoCourses  Result = "skipped_no_courses"
	ResultSkippedNoAccount  Result = "skipped_no_account"
)

// Engine is invoked by the contract service on every status event, with the
// prior state on update and prior == nil on create. The precondition check
// (status genuinely became Paid) is the idempotency guard, so the caller
// must route each contract event through this handler exactly once.
//
// When tx is non-nil the credit is folded into the caller's transaction, so
// a contract write and its credit commit or roll back together. A nil tx
// makes the engine open its own.
type Engine interface {
	ApplyPaidTransition(ctx context.Context, tx *gorm.DB, prior, next *contractdomain.Contract) (Result, error)
}
