package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// AttendanceUpdate is the write issued by the attendance collaborator: it
// consumes sessions and may move the account status (debt, reserved,
// dropped). It never touches RegisteredSessions.
type AttendanceUpdate struct {
	Sessions  int            `json:"sessions"`
	NewStatus *AccountStatus `json:"new_status,omitempty"`
}

type Service interface {
	Register(ctx context.Context, a *StudentAccount) (*StudentAccount, error)
	Get(ctx context.Context, id snowflake.ID) (*StudentAccount, error)
	List(ctx context.Context) ([]StudentAccount, error)
	Classify(ctx context.Context, id snowflake.ID) (*Classification, error)
	RecordAttendance(ctx context.Context, id snowflake.ID, upd AttendanceUpdate) (*StudentAccount, error)
	RecordContractPayment(ctx context.Context, id snowflake.ID, amount int64) (*StudentAccount, error)
	SetNextPaymentDate(ctx context.Context, id snowflake.ID, due time.Time) error
}
