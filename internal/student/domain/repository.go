package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrStudentNotFound = errors.New("student_not_found")
	ErrNegativeAmount  = errors.New("amount_must_be_positive")
)

type Repository interface {
	Insert(ctx context.Context, a *StudentAccount) error
	FindByID(ctx context.Context, id snowflake.ID) (*StudentAccount, error)
	List(ctx context.Context) ([]StudentAccount, error)
	// Save writes the full counter/status set in one statement so readers
	// never observe a half-applied credit.
	Save(ctx context.Context, a *StudentAccount) error
	SetNextPaymentDate(ctx context.Context, id snowflake.ID, due time.Time) error
}
