// Package domain defines the per-class roster snapshot: a pure fold over
// student accounts, recomputable from scratch at any time.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Snapshot is the derived roster state of one class. Buckets are mutually
// exclusive and Total covers exactly the valid (non-orphaned) accounts.
type Snapshot struct {
	ClassID   snowflake.ID `json:"class_id"`
	ClassName string       `json:"class_name"`

	Total    int `json:"total"`
	Trial    int `json:"trial"`
	Active   int `json:"active"`
	Debt     int `json:"debt"`
	Reserved int `json:"reserved"`
	Dropped  int `json:"dropped"`

	// RemainingSessions and RemainingValue sum max(remaining, 0) over
	// accounts not reserved or dropped. Never negative.
	RemainingSessions int   `json:"remaining_sessions"`
	RemainingValue    int64 `json:"remaining_value"`

	// NameMatched counts accounts mapped through the legacy class-name
	// fallback rather than an explicit class id.
	NameMatched int `json:"name_matched,omitempty"`
}

// Orphan is an account whose class id references no existing class. Orphans
// are excluded from snapshots and surfaced for deliberate cleanup.
type Orphan struct {
	StudentID   snowflake.ID `json:"student_id"`
	StudentCode string       `json:"student_code"`
	ClassID     snowflake.ID `json:"class_id"`
}

type Aggregation struct {
	Snapshots []Snapshot `json:"snapshots"`
	Orphans   []Orphan   `json:"orphans,omitempty"`
	// Unmapped counts accounts with neither a resolvable class id nor a
	// matching class name.
	Unmapped int `json:"unmapped,omitempty"`
}

type Service interface {
	Snapshot(ctx context.Context, classID snowflake.ID) (*Snapshot, error)
	SnapshotAll(ctx context.Context) (*Aggregation, error)
}
