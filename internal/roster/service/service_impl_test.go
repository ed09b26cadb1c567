package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	rosterdomain "github.com/edupointlabs/edupoint/internal/roster/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

func newTestService(t *testing.T) (*gorm.DB, rosterdomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&classdomain.Class{}, &studentdomain.StudentAccount{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop()})
	return db, svc, node
}

func seedClass(t *testing.T, db *gorm.DB, node *snowflake.Node, name string) *classdomain.Class {
	t.Helper()
	c := &classdomain.Class{
		ID:     node.Generate(),
		Name:   name,
		Status: classdomain.StatusStudying,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedMember(t *testing.T, db *gorm.DB, node *snowflake.Node, classID *snowflake.ID, className string, status studentdomain.AccountStatus, registered, attended int) *studentdomain.StudentAccount {
	t.Helper()
	a := &studentdomain.StudentAccount{
		ID:                 node.Generate(),
		Code:               "SV-" + node.Generate().String(),
		FullName:           "Member",
		ClassID:            classID,
		ClassName:          className,
		Status:             status,
		RegisteredSessions: registered,
		AttendedSessions:   attended,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestSnapshotConservation(t *testing.T) {
	db, svc, node := newTestService(t)
	cls := seedClass(t, db, node, "Movers 2B")

	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusTrial, 0, 1)
	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusActive, 48, 20)
	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusActive, 40, 46) // overage debt
	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusReserved, 30, 10)
	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusDropped, 12, 12)
	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusContractDebt, 24, 4)

	snap, err := svc.Snapshot(context.Background(), cls.ID)
	require.NoError(t, err)

	assert.Equal(t, 6, snap.Total)
	assert.Equal(t, 1, snap.Trial)
	assert.Equal(t, 1, snap.Active)
	assert.Equal(t, 2, snap.Debt, "overage and contract debt both bucket as debt")
	assert.Equal(t, 1, snap.Reserved)
	assert.Equal(t, 1, snap.Dropped)
	assert.Equal(t, snap.Total, snap.Trial+snap.Active+snap.Debt+snap.Reserved+snap.Dropped)

	// Remaining sums skip reserved/dropped accounts and negative balances:
	// 28 (active) + 20 (contract debt) only.
	assert.Equal(t, 48, snap.RemainingSessions)
	assert.Equal(t, int64(48)*studentdomain.SessionUnitPrice, snap.RemainingValue)
	assert.GreaterOrEqual(t, snap.RemainingSessions, 0)
}

func TestSnapshotLegacyNameFallback(t *testing.T) {
	db, svc, node := newTestService(t)
	cls := seedClass(t, db, node, "Starters 1A")

	seedMember(t, db, node, nil, "  starters 1a ", studentdomain.StatusActive, 24, 0)
	seedMember(t, db, node, nil, "Flyers 3C", studentdomain.StatusActive, 24, 0)

	snap, err := svc.Snapshot(context.Background(), cls.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Total)
	assert.Equal(t, 1, snap.NameMatched)
}

func TestSnapshotClassNotFound(t *testing.T) {
	_, svc, node := newTestService(t)
	_, err := svc.Snapshot(context.Background(), node.Generate())
	assert.ErrorIs(t, err, classdomain.ErrClassNotFound)
}

func TestSnapshotAllOrphansAndUnmapped(t *testing.T) {
	db, svc, node := newTestService(t)
	cls := seedClass(t, db, node, "Movers 2B")

	seedMember(t, db, node, &cls.ID, "", studentdomain.StatusActive, 48, 0)
	ghostClass := node.Generate()
	orphan := seedMember(t, db, node, &ghostClass, "", studentdomain.StatusActive, 48, 0)
	seedMember(t, db, node, nil, "No Such Class", studentdomain.StatusActive, 48, 0)

	agg, err := svc.SnapshotAll(context.Background())
	require.NoError(t, err)

	require.Len(t, agg.Snapshots, 1)
	assert.Equal(t, 1, agg.Snapshots[0].Total, "orphans never count toward a snapshot")

	require.Len(t, agg.Orphans, 1)
	assert.Equal(t, orphan.ID, agg.Orphans[0].StudentID)
	assert.Equal(t, ghostClass, agg.Orphans[0].ClassID)
	assert.Equal(t, 1, agg.Unmapped)
}
