package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/clock"

	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
	creditingdomain "github.com/edupointlabs/edupoint/internal/crediting/domain"
	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

func newTestEngine(t *testing.T) (*gorm.DB, creditingdomain.Engine, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&contractdomain.Contract{},
		&studentdomain.StudentAccount{},
		&enrollmentdomain.EnrollmentRecord{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	engine := NewEngine(EngineParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.Fixed(time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)),
		GenID: node,
	})
	return db, engine, node
}

func seedAccount(t *testing.T, db *gorm.DB, node *snowflake.Node, status studentdomain.AccountStatus, registered, attended int) *studentdomain.StudentAccount {
	t.Helper()
	a := &studentdomain.StudentAccount{
		ID:                 node.Generate(),
		Code:               "SV-" + node.Generate().String(),
		FullName:           "Test Student",
		Status:             status,
		RegisteredSessions: registered,
		AttendedSessions:   attended,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func paidContract(t *testing.T, node *snowflake.Node, studentID snowflake.ID, category contractdomain.ContractCategory, sessions int) *contractdomain.Contract {
	t.Helper()
	c := &contractdomain.Contract{
		ID:        node.Generate(),
		Code:      "HD-" + node.Generate().String(),
		Type:      contractdomain.TypeStudent,
		Category:  category,
		StudentID: &studentID,
		Status:    contractdomain.StatusPaid,
	}
	require.NoError(t, c.SetLineItems([]contractdomain.LineItem{
		{Kind: contractdomain.ItemCourse, Name: "course", Quantity: sessions, UnitPrice: 150_000, FinalPrice: int64(sessions) * 150_000},
	}))
	c.TotalAmount = int64(sessions) * 150_000
	return c
}

func reload(t *testing.T, db *gorm.DB, id snowflake.ID) *studentdomain.StudentAccount {
	t.Helper()
	var a studentdomain.StudentAccount
	require.NoError(t, db.First(&a, "id = ?", id).Error)
	return &a
}

func TestFirstGrantSetsCounter(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusTrial, 0, 2)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryNew, 48)

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultCredited, res)

	got := reload(t, db, acc.ID)
	assert.Equal(t, 48, got.RegisteredSessions)
	assert.Equal(t, 2, got.AttendedSessions, "attendance is untouched by crediting")
	assert.Equal(t, studentdomain.StatusActive, got.Status, "new contract promotes trial to active")
}

func TestNewContractTopsUpNonEmptyAccount(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusActive, 20, 5)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryNew, 24)

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultCredited, res)

	got := reload(t, db, acc.ID)
	assert.Equal(t, 44, got.RegisteredSessions)
	assert.Equal(t, studentdomain.StatusActive, got.Status, "an active account stays active")
}

func TestRenewalAccumulates(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusActive, 48, 30)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryRenewal, 24)

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultCredited, res)

	got := reload(t, db, acc.ID)
	assert.Equal(t, 72, got.RegisteredSessions)
	assert.Equal(t, studentdomain.StatusActive, got.Status)
}

func TestRenewalDoesNotPromoteTrial(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusTrial, 0, 0)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryRenewal, 12)

	_, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)

	got := reload(t, db, acc.ID)
	assert.Equal(t, 12, got.RegisteredSessions)
	assert.Equal(t, studentdomain.StatusTrial, got.Status)
}

func TestRedeliveredEventIsNoOp(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusActive, 0, 0)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryNew, 48)

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultCredited, res)

	// Same contract delivered again with an unchanged status: the
	// precondition fails and nothing moves.
	prior := *c
	res, err = engine.ApplyPaidTransition(context.Background(), nil, &prior, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultSkippedNotPaid, res)

	got := reload(t, db, acc.ID)
	assert.Equal(t, 48, got.RegisteredSessions)

	var records int64
	require.NoError(t, db.Model(&enrollmentdomain.EnrollmentRecord{}).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestNonPaidStatusSkipped(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusActive, 0, 0)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryNew, 48)
	c.Status = contractdomain.StatusDraft

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultSkippedNotPaid, res)

	got := reload(t, db, acc.ID)
	assert.Zero(t, got.RegisteredSessions)
}

func TestMaterialOnlyContractSkipped(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusActive, 10, 0)

	c := &contractdomain.Contract{
		ID:        node.Generate(),
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &acc.ID,
		Status:    contractdomain.StatusPaid,
	}
	require.NoError(t, c.SetLineItems([]contractdomain.LineItem{
		{Kind: contractdomain.ItemProduct, Name: "Textbook", Quantity: 3, UnitPrice: 120_000, FinalPrice: 360_000},
	}))

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultSkippedNoCourses, res)

	got := reload(t, db, acc.ID)
	assert.Equal(t, 10, got.RegisteredSessions)
}

func TestUnknownStudentSkipped(t *testing.T) {
	db, engine, node := newTestEngine(t)
	ghost := node.Generate()
	c := paidContract(t, node, ghost, contractdomain.CategoryNew, 48)

	res, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, creditingdomain.ResultSkippedNoAccount, res)

	var records int64
	require.NoError(t, db.Model(&enrollmentdomain.EnrollmentRecord{}).Count(&records).Error)
	assert.Zero(t, records, "no phantom enrollment record for an unknown student")
}

func TestEnrollmentRecordAppended(t *testing.T) {
	db, engine, node := newTestEngine(t)
	acc := seedAccount(t, db, node, studentdomain.StatusActive, 48, 0)
	c := paidContract(t, node, acc.ID, contractdomain.CategoryRenewal, 24)

	_, err := engine.ApplyPaidTransition(context.Background(), nil, nil, c)
	require.NoError(t, err)

	var rec enrollmentdomain.EnrollmentRecord
	require.NoError(t, db.First(&rec, "student_id = ?", acc.ID).Error)
	assert.Equal(t, enrollmentdomain.KindRenewal, rec.Kind)
	assert.Equal(t, 24, rec.Sessions)
	assert.Equal(t, c.TotalAmount, rec.Amount)
	require.NotNil(t, rec.ContractID)
	assert.Equal(t, c.ID, *rec.ContractID)
}
