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
	creditingservice "github.com/edupointlabs/edupoint/internal/crediting/service"
	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

func newTestService(t *testing.T) (*gorm.DB, contractdomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&contractdomain.Contract{},
		&studentdomain.StudentAccount{},
		&enrollmentdomain.EnrollmentRecord{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.Fixed(time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC))

	engine := creditingservice.NewEngine(creditingservice.EngineParam{
		DB:    db,
		Log:   log,
		Clock: clk,
		GenID: node,
	})
	svc := NewService(ServiceParam{
		DB:        db,
		Log:       log,
		Clock:     clk,
		GenID:     node,
		Crediting: engine,
	})
	return db, svc, node
}

func seedStudent(t *testing.T, db *gorm.DB, node *snowflake.Node) *studentdomain.StudentAccount {
	t.Helper()
	a := &studentdomain.StudentAccount{
		ID:       node.Generate(),
		Code:     "SV-" + node.Generate().String(),
		FullName: "An Nguyen",
		Status:   studentdomain.StatusTrial,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func courseItems(sessions int) []contractdomain.LineItem {
	return []contractdomain.LineItem{
		{Kind: contractdomain.ItemCourse, Name: "course bundle", Quantity: sessions, UnitPrice: 150_000, FinalPrice: int64(sessions) * 150_000},
	}
}

func registered(t *testing.T, db *gorm.DB, id snowflake.ID) int {
	t.Helper()
	var a studentdomain.StudentAccount
	require.NoError(t, db.First(&a, "id = ?", id).Error)
	return a.RegisteredSessions
}

func TestCreateValidation(t *testing.T) {
	_, svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Type:     contractdomain.TypeStudent,
		Category: contractdomain.CategoryNew,
	})
	assert.ErrorIs(t, err, contractdomain.ErrNoLineItems)

	_, err = svc.Create(context.Background(), contractdomain.CreateRequest{
		Type:     contractdomain.TypeStudent,
		Category: contractdomain.CategoryNew,
		Items:    courseItems(12),
	})
	assert.ErrorIs(t, err, contractdomain.ErrStudentRequired)
}

func TestCreateDraftDoesNotCredit(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	c, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-001",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(48),
	})
	require.NoError(t, err)
	assert.Equal(t, contractdomain.StatusDraft, c.Status)
	assert.Equal(t, int64(48*150_000), c.TotalAmount)
	assert.Zero(t, registered(t, db, student.ID))
}

func TestCreatePaidCreditsImmediately(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	c, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:       "HD-002",
		Type:       contractdomain.TypeStudent,
		Category:   contractdomain.CategoryNew,
		StudentID:  &student.ID,
		Items:      courseItems(48),
		Paid:       true,
		PaidAmount: 48 * 150_000,
	})
	require.NoError(t, err)
	assert.Equal(t, contractdomain.StatusPaid, c.Status)
	assert.Equal(t, 48, registered(t, db, student.ID))
}

func TestStatusTransitionCreditsOnce(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	c, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-003",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(48),
	})
	require.NoError(t, err)

	upd, err := svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, contractdomain.StatusPaid, upd.Status)
	assert.Equal(t, 48, registered(t, db, student.ID))

	// Paid -> Debt leaves the credited sessions alone.
	_, err = svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusDebt)
	require.NoError(t, err)
	assert.Equal(t, 48, registered(t, db, student.ID))

	var records int64
	require.NoError(t, db.Model(&enrollmentdomain.EnrollmentRecord{}).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestInvalidTransitionRejected(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	c, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-004",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(12),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusDebt)
	assert.ErrorIs(t, err, contractdomain.ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusCancelled)
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusPaid)
	assert.ErrorIs(t, err, contractdomain.ErrInvalidTransition)
	assert.Zero(t, registered(t, db, student.ID))
}

func TestNewThenRenewalAccumulates(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	_, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-005",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(48),
		Paid:      true,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-006",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryRenewal,
		StudentID: &student.ID,
		Items:     courseItems(24),
		Paid:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, 72, registered(t, db, student.ID))

	var a studentdomain.StudentAccount
	require.NoError(t, db.First(&a, "id = ?", student.ID).Error)
	assert.Equal(t, studentdomain.StatusActive, a.Status)
}

func TestCreditFailureRollsBackStatus(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	c, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-007",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(48),
	})
	require.NoError(t, err)

	// Break the enrollment ledger so the credit write fails mid-action.
	require.NoError(t, db.Migrator().DropTable(&enrollmentdomain.EnrollmentRecord{}))

	_, err = svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusPaid)
	require.Error(t, err)

	// The status write rolled back with the credit: the contract is still
	// Draft, the account untouched, and the whole action retryable.
	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, contractdomain.StatusDraft, got.Status)
	assert.Zero(t, registered(t, db, student.ID))

	require.NoError(t, db.AutoMigrate(&enrollmentdomain.EnrollmentRecord{}))

	upd, err := svc.UpdateStatus(context.Background(), c.ID, contractdomain.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, contractdomain.StatusPaid, upd.Status)
	assert.Equal(t, 48, registered(t, db, student.ID))
}

func TestCreditFailureRollsBackCreate(t *testing.T) {
	db, svc, node := newTestService(t)
	student := seedStudent(t, db, node)

	require.NoError(t, db.Migrator().DropTable(&enrollmentdomain.EnrollmentRecord{}))

	_, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-008",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(48),
		Paid:      true,
	})
	require.Error(t, err)

	// No half-created Paid contract survives, so a retry cannot duplicate.
	var contracts int64
	require.NoError(t, db.Model(&contractdomain.Contract{}).Count(&contracts).Error)
	assert.Zero(t, contracts)
	assert.Zero(t, registered(t, db, student.ID))

	require.NoError(t, db.AutoMigrate(&enrollmentdomain.EnrollmentRecord{}))

	c, err := svc.Create(context.Background(), contractdomain.CreateRequest{
		Code:      "HD-008",
		Type:      contractdomain.TypeStudent,
		Category:  contractdomain.CategoryNew,
		StudentID: &student.ID,
		Items:     courseItems(48),
		Paid:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, contractdomain.StatusPaid, c.Status)
	assert.Equal(t, 48, registered(t, db, student.ID))
}

func TestGetNotFound(t *testing.T) {
	_, svc, node := newTestService(t)
	_, err := svc.Get(context.Background(), node.Generate())
	assert.ErrorIs(t, err, contractdomain.ErrContractNotFound)
}
