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

	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
)

func newTestService(t *testing.T) (*gorm.DB, enrollmentdomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentdomain.StudentAccount{}, &enrollmentdomain.EnrollmentRecord{}))

	node, err := snowflake.NewNode(8)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.Fixed(time.Date(2025, 10, 10, 10, 0, 0, 0, time.UTC)),
		GenID: node,
	})
	return db, svc, node
}

func TestAdjust(t *testing.T) {
	db, svc, node := newTestService(t)

	account := &studentdomain.StudentAccount{
		ID:                 node.Generate(),
		Code:               "SV-200",
		FullName:           "Huong Dang",
		Status:             studentdomain.StatusActive,
		RegisteredSessions: 48,
	}
	require.NoError(t, db.Create(account).Error)

	rec, err := svc.Adjust(context.Background(), enrollmentdomain.AdjustRequest{
		StudentID: account.ID,
		Sessions:  -2,
		CreatedBy: "admin01",
		Note:      "double-counted makeup class",
	})
	require.NoError(t, err)
	assert.Equal(t, enrollmentdomain.KindManualAdjust, rec.Kind)
	assert.Equal(t, -2, rec.Sessions)

	var got studentdomain.StudentAccount
	require.NoError(t, db.First(&got, "id = ?", account.ID).Error)
	assert.Equal(t, 46, got.RegisteredSessions)

	history, err := svc.History(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestAdjustValidation(t *testing.T) {
	_, svc, node := newTestService(t)

	_, err := svc.Adjust(context.Background(), enrollmentdomain.AdjustRequest{
		StudentID: node.Generate(),
		Sessions:  0,
	})
	assert.ErrorIs(t, err, enrollmentdomain.ErrZeroAdjustment)

	_, err = svc.Adjust(context.Background(), enrollmentdomain.AdjustRequest{
		StudentID: node.Generate(),
		Sessions:  4,
	})
	assert.ErrorIs(t, err, studentdomain.ErrStudentNotFound)
}
