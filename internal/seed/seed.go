// Package seed loads a small demo dataset for local development: a class,
// a couple of students, staff, salary rules and tier tables.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	staffdomain "github.com/edupointlabs/edupoint/internal/staff/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

func intPtr(v int) *int { return &v }

// EnsureDemoData is idempotent: it refuses to touch a database that
// already holds any class.
func EnsureDemoData(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&classdomain.Class{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()

		teacher := &staffdomain.Staff{
			ID: node.Generate(), Code: "GV001", Name: "Nguyen Thi Mai",
			Position: staffdomain.PositionTeacher, Active: true,
			CreatedAt: now, UpdatedAt: now,
		}
		assistant := &staffdomain.Staff{
			ID: node.Generate(), Code: "TG001", Name: "Tran Van Hung",
			Position: staffdomain.PositionAssistant, Active: true,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := tx.Create([]*staffdomain.Staff{teacher, assistant}).Error; err != nil {
			return err
		}

		teacherID := teacher.ID
		cls := &classdomain.Class{
			ID: node.Generate(), Name: "Starters 1A",
			Status: classdomain.StatusStudying, TeacherID: &teacherID,
			AvgStudents: 12, FeedbackVolume: 10, TotalSessions: 48,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := tx.Create(cls).Error; err != nil {
			return err
		}

		classID := cls.ID
		students := []*studentdomain.StudentAccount{
			{
				ID: node.Generate(), Code: "HS001", FullName: "Le Minh Anh",
				ClassID: &classID, Status: studentdomain.StatusTrial,
				CreatedAt: now, UpdatedAt: now,
			},
			{
				ID: node.Generate(), Code: "HS002", FullName: "Pham Gia Bao",
				ClassID: &classID, Status: studentdomain.StatusActive,
				RegisteredSessions: 48, AttendedSessions: 20,
				CreatedAt: now, UpdatedAt: now,
			},
		}
		if err := tx.Create(students).Error; err != nil {
			return err
		}

		rule := &ratedomain.SalaryRule{
			ID: node.Generate(), StaffID: teacher.ID, ClassID: cls.ID,
			WorkType: wsdomain.TypeMainTeaching,
			RateUnit: ratedomain.UnitShift, BaseRate: 250_000,
			FixedSalary: 5_000_000, Allowance: 500_000,
			EffectiveDate: now, CreatedAt: now,
		}
		if err := tx.Create(rule).Error; err != nil {
			return err
		}

		tiers := []ratedomain.RangeTier{
			{ID: node.Generate(), RangeType: ratedomain.RangeTeaching, MinCount: 1, MaxCount: intPtr(8), Amount: 180_000, CreatedAt: now},
			{ID: node.Generate(), RangeType: ratedomain.RangeTeaching, MinCount: 9, MaxCount: intPtr(14), Amount: 220_000, CreatedAt: now},
			{ID: node.Generate(), RangeType: ratedomain.RangeTeaching, MinCount: 15, Amount: 260_000, CreatedAt: now},
			{ID: node.Generate(), RangeType: ratedomain.RangeAssistantFeedback, MinCount: 1, MaxCount: intPtr(10), Amount: 80_000, CreatedAt: now},
			{ID: node.Generate(), RangeType: ratedomain.RangeAssistantFeedback, MinCount: 11, Amount: 110_000, CreatedAt: now},
		}
		return tx.Create(&tiers).Error
	})
}
