// Package migration brings the schema up to date. Postgres goes through
// versioned SQL migrations under an advisory lock; the sqlite development
// driver auto-migrates the gorm models instead.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/config"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	staffdomain "github.com/edupointlabs/edupoint/internal/staff/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

func RunMigrations(cfg *config.Config, conn *gorm.DB) error {
	if cfg.DBDriver != "postgres" {
		return autoMigrate(conn)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	unlock, err := acquireAdvisoryLock(ctx, sqlDB)
	if err != nil {
		return err
	}
	defer func() {
		_ = unlock(context.Background())
	}()

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func autoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&contractdomain.Contract{},
		&studentdomain.StudentAccount{},
		&classdomain.Class{},
		&staffdomain.Staff{},
		&wsdomain.WorkSession{},
		&ratedomain.SalaryRule{},
		&ratedomain.RangeTier{},
		&enrollmentdomain.EnrollmentRecord{},
	)
}
