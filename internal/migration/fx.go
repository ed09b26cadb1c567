package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/edupointlabs/edupoint/internal/config"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(cfg *config.Config, conn *gorm.DB) error {
		return RunMigrations(cfg, conn)
	}),
)
