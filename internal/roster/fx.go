package roster

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/roster/service"
)

var Module = fx.Module("roster.service",
	fx.Provide(service.NewService),
)
