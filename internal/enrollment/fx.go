package enrollment

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/enrollment/service"
)

var Module = fx.Module("enrollment.service",
	fx.Provide(service.NewService),
)
