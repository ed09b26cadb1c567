package rateconfig

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/rateconfig/service"
)

var Module = fx.Module("rateconfig.service",
	fx.Provide(service.NewService),
)
