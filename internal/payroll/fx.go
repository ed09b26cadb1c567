package payroll

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/payroll/service"
)

var Module = fx.Module("payroll.service",
	fx.Provide(service.NewService),
)
