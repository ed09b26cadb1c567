package contract

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/contract/service"
)

var Module = fx.Module("contract.service",
	fx.Provide(service.NewService),
)
