package worksession

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/worksession/service"
)

var Module = fx.Module("worksession.service",
	fx.Provide(service.NewService),
)
