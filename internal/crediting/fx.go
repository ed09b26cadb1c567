package crediting

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/crediting/service"
)

var Module = fx.Module("crediting.engine",
	fx.Provide(service.NewEngine),
)
