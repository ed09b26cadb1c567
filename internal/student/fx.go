package student

import (
	"go.uber.org/fx"

	"github.com/edupointlabs/edupoint/internal/student/service"
)

var Module = fx.Module("student.service",
	fx.Provide(service.NewService),
)
