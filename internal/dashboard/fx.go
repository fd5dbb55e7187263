package dashboard

import (
	"github.com/velavancrackers/pos/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard",
	fx.Provide(service.New),
)
