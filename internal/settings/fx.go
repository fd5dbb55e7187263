package settings

import (
	"github.com/velavancrackers/pos/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings",
	fx.Provide(service.New),
)
