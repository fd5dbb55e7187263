package auth

import (
	"github.com/velavancrackers/pos/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(service.New),
)
