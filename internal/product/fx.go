package product

import (
	"github.com/velavancrackers/pos/internal/product/repository"
	"github.com/velavancrackers/pos/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
