package receipt

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/recibo/internal/receipt/repository"
	"github.com/smallbiznis/recibo/internal/receipt/service"
)

var Module = fx.Module("receipt.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
