package receipttemplate

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/recibo/internal/receipttemplate/repository"
	"github.com/smallbiznis/recibo/internal/receipttemplate/service"
)

var Module = fx.Module("receipttemplate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
