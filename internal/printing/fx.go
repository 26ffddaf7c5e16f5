package printing

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/recibo/internal/providers/printer"
	"github.com/smallbiznis/recibo/internal/ratelimit"
)

var Module = fx.Module("printing.service",
	printer.Module,
	ratelimit.Module,
	fx.Provide(New),
)
