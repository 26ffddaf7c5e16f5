package printer

import "go.uber.org/fx"

var Module = fx.Module("providers.printer",
	fx.Provide(NewFromConfig),
)
