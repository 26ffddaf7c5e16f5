package rendering

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/recibo/internal/providers/pdf"
	"github.com/smallbiznis/recibo/internal/render"
)

var Module = fx.Module("rendering.service",
	pdf.Module,
	fx.Provide(render.NewHTMLRenderer),
	fx.Provide(New),
)
