package pdf

import (
	"context"

	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/document"
)

// Provider projects an assembled document to PDF bytes.
type Provider interface {
	RenderReceipt(ctx context.Context, doc document.Document, layout config.Layout) ([]byte, error)
}
