package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/smallbiznis/recibo/internal/config"
)

type spoolSurface struct {
	dir string
}

// NewSpool drops each job into dir for an external print daemon to pick up.
func NewSpool(dir string) Surface {
	return &spoolSurface{dir: dir}
}

func (s *spoolSurface) Name() string { return config.PrinterSpool }

func (s *spoolSurface) Dispatch(ctx context.Context, job Job) error {
	if err := validate(job); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: spool dir %s: %v", ErrSurfaceUnavailable, s.dir, err)
	}

	name := SpoolFileName(job)
	tmp := filepath.Join(s.dir, "."+name+".tmp")
	if err := os.WriteFile(tmp, job.Data, 0o644); err != nil {
		return fmt.Errorf("printer: write spool file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("printer: publish spool file: %w", err)
	}
	return nil
}

// SpoolFileName is "<receipt-slug>-<job id>.<ext>".
func SpoolFileName(job Job) string {
	base := slug.Make(job.ReceiptNumber)
	if base == "" {
		base = "recibo"
	}
	return fmt.Sprintf("%s-%s.%s", base, strings.ToLower(job.ID), extensionFor(job.ContentType))
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return "pdf"
	case strings.HasPrefix(contentType, "text/html"):
		return "html"
	default:
		return "bin"
	}
}
