// Package printer sends rendered receipts to a physical or spooled print
// surface.
package printer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/smallbiznis/recibo/internal/config"
)

var (
	ErrSurfaceUnavailable = errors.New("print_surface_unavailable")
	ErrEmptyJob           = errors.New("empty_print_job")
)

// Job is one rendered document handed to a surface.
type Job struct {
	ID            string
	ReceiptNumber string
	ContentType   string
	Data          []byte
	CreatedAt     time.Time
}

// NewJob stamps a job with a fresh ULID.
func NewJob(receiptNumber, contentType string, data []byte, now time.Time) Job {
	return Job{
		ID:            ulid.Make().String(),
		ReceiptNumber: receiptNumber,
		ContentType:   contentType,
		Data:          data,
		CreatedAt:     now,
	}
}

//go:generate mockgen -destination=mock/surface.go -package=mock github.com/smallbiznis/recibo/internal/providers/printer Surface

// Surface accepts print jobs. A failed dispatch is reported, never retried.
type Surface interface {
	Name() string
	Dispatch(ctx context.Context, job Job) error
}

// NewFromConfig builds the configured surface.
//
//	type: "network", "spool", or "none"
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
//	spool_dir: directory receiving one file per job
func NewFromConfig(cfg config.Config) (Surface, error) {
	pc := cfg.Printer
	switch pc.Type {
	case config.PrinterNetwork:
		if pc.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetwork(pc.Address, pc.Timeout), nil
	case config.PrinterSpool:
		if pc.SpoolDir == "" {
			return nil, fmt.Errorf("printer: spool dir is required for spool printer type")
		}
		return NewSpool(pc.SpoolDir), nil
	case config.PrinterNone, "":
		return NewNone(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use network, spool, or none)", pc.Type)
	}
}

func validate(job Job) error {
	if len(job.Data) == 0 {
		return ErrEmptyJob
	}
	return nil
}

type noneSurface struct{}

// NewNone returns a surface for environments without a printer.
func NewNone() Surface {
	return noneSurface{}
}

func (noneSurface) Name() string { return config.PrinterNone }

func (noneSurface) Dispatch(context.Context, Job) error {
	return ErrSurfaceUnavailable
}
