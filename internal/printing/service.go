// Package printing hands rendered receipts to the configured print surface.
package printing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/observability/logger"
	"github.com/smallbiznis/recibo/internal/observability/metrics"
	"github.com/smallbiznis/recibo/internal/observability/tracing"
	"github.com/smallbiznis/recibo/internal/providers/printer"
	"github.com/smallbiznis/recibo/internal/ratelimit"
)

var ErrThrottled = errors.New("print_dispatch_throttled")

// Result identifies an accepted print job.
type Result struct {
	JobID   string `json:"job_id"`
	Surface string `json:"surface"`
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Surface printer.Surface
	Limiter ratelimit.Limiter
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	surface printer.Surface
	limiter ratelimit.Limiter
	metrics *metrics.Metrics
}

func New(p Params) *Service {
	return &Service{
		log:     p.Log.Named("printing.service"),
		clock:   p.Clock,
		surface: p.Surface,
		limiter: p.Limiter,
		metrics: p.Metrics,
	}
}

// Dispatch sends one rendered document. Failures are returned to the caller
// as is; there is no retry or queue.
func (s *Service) Dispatch(ctx context.Context, receiptNumber, contentType string, data []byte) (Result, error) {
	surface := s.surface.Name()
	ctx, span := tracing.Start(ctx, "printing.dispatch",
		attribute.String("print.surface", surface),
		attribute.String("receipt.number", receiptNumber),
	)
	var err error
	defer func() { tracing.End(span, err) }()

	log := logger.WithContext(ctx, s.log).With(
		zap.String("surface", surface),
		zap.String("receipt_number", receiptNumber),
	)

	if s.limiter != nil {
		allowed, limitErr := s.limiter.Allow(ctx, surface)
		if limitErr != nil {
			log.Warn("print limiter failed", zap.Error(limitErr))
		}
		if limitErr == nil && !allowed {
			err = ErrThrottled
			s.metrics.RecordDispatch(surface, metrics.ResultThrottled)
			return Result{}, err
		}
	}

	job := printer.NewJob(receiptNumber, contentType, data, s.clock.Now())
	span.SetAttributes(attribute.String("print.job_id", job.ID))

	if err = s.surface.Dispatch(ctx, job); err != nil {
		result := metrics.ResultError
		if errors.Is(err, printer.ErrSurfaceUnavailable) {
			result = metrics.ResultUnavailable
		}
		s.metrics.RecordDispatch(surface, result)
		log.Warn("print dispatch failed", zap.String("job_id", job.ID), zap.Error(err))
		return Result{}, err
	}

	s.metrics.RecordDispatch(surface, metrics.ResultOK)
	log.Info("print job dispatched", zap.String("job_id", job.ID), zap.Int("bytes", len(data)))
	return Result{JobID: job.ID, Surface: surface}, nil
}
