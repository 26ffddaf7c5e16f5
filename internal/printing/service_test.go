package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/observability/metrics"
	"github.com/smallbiznis/recibo/internal/providers/printer"
	printermock "github.com/smallbiznis/recibo/internal/providers/printer/mock"
	"github.com/smallbiznis/recibo/internal/ratelimit"
)

func newTestService(t *testing.T, surface printer.Surface, limiter ratelimit.Limiter) (*Service, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, metrics.Config{ServiceName: "recibo", Environment: "test"})
	require.NoError(t, err)
	return New(Params{
		Log:     zap.NewNop(),
		Clock:   clock.NewFakeClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)),
		Surface: surface,
		Limiter: limiter,
		Metrics: m,
	}), reg
}

func dispatchCount(t *testing.T, reg *prometheus.Registry, surface, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "recibo_print_dispatch_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["surface"] == surface && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestDispatchSendsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := printermock.NewMockSurface(ctrl)
	surface.EXPECT().Name().Return("network").AnyTimes()
	surface.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job printer.Job) error {
		assert.Equal(t, "RECIBO-00000001", job.ReceiptNumber)
		assert.Equal(t, []byte("<html>"), job.Data)
		assert.Len(t, job.ID, 26)
		return nil
	})

	svc, reg := newTestService(t, surface, ratelimit.NewLocal(10, 10))
	res, err := svc.Dispatch(context.Background(), "RECIBO-00000001", "text/html", []byte("<html>"))
	require.NoError(t, err)
	assert.Equal(t, "network", res.Surface)
	assert.Len(t, res.JobID, 26)
	assert.Equal(t, 1.0, dispatchCount(t, reg, "network", metrics.ResultOK))
}

func TestDispatchUnavailableIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := printermock.NewMockSurface(ctrl)
	surface.EXPECT().Name().Return("none").AnyTimes()
	surface.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(printer.ErrSurfaceUnavailable).Times(1)

	svc, reg := newTestService(t, surface, nil)
	_, err := svc.Dispatch(context.Background(), "RECIBO-00000001", "text/html", []byte("x"))
	assert.ErrorIs(t, err, printer.ErrSurfaceUnavailable)
	assert.Equal(t, 1.0, dispatchCount(t, reg, "none", metrics.ResultUnavailable))
}

func TestDispatchFailureReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := printermock.NewMockSurface(ctrl)
	surface.EXPECT().Name().Return("spool").AnyTimes()
	surface.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc, reg := newTestService(t, surface, nil)
	_, err := svc.Dispatch(context.Background(), "RECIBO-00000001", "text/html", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, 1.0, dispatchCount(t, reg, "spool", metrics.ResultError))
}

func TestDispatchThrottled(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := printermock.NewMockSurface(ctrl)
	surface.EXPECT().Name().Return("network").AnyTimes()
	surface.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc, reg := newTestService(t, surface, ratelimit.NewLocal(0.001, 1))
	_, err := svc.Dispatch(context.Background(), "RECIBO-00000001", "text/html", []byte("x"))
	require.NoError(t, err)

	_, err = svc.Dispatch(context.Background(), "RECIBO-00000001", "text/html", []byte("x"))
	assert.ErrorIs(t, err, ErrThrottled)
	assert.Equal(t, 1.0, dispatchCount(t, reg, "network", metrics.ResultThrottled))
	count, err := testutil.GatherAndCount(reg, "recibo_print_dispatch_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
