package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/smallbiznis/recibo/internal/config"
)

const defaultDialTimeout = 5 * time.Second

type networkSurface struct {
	address string
	timeout time.Duration
}

// NewNetwork writes raw job bytes over TCP, e.g. to a JetDirect port 9100.
func NewNetwork(address string, timeout time.Duration) Surface {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return &networkSurface{address: address, timeout: timeout}
}

func (s *networkSurface) Name() string { return config.PrinterNetwork }

func (s *networkSurface) Dispatch(ctx context.Context, job Job) error {
	if err := validate(job); err != nil {
		return err
	}

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.address)
	if err != nil {
		return fmt.Errorf("%w: connect %s: %v", ErrSurfaceUnavailable, s.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(job.Data); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: write %s timed out", ErrSurfaceUnavailable, s.address)
		}
		return fmt.Errorf("printer: write to %s: %w", s.address, err)
	}
	return nil
}
