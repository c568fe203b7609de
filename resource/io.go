package resource

import (
	"context"
	"io"
)

// ioChunkSize is the largest unit charged to the limiter at once, so
// big buffers drain at the configured rate instead of in one charge.
const ioChunkSize = 64 << 10

// LimitedWriter throttles writes through the controller's IO budget.
type LimitedWriter struct {
	ctx context.Context
	w   io.Writer
	rc  *Controller
}

// NewLimitedWriter wraps w with the controller's IO rate limit.
func NewLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *LimitedWriter {
	return &LimitedWriter{ctx: ctx, w: w, rc: rc}
}

func (w *LimitedWriter) Write(p []byte) (int, error) {
	var written int
	for written < len(p) {
		n := min(len(p)-written, ioChunkSize)
		if err := w.rc.AcquireIO(w.ctx, n); err != nil {
			return written, err
		}
		m, err := w.w.Write(p[written : written+n])
		written += m
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// LimitedReader throttles reads through the controller's IO budget.
// The wait is charged for the full buffer before reading, so short
// reads slightly over-charge.
type LimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// NewLimitedReader wraps r with the controller's IO rate limit.
func NewLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *LimitedReader {
	return &LimitedReader{ctx: ctx, r: r, rc: rc}
}

func (r *LimitedReader) Read(p []byte) (int, error) {
	if len(p) > ioChunkSize {
		p = p[:ioChunkSize]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
