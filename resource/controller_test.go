package resource

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTracking(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	ctx := context.Background()

	require.NoError(t, c.AcquireMemory(ctx, 60))
	assert.Equal(t, int64(60), c.MemoryUsage())

	// Over the limit blocks until released or the context ends.
	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireMemory(short, 60))

	c.ReleaseMemory(60)
	assert.Equal(t, int64(0), c.MemoryUsage())
	require.NoError(t, c.AcquireMemory(ctx, 100))
	c.ReleaseMemory(100)
}

func TestWorkerSlots(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	ctx := context.Background()

	require.NoError(t, c.AcquireWorker(ctx))
	require.NoError(t, c.AcquireWorker(ctx))
	assert.False(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	c.ReleaseWorker()
}

func TestNilControllerIsUnlimited(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	assert.NoError(t, c.AcquireMemory(ctx, 1<<40))
	assert.NoError(t, c.AcquireWorker(ctx))
	assert.True(t, c.TryAcquireWorker())
	assert.NoError(t, c.AcquireIO(ctx, 1<<30))
	c.ReleaseMemory(1)
	c.ReleaseWorker()
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestLimitedWriter(t *testing.T) {
	// A generous budget so the test doesn't wait.
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	var buf bytes.Buffer

	w := NewLimitedWriter(context.Background(), &buf, c)
	n, err := w.Write([]byte("throttled"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "throttled", buf.String())
}

func TestWriteLargerThanBurst(t *testing.T) {
	// The limiter's burst equals the byte rate, so a payload above the
	// rate must drain in installments rather than fail outright.
	c := NewController(Config{IOLimitBytesPerSec: 4 << 20})
	var buf bytes.Buffer

	payload := make([]byte, 5<<20)
	w := NewLimitedWriter(context.Background(), &buf, c)
	n, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, len(payload), buf.Len())
}

func TestAcquireIOAboveBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	require.NoError(t, c.AcquireIO(context.Background(), (1<<20)+512))
}

func TestLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	r := NewLimitedReader(context.Background(), bytes.NewReader([]byte("data")), c)

	p := make([]byte, 4)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
