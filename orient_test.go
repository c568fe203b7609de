package orient

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexark/orient/blobstore"
	"github.com/hexark/orient/crystalmap"
	"github.com/hexark/orient/lattice"
	"github.com/hexark/orient/phase"
	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/resource"
	"github.com/hexark/orient/snapshot"
)

func sampleMap(t *testing.T) *crystalmap.CrystalMap {
	t.Helper()

	l, err := lattice.Cubic(2.87)
	require.NoError(t, err)
	ferrite, err := phase.FromSpaceGroup("ferrite", 229, phase.WithLattice(l))
	require.NoError(t, err)

	pl := phase.NewList()
	_, err = pl.Add(ferrite)
	require.NoError(t, err)

	rot := quaternion.FromEuler([][3]float64{
		{0, 0, 0},
		{0.5, 0.3, 0.1},
		{1.2, 0.7, 2.1},
	})
	m, err := crystalmap.New(rot, []int{0, 0, phase.NotIndexedID}, pl,
		crystalmap.WithProp("ci", []float64{0.9, 0.8, 0.1}),
	)
	require.NoError(t, err)
	return m
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := sampleMap(t)

	require.NoError(t, Save(ctx, store, "scan.snap", m))

	got, err := Load(ctx, store, "scan.snap")
	require.NoError(t, err)
	assert.Equal(t, m.Len(), got.Len())
	assert.Equal(t, m.Rotations().Flat(), got.Rotations().Flat())
	assert.Equal(t, m.PhaseIDs(), got.PhaseIDs())
	assert.Equal(t, []string{"ferrite"}, got.Phases().Names())
}

func TestSaveLoadWithOptions(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := sampleMap(t)

	rc := resource.NewController(resource.Config{MaxWorkers: 2})
	require.NoError(t, Save(ctx, store, "scan.snap", m,
		WithCompression(snapshot.CompressionLZ4),
		WithResourceController(rc),
		WithLogger(NoopLogger()),
	))

	got, err := Load(ctx, store, "scan.snap",
		WithResourceController(rc),
		WithLogLevel(slog.LevelError),
	)
	require.NoError(t, err)
	assert.Equal(t, m.Rotations().Flat(), got.Rotations().Flat())
}

func TestLoadNotFound(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := Load(ctx, store, "absent.snap")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "junk.snap", []byte("not a snapshot")))

	_, err := Load(ctx, store, "junk.snap")
	var corrupt *ErrCorruptSnapshot
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, "junk.snap", corrupt.Name)
	assert.ErrorIs(t, err, snapshot.ErrBadMagic)
}
