package orient

import (
	"context"

	"github.com/hexark/orient/blobstore"
	"github.com/hexark/orient/crystalmap"
	"github.com/hexark/orient/snapshot"
)

// Save writes m as a compressed snapshot under name. An existing
// snapshot with the same name is replaced. Saving a selection view
// materializes it, only the selected points are written.
func Save(ctx context.Context, store blobstore.BlobStore, name string, m *crystalmap.CrystalMap, optFns ...Option) error {
	o := applyOptions(optFns)

	err := snapshot.Write(ctx, store, name, m, snapshot.Options{
		Codec:       o.codec,
		Compression: o.compression,
		Controller:  o.controller,
		Logger:      o.logger.Logger,
	})
	err = translateError(name, err)
	o.logger.LogSave(ctx, name, m.Len(), err)
	return err
}

// Load reads the snapshot stored under name and rebuilds the crystal
// map, its phases and their lattices. Returns ErrNotFound when no such
// snapshot exists and ErrCorruptSnapshot when the bytes cannot be
// decoded.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*crystalmap.CrystalMap, error) {
	o := applyOptions(optFns)

	m, err := snapshot.Read(ctx, store, name, snapshot.ReadOptions{
		Controller: o.controller,
		Logger:     o.logger.Logger,
	})
	err = translateError(name, err)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	o.logger.LogLoad(ctx, name, m.Len(), nil)
	return m, nil
}
