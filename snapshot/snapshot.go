package snapshot

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hexark/orient/blobstore"
	"github.com/hexark/orient/codec"
	"github.com/hexark/orient/crystalmap"
	"github.com/hexark/orient/lattice"
	"github.com/hexark/orient/phase"
	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/resource"
)

// Options configures snapshot writing.
type Options struct {
	// Codec encodes the meta section. Defaults to codec.Default.
	Codec codec.Codec
	// Compression applies per section. Defaults to CompressionNone.
	Compression Compression
	// Controller bounds workers and IO. Nil means unlimited.
	Controller *resource.Controller
	// Logger receives snapshot progress. Nil discards.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// ReadOptions configures snapshot reading.
type ReadOptions struct {
	Controller *resource.Controller
	Logger     *slog.Logger
}

// Write persists the selected points of a crystal map under name.
// Writing a view materializes the selection.
func Write(ctx context.Context, store blobstore.BlobStore, name string, m *crystalmap.CrystalMap, opts Options) error {
	opts.defaults()

	// A zero-point snapshot could never be loaded again, since maps
	// refuse to be built without points.
	if m.Len() == 0 {
		return crystalmap.ErrEmpty
	}

	// The header records the codec by name; an unregistered codec would
	// produce bytes no reader can resolve.
	if _, ok := codec.ByName(opts.Codec.Name()); !ok {
		return &ErrUnknownCodec{Name: opts.Codec.Name()}
	}

	meta, err := buildMeta(m)
	if err != nil {
		return err
	}
	metaBytes, err := opts.Codec.Marshal(meta)
	if err != nil {
		return err
	}

	// Ordered section list; the meta section always comes first so
	// readers can validate column lengths against it.
	names := []string{sectionMeta, sectionRotations, sectionPhaseIDs}
	raw := map[string][]byte{
		sectionMeta:      metaBytes,
		sectionRotations: encodeFloats(m.Rotations().Flat()),
		sectionPhaseIDs:  encodeInts(m.PhaseIDs()),
	}
	if meta.HasCoords {
		names = append(names, sectionX, sectionY)
		raw[sectionX] = encodeFloats(m.X())
		raw[sectionY] = encodeFloats(m.Y())
	}
	for _, prop := range meta.Props {
		values, err := m.Prop(prop)
		if err != nil {
			return err
		}
		name := propSection + prop
		names = append(names, name)
		raw[name] = encodeFloats(values)
	}

	// Compress sections in parallel under the worker budget. Results
	// land in per-section slots, so no locking is needed.
	blocks := make([][]byte, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, section := range names {
		g.Go(func() error {
			if err := opts.Controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer opts.Controller.ReleaseWorker()

			block, err := compressBlock(raw[section], opts.Compression)
			if err != nil {
				return err
			}
			blocks[i] = block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeHeader(&buf, header{
		version:     formatVersion,
		compression: opts.Compression,
		codecName:   opts.Codec.Name(),
	}); err != nil {
		return err
	}
	for i, section := range names {
		if err := writeSection(&buf, section, blocks[i]); err != nil {
			return err
		}
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	limited := resource.NewLimitedWriter(ctx, w, opts.Controller)
	if _, err := limited.Write(buf.Bytes()); err != nil {
		w.Close()
		return err
	}
	if err := w.Sync(); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	opts.Logger.InfoContext(ctx, "snapshot written",
		"name", name,
		"points", meta.Points,
		"bytes", buf.Len(),
		"compression", opts.Compression.String(),
	)
	return nil
}

// Read loads a snapshot into a fresh crystal map.
func Read(ctx context.Context, store blobstore.BlobStore, name string, opts ReadOptions) (*crystalmap.CrystalMap, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(resource.NewLimitedReader(ctx, rc, opts.Controller))
	if err != nil {
		return nil, err
	}

	h, offset, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	c, ok := codec.ByName(h.codecName)
	if !ok {
		return nil, &ErrUnknownCodec{Name: h.codecName}
	}

	sections, err := parseSections(data[offset:])
	if err != nil {
		return nil, err
	}
	metaBlock, ok := sections[sectionMeta]
	if !ok {
		return nil, &ErrCorrupt{Section: sectionMeta, Reason: "section missing"}
	}
	metaBytes, err := decompressBlock(sectionMeta, metaBlock, h.compression)
	if err != nil {
		return nil, err
	}
	var meta metaRecord
	if err := c.Unmarshal(metaBytes, &meta); err != nil {
		return nil, &ErrCorrupt{Section: sectionMeta, Reason: err.Error()}
	}

	// Decompress the numeric columns in parallel, one result slot per
	// section.
	type namedBlock struct {
		name  string
		block []byte
	}
	var work []namedBlock
	for section, block := range sections {
		if section != sectionMeta {
			work = append(work, namedBlock{name: section, block: block})
		}
	}
	results := make([][]byte, len(work))
	g, gctx := errgroup.WithContext(ctx)
	for i, nb := range work {
		g.Go(func() error {
			if err := opts.Controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer opts.Controller.ReleaseWorker()

			out, err := decompressBlock(nb.name, nb.block, h.compression)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	columns := make(map[string][]byte, len(work))
	for i, nb := range work {
		columns[nb.name] = results[i]
	}

	m, err := assemble(meta, columns)
	if err != nil {
		return nil, err
	}
	opts.Logger.InfoContext(ctx, "snapshot loaded", "name", name, "points", meta.Points)
	return m, nil
}

func buildMeta(m *crystalmap.CrystalMap) (metaRecord, error) {
	meta := metaRecord{
		Points:    m.Len(),
		HasCoords: m.X() != nil,
	}

	pl := m.Phases()
	for _, id := range pl.IDs() {
		p, err := pl.ByID(id)
		if err != nil {
			return metaRecord{}, err
		}
		rec := phaseRecord{
			ID:         id,
			Name:       p.Name(),
			PointGroup: p.PointGroup().Name(),
			SpaceGroup: p.SpaceGroup(),
			Color:      p.Color(),
		}
		if l := p.Lattice(); l != nil {
			a, b, c := l.ABC()
			alpha, beta, gamma := l.Angles()
			rec.Lattice = &latticeRecord{
				A: a, B: b, C: c,
				Alpha: alpha, Beta: beta, Gamma: gamma,
			}
		}
		meta.Phases = append(meta.Phases, rec)
	}

	if s, err := m.Shape(); err == nil && m.Len() == m.FullLen() {
		meta.Shape = &shapeRecord{Rows: s.Rows, Cols: s.Cols, StepY: s.StepY, StepX: s.StepX}
	}

	meta.Props = m.PropNames()
	sort.Strings(meta.Props)
	return meta, nil
}

func assemble(meta metaRecord, columns map[string][]byte) (*crystalmap.CrystalMap, error) {
	rotBytes, ok := columns[sectionRotations]
	if !ok {
		return nil, &ErrCorrupt{Section: sectionRotations, Reason: "section missing"}
	}
	flat, err := decodeFloats(sectionRotations, rotBytes, 4*meta.Points)
	if err != nil {
		return nil, err
	}
	rot, err := quaternion.FromFlat(flat)
	if err != nil {
		return nil, &ErrCorrupt{Section: sectionRotations, Reason: err.Error()}
	}

	idBytes, ok := columns[sectionPhaseIDs]
	if !ok {
		return nil, &ErrCorrupt{Section: sectionPhaseIDs, Reason: "section missing"}
	}
	ids, err := decodeInts(sectionPhaseIDs, idBytes, meta.Points)
	if err != nil {
		return nil, err
	}

	pl := phase.NewList()
	for _, rec := range meta.Phases {
		p, err := rebuildPhase(rec)
		if err != nil {
			return nil, err
		}
		if err := pl.Set(rec.ID, p); err != nil {
			return nil, &ErrCorrupt{Section: sectionMeta, Reason: err.Error()}
		}
	}

	var copts []crystalmap.Option
	if meta.HasCoords {
		x, err := decodeFloats(sectionX, columns[sectionX], meta.Points)
		if err != nil {
			return nil, err
		}
		y, err := decodeFloats(sectionY, columns[sectionY], meta.Points)
		if err != nil {
			return nil, err
		}
		copts = append(copts, crystalmap.WithCoordinates(x, y))
	}
	if meta.Shape != nil {
		copts = append(copts, crystalmap.WithShape(crystalmap.Shape{
			Rows: meta.Shape.Rows, Cols: meta.Shape.Cols,
			StepY: meta.Shape.StepY, StepX: meta.Shape.StepX,
		}))
	}
	for _, prop := range meta.Props {
		section := propSection + prop
		values, err := decodeFloats(section, columns[section], meta.Points)
		if err != nil {
			return nil, err
		}
		copts = append(copts, crystalmap.WithProp(prop, values))
	}

	return crystalmap.New(rot, ids, pl, copts...)
}

func rebuildPhase(rec phaseRecord) (*phase.Phase, error) {
	var popts []phase.Option
	if rec.Color != "" {
		popts = append(popts, phase.WithColor(rec.Color))
	}
	if rec.Lattice != nil {
		l, err := lattice.New(rec.Lattice.A, rec.Lattice.B, rec.Lattice.C,
			rec.Lattice.Alpha, rec.Lattice.Beta, rec.Lattice.Gamma)
		if err != nil {
			return nil, &ErrCorrupt{Section: sectionMeta, Reason: err.Error()}
		}
		popts = append(popts, phase.WithLattice(l))
	}
	if rec.SpaceGroup != 0 {
		return phase.FromSpaceGroup(rec.Name, rec.SpaceGroup, popts...)
	}
	return phase.New(rec.Name, rec.PointGroup, popts...)
}
