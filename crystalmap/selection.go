package crystalmap

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hexark/orient/phase"
)

// withBitmap returns a view over the same columns restricted to the
// intersection of the current selection and the given bitmap.
func (m *CrystalMap) withBitmap(b *roaring.Bitmap) *CrystalMap {
	sel := roaring.And(m.sel, b)
	return &CrystalMap{cols: m.cols, sel: sel}
}

// phaseBitmap collects the flat indices carrying the given phase ID.
func (m *CrystalMap) phaseBitmap(id int) *roaring.Bitmap {
	b := roaring.New()
	for i, pid := range m.cols.phaseID {
		if pid == id {
			b.Add(uint32(i))
		}
	}
	return b
}

// ByPhase returns the view of points belonging to any of the named
// phases.
func (m *CrystalMap) ByPhase(names ...string) (*CrystalMap, error) {
	b := roaring.New()
	for _, name := range names {
		id, _, err := m.cols.phases.ByName(name)
		if err != nil {
			return nil, err
		}
		b.Or(m.phaseBitmap(id))
	}
	return m.withBitmap(b), nil
}

// Indexed returns the view of points with a real phase assignment.
func (m *CrystalMap) Indexed() *CrystalMap {
	b := roaring.New()
	for i, pid := range m.cols.phaseID {
		if pid != phase.NotIndexedID {
			b.Add(uint32(i))
		}
	}
	return m.withBitmap(b)
}

// NotIndexed returns the view of points without a phase assignment.
func (m *CrystalMap) NotIndexed() *CrystalMap {
	return m.withBitmap(m.phaseBitmap(phase.NotIndexedID))
}

// Slice returns the view of the flat index range [start, end).
func (m *CrystalMap) Slice(start, end int) (*CrystalMap, error) {
	if start < 0 || end > m.FullLen() || start > end {
		return nil, fmt.Errorf("slice [%d, %d) out of range for %d points", start, end, m.FullLen())
	}
	b := roaring.New()
	b.AddRange(uint64(start), uint64(end))
	return m.withBitmap(b), nil
}

// Mask returns the view of points where the mask is true. The mask
// addresses the full map, not the current selection.
func (m *CrystalMap) Mask(mask []bool) (*CrystalMap, error) {
	if len(mask) != m.FullLen() {
		return nil, &ErrColumnLength{Column: "mask", Got: len(mask), Want: m.FullLen()}
	}
	b := roaring.New()
	for i, ok := range mask {
		if ok {
			b.Add(uint32(i))
		}
	}
	return m.withBitmap(b), nil
}
