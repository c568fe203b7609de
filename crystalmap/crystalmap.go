package crystalmap

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hexark/orient/orientation"
	"github.com/hexark/orient/phase"
	"github.com/hexark/orient/quaternion"
)

// Shape describes the 2D scan grid behind the flat point columns.
type Shape struct {
	Rows, Cols   int
	StepY, StepX float64
}

// columns is the shared storage behind a map and all of its views.
type columns struct {
	rot     *quaternion.Rotation
	phaseID []int
	x, y    []float64
	props   map[string][]float64
	phases  *phase.PhaseList
	shape   *Shape
}

// CrystalMap is a selection over per-point scan columns. The root map
// selects every point; views narrow the selection.
type CrystalMap struct {
	cols *columns
	sel  *roaring.Bitmap
}

// Option configures a new CrystalMap.
type Option func(*columns)

// WithCoordinates attaches per-point x and y scan coordinates.
func WithCoordinates(x, y []float64) Option {
	return func(c *columns) { c.x, c.y = x, y }
}

// WithShape records the 2D scan grid dimensions and step sizes.
func WithShape(s Shape) Option {
	return func(c *columns) { c.shape = &s }
}

// WithProp attaches a named property column.
func WithProp(name string, values []float64) Option {
	return func(c *columns) { c.props[name] = values }
}

// New builds a crystal map from rotations, per-point phase IDs and a
// phase list. Every column must match the rotation count, and every
// phase ID must resolve in the list; the reserved not-indexed ID is
// always allowed.
func New(rot *quaternion.Rotation, phaseID []int, phases *phase.PhaseList, opts ...Option) (*CrystalMap, error) {
	n := rot.Len()
	if n == 0 {
		return nil, ErrEmpty
	}
	if phases == nil {
		phases = phase.NewList()
	}

	cols := &columns{
		rot:     rot.Clone(),
		phaseID: append([]int(nil), phaseID...),
		props:   make(map[string][]float64),
		phases:  phases,
	}
	for _, opt := range opts {
		opt(cols)
	}

	if len(cols.phaseID) != n {
		return nil, &ErrColumnLength{Column: "phase_id", Got: len(cols.phaseID), Want: n}
	}
	if cols.x != nil && len(cols.x) != n {
		return nil, &ErrColumnLength{Column: "x", Got: len(cols.x), Want: n}
	}
	if cols.y != nil && len(cols.y) != n {
		return nil, &ErrColumnLength{Column: "y", Got: len(cols.y), Want: n}
	}
	for name, v := range cols.props {
		if len(v) != n {
			return nil, &ErrColumnLength{Column: name, Got: len(v), Want: n}
		}
	}
	if cols.shape != nil && cols.shape.Rows*cols.shape.Cols != n {
		return nil, &ErrBadShape{Rows: cols.shape.Rows, Cols: cols.shape.Cols, Points: n}
	}
	for _, id := range cols.phaseID {
		if id == phase.NotIndexedID {
			continue
		}
		if _, err := phases.ByID(id); err != nil {
			return nil, &ErrUnknownPhaseID{ID: id}
		}
	}

	// Columns are owned by the map; detach them from the caller's slices
	// the same way the rotations and phase IDs are.
	cols.x = append([]float64(nil), cols.x...)
	cols.y = append([]float64(nil), cols.y...)
	for name, v := range cols.props {
		cols.props[name] = append([]float64(nil), v...)
	}

	sel := roaring.New()
	sel.AddRange(0, uint64(n))
	return &CrystalMap{cols: cols, sel: sel}, nil
}

// Len returns the number of selected points.
func (m *CrystalMap) Len() int { return int(m.sel.GetCardinality()) }

// FullLen returns the number of points in the underlying map, ignoring
// the selection.
func (m *CrystalMap) FullLen() int { return m.cols.rot.Len() }

// Phases returns the attached phase list.
func (m *CrystalMap) Phases() *phase.PhaseList { return m.cols.phases }

// Shape returns the 2D scan shape of the underlying map.
func (m *CrystalMap) Shape() (Shape, error) {
	if m.cols.shape == nil {
		return Shape{}, ErrNoShape
	}
	return *m.cols.shape, nil
}

// indices returns the selected flat indices in ascending order.
func (m *CrystalMap) indices() []int {
	out := make([]int, 0, m.Len())
	it := m.sel.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Rotations returns the rotations of the selected points.
func (m *CrystalMap) Rotations() *quaternion.Rotation {
	return m.cols.rot.Select(m.indices())
}

// PhaseIDs returns the phase IDs of the selected points.
func (m *CrystalMap) PhaseIDs() []int {
	idx := m.indices()
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = m.cols.phaseID[j]
	}
	return out
}

// X returns the x coordinates of the selected points, or nil when the
// map carries no coordinates.
func (m *CrystalMap) X() []float64 { return m.gather(m.cols.x) }

// Y returns the y coordinates of the selected points, or nil when the
// map carries no coordinates.
func (m *CrystalMap) Y() []float64 { return m.gather(m.cols.y) }

func (m *CrystalMap) gather(col []float64) []float64 {
	if col == nil {
		return nil
	}
	idx := m.indices()
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = col[j]
	}
	return out
}

// PropNames returns the names of the property columns.
func (m *CrystalMap) PropNames() []string {
	out := make([]string, 0, len(m.cols.props))
	for name := range m.cols.props {
		out = append(out, name)
	}
	return out
}

// Prop returns the values of a property column at the selected points.
func (m *CrystalMap) Prop(name string) ([]float64, error) {
	col, ok := m.cols.props[name]
	if !ok {
		return nil, &ErrUnknownProperty{Name: name}
	}
	return m.gather(col), nil
}

// SetProp writes a property column at the selected points. Writes
// through a view update the underlying map. A new column on a view is
// zero-filled outside the selection.
func (m *CrystalMap) SetProp(name string, values []float64) error {
	if len(values) != m.Len() {
		return &ErrColumnLength{Column: name, Got: len(values), Want: m.Len()}
	}
	col, ok := m.cols.props[name]
	if !ok {
		col = make([]float64, m.FullLen())
		m.cols.props[name] = col
	}
	for i, j := range m.indices() {
		col[j] = values[i]
	}
	return nil
}

// Orientations returns the rotations of the selected points of one
// phase, carrying that phase's point group.
func (m *CrystalMap) Orientations(name string) (*orientation.Orientation, error) {
	id, p, err := m.cols.phases.ByName(name)
	if err != nil {
		return nil, err
	}
	view := m.withBitmap(m.phaseBitmap(id))
	return orientation.New(view.Rotations(), p.PointGroup()), nil
}

// DeepCopy materializes the selection into a fresh root map with
// independent storage.
func (m *CrystalMap) DeepCopy() *CrystalMap {
	idx := m.indices()
	cols := &columns{
		rot:     m.Rotations(),
		phaseID: m.PhaseIDs(),
		x:       m.gather(m.cols.x),
		y:       m.gather(m.cols.y),
		props:   make(map[string][]float64, len(m.cols.props)),
		phases:  m.cols.phases.DeepCopy(),
	}
	for name := range m.cols.props {
		cols.props[name] = m.gather(m.cols.props[name])
	}
	// The 2D shape only survives a full-map copy.
	if m.cols.shape != nil && len(idx) == m.FullLen() {
		s := *m.cols.shape
		cols.shape = &s
	}
	sel := roaring.New()
	sel.AddRange(0, uint64(len(idx)))
	return &CrystalMap{cols: cols, sel: sel}
}
