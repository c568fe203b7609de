package phase

import (
	"log/slog"

	"github.com/hexark/orient/lattice"
	"github.com/hexark/orient/symmetry"
)

// Phase is the name, crystal symmetry, lattice, and color of one phase in
// a crystallographic map.
type Phase struct {
	name       string
	pointGroup *symmetry.Group
	spaceGroup int // 0 means unset
	lattice    *lattice.Lattice
	color      string
	logger     *slog.Logger
}

// Option configures a Phase.
type Option func(*Phase)

// WithColor sets the plotting color hint.
func WithColor(color string) Option {
	return func(p *Phase) { p.color = color }
}

// WithLattice attaches a lattice.
func WithLattice(l *lattice.Lattice) Option {
	return func(p *Phase) { p.lattice = l }
}

// WithLogger sets the logger used for diagnostics. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Phase) { p.logger = logger }
}

// New creates a phase with the given name and point-group symbol.
func New(name, pointGroup string, opts ...Option) (*Phase, error) {
	g, err := symmetry.FromName(pointGroup)
	if err != nil {
		return nil, err
	}
	p := &Phase{
		name:       name,
		pointGroup: g,
		color:      colorPalette[0],
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FromSpaceGroup creates a phase from a space-group number (1-230); the
// point group is derived from it.
func FromSpaceGroup(name string, number int, opts ...Option) (*Phase, error) {
	g, err := symmetry.FromSpaceGroup(number)
	if err != nil {
		return nil, err
	}
	p := &Phase{
		name:       name,
		pointGroup: g,
		spaceGroup: number,
		color:      colorPalette[0],
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns the phase name.
func (p *Phase) Name() string { return p.name }

// PointGroup returns the phase's proper point group.
func (p *Phase) PointGroup() *symmetry.Group { return p.pointGroup }

// SpaceGroup returns the space-group number, or 0 if unset.
func (p *Phase) SpaceGroup() int { return p.spaceGroup }

// Lattice returns the attached lattice, or nil.
func (p *Phase) Lattice() *lattice.Lattice { return p.lattice }

// Color returns the plotting color hint.
func (p *Phase) Color() string { return p.color }

// SetColor sets the plotting color hint.
func (p *Phase) SetColor(color string) { p.color = color }

// SetLattice attaches a lattice.
func (p *Phase) SetLattice(l *lattice.Lattice) { p.lattice = l }

// SetSpaceGroup sets the space group and recomputes the point group as its
// rotational subgroup.
func (p *Phase) SetSpaceGroup(number int) error {
	g, err := symmetry.FromSpaceGroup(number)
	if err != nil {
		return err
	}
	p.spaceGroup = number
	p.pointGroup = g
	return nil
}

// SetPointGroup sets the point group by symbol. If a space group is set
// and its rotational subgroup differs from the new point group, the space
// group is cleared (logged at warn level, not an error).
func (p *Phase) SetPointGroup(symbol string) error {
	g, err := symmetry.FromName(symbol)
	if err != nil {
		return err
	}
	if p.spaceGroup != 0 {
		derived, err := symmetry.FromSpaceGroup(p.spaceGroup)
		if err == nil && derived != g {
			p.logger.Warn("point group incompatible with space group, clearing space group",
				"phase", p.name,
				"point_group", symbol,
				"space_group", p.spaceGroup,
			)
			p.spaceGroup = 0
		}
	}
	p.pointGroup = g
	return nil
}

// DeepCopy returns a copy sharing no mutable state with p. Groups and
// lattices are immutable and shared.
func (p *Phase) DeepCopy() *Phase {
	cp := *p
	return &cp
}
