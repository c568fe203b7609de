package phase

import (
	"errors"
	"fmt"
	"sort"
)

// NotIndexedID is the reserved phase ID for scan points that could not be
// indexed.
const NotIndexedID = -1

var (
	// ErrDuplicateName is returned when a phase name already exists in the
	// list.
	ErrDuplicateName = errors.New("phase name already in list")
	// ErrReservedID is returned when a phase is added under the
	// not-indexed ID.
	ErrReservedID = errors.New("phase ID -1 is reserved for not-indexed points")
)

// ErrUnknownPhase indicates a phase lookup that did not resolve.
type ErrUnknownPhase struct {
	ID   int
	Name string
}

func (e *ErrUnknownPhase) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown phase %q", e.Name)
	}
	return fmt.Sprintf("unknown phase ID %d", e.ID)
}

// colorPalette cycles through distinguishable plotting colors when phases
// are added without an explicit color.
var colorPalette = []string{
	"blue", "orange", "green", "red", "purple",
	"brown", "pink", "gray", "olive", "cyan",
}

// PhaseList is an ordered mapping from phase ID to Phase.
type PhaseList struct {
	ids    []int // sorted
	phases map[int]*Phase
}

// NewList returns an empty phase list.
func NewList() *PhaseList {
	return &PhaseList{phases: make(map[int]*Phase)}
}

// FromMap builds a phase list from explicit ID assignments. Names must be
// unique and the reserved ID must not be used.
func FromMap(phases map[int]*Phase) (*PhaseList, error) {
	pl := NewList()
	ids := make([]int, 0, len(phases))
	for id := range phases {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if err := pl.Set(id, phases[id]); err != nil {
			return nil, err
		}
	}
	return pl, nil
}

// Size returns the number of phases in the list.
func (pl *PhaseList) Size() int { return len(pl.ids) }

// IDs returns the phase IDs in ascending order.
func (pl *PhaseList) IDs() []int {
	out := make([]int, len(pl.ids))
	copy(out, pl.ids)
	return out
}

// Names returns the phase names in ID order.
func (pl *PhaseList) Names() []string {
	out := make([]string, len(pl.ids))
	for i, id := range pl.ids {
		out[i] = pl.phases[id].Name()
	}
	return out
}

// ByID returns the phase with the given ID.
func (pl *PhaseList) ByID(id int) (*Phase, error) {
	p, ok := pl.phases[id]
	if !ok {
		return nil, &ErrUnknownPhase{ID: id}
	}
	return p, nil
}

// ByName returns the phase with the given name and its ID.
func (pl *PhaseList) ByName(name string) (int, *Phase, error) {
	for _, id := range pl.ids {
		if pl.phases[id].Name() == name {
			return id, pl.phases[id], nil
		}
	}
	return 0, nil, &ErrUnknownPhase{Name: name}
}

// Set inserts or replaces the phase under an explicit ID.
func (pl *PhaseList) Set(id int, p *Phase) error {
	if id == NotIndexedID {
		return ErrReservedID
	}
	if existing, ok := pl.phases[id]; !ok || existing.Name() != p.Name() {
		if otherID, _, err := pl.ByName(p.Name()); err == nil && otherID != id {
			return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name())
		}
	}
	if _, ok := pl.phases[id]; !ok {
		pl.ids = append(pl.ids, id)
		sort.Ints(pl.ids)
	}
	pl.phases[id] = p
	return nil
}

// Add appends a phase under the next free ID. Phases without an explicit
// color get the first palette color not already in use. It returns the
// assigned ID.
func (pl *PhaseList) Add(p *Phase) (int, error) {
	if _, _, err := pl.ByName(p.Name()); err == nil {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name())
	}
	id := 0
	if n := len(pl.ids); n > 0 {
		id = pl.ids[n-1] + 1
	}
	if p.Color() == "" {
		p.SetColor(pl.freeColor())
	}
	pl.ids = append(pl.ids, id)
	pl.phases[id] = p
	return id, nil
}

func (pl *PhaseList) freeColor() string {
	used := make(map[string]bool, len(pl.ids))
	for _, id := range pl.ids {
		used[pl.phases[id].Color()] = true
	}
	for _, c := range colorPalette {
		if !used[c] {
			return c
		}
	}
	return colorPalette[len(pl.ids)%len(colorPalette)]
}

// Select returns a new list holding only the given IDs.
func (pl *PhaseList) Select(ids ...int) (*PhaseList, error) {
	out := NewList()
	for _, id := range ids {
		p, err := pl.ByID(id)
		if err != nil {
			return nil, err
		}
		if err := out.Set(id, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeepCopy returns a copy of the list with deep-copied phases.
func (pl *PhaseList) DeepCopy() *PhaseList {
	out := NewList()
	for _, id := range pl.ids {
		out.ids = append(out.ids, id)
		out.phases[id] = pl.phases[id].DeepCopy()
	}
	return out
}
