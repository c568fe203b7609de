package crystalmap

import (
	"math"

	"github.com/hexark/orient/orientation"
)

// PhaseFractions returns the fraction of selected points per phase ID,
// including the not-indexed ID when present.
func (m *CrystalMap) PhaseFractions() map[int]float64 {
	n := m.Len()
	out := make(map[int]float64)
	if n == 0 {
		return out
	}
	for _, id := range m.PhaseIDs() {
		out[id]++
	}
	for id := range out {
		out[id] /= float64(n)
	}
	return out
}

// PropSummary holds basic statistics of a property column over a
// selection.
type PropSummary struct {
	Min, Max, Mean float64
	Count          int
}

// SummarizeProp computes min, max and mean of a property column over
// the selected points.
func (m *CrystalMap) SummarizeProp(name string) (PropSummary, error) {
	values, err := m.Prop(name)
	if err != nil {
		return PropSummary{}, err
	}
	s := PropSummary{Min: math.Inf(1), Max: math.Inf(-1), Count: len(values)}
	if len(values) == 0 {
		return PropSummary{}, nil
	}
	var sum float64
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))
	return s, nil
}

// RotationsPerPhase returns the selected rotations of every indexed
// phase as Orientations carrying the phase's point group, keyed by
// phase name.
func (m *CrystalMap) RotationsPerPhase() (map[string]*orientation.Orientation, error) {
	out := make(map[string]*orientation.Orientation, m.cols.phases.Size())
	for _, name := range m.cols.phases.Names() {
		o, err := m.Orientations(name)
		if err != nil {
			return nil, err
		}
		if o.Len() == 0 {
			continue
		}
		out[name] = o
	}
	return out, nil
}
