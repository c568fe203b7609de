package miller

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hexark/orient/phase"
	"github.com/hexark/orient/vector"
)

// orbitSignature quantizes and sorts an orbit so that equal orbits map
// to equal strings regardless of member order.
func orbitSignature(orbit *vector.Vector3d) string {
	rows := orbit.Rows()
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = fmt.Sprintf("%d,%d,%d",
			int64(math.Round(r[0]/1e-6)),
			int64(math.Round(r[1]/1e-6)),
			int64(math.Round(r[2]/1e-6)))
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// RoundOptions controls Round.
type RoundOptions struct {
	// MaxIndex bounds the largest absolute index of the result.
	// Defaults to 20.
	MaxIndex int
}

// Round returns the batch with each vector's lattice indices replaced by
// the closest low-integer set, following the MTEX search: each candidate
// multiplier scales the normalized indices and the one with the smallest
// rounding error wins. For 4-index formats the redundant component is
// left out of the error measure. Cartesian batches are returned
// unchanged. Already-integral indices survive rounding.
func (m *Miller) Round(opts RoundOptions) (*Miller, error) {
	if m.format == XYZ {
		return &Miller{vec: m.vec.Clone(), phase: m.phase, format: m.format}, nil
	}
	maxIndex := opts.MaxIndex
	if maxIndex <= 0 {
		maxIndex = 20
	}

	coords := m.Coordinates()
	rounded := make([][]float64, len(coords))
	for i, idx := range coords {
		rounded[i] = roundIndices(idx, maxIndex)
	}
	return m.rebuild(rounded)
}

func roundIndices(idx []float64, maxIndex int) []float64 {
	// The third of four indices is dependent; score only the free ones.
	free := idx
	if len(idx) == 4 {
		free = []float64{idx[0], idx[1], idx[3]}
	}

	maxAbs := 0.0
	for _, x := range free {
		if a := math.Abs(x); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		out := make([]float64, len(idx))
		return out
	}

	bestErr := math.Inf(1)
	bestMul := 1.0
	for mul := 1; mul <= maxIndex; mul++ {
		scale := float64(mul) / maxAbs
		var num, den float64
		for _, x := range free {
			s := x * scale
			d := s - math.Round(s)
			num += d * d
			den += s * s
		}
		err := 1e-7 * math.Round(1e7*num/den)
		if err < bestErr {
			bestErr = err
			bestMul = float64(mul)
		}
	}

	out := make([]float64, len(idx))
	for j, x := range idx {
		out[j] = math.Round(x * bestMul / maxAbs)
	}
	if len(out) == 4 {
		// Restore the zero-sum component exactly.
		out[2] = -(out[0] + out[1])
	}
	return out
}

// rebuild reconstructs the batch from per-format index rows.
func (m *Miller) rebuild(coords [][]float64) (*Miller, error) {
	switch m.format {
	case UVW:
		return FromUVW(m.phase, narrow3(coords))
	case UVTW:
		return FromUVTW(m.phase, narrow4(coords))
	case HKL:
		return FromHKL(m.phase, narrow3(coords))
	case HKIL:
		return FromHKIL(m.phase, narrow4(coords))
	default:
		return nil, &ErrBadFormat{Format: m.format}
	}
}

func narrow3(coords [][]float64) [][3]float64 {
	out := make([][3]float64, len(coords))
	for i, c := range coords {
		out[i] = [3]float64{c[0], c[1], c[2]}
	}
	return out
}

func narrow4(coords [][]float64) [][4]float64 {
	out := make([][4]float64, len(coords))
	for i, c := range coords {
		out[i] = [4]float64{c[0], c[1], c[2], c[3]}
	}
	return out
}

// FromHighestIndices enumerates every hkl (or uvw, per format) with
// components in [-h, h] x [-k, k] x [-l, l], excluding the zero vector.
func FromHighestIndices(p *phase.Phase, f Format, highest [3]int) (*Miller, error) {
	for _, h := range highest {
		if h < 1 {
			return nil, fmt.Errorf("highest indices must be positive, got %v", highest)
		}
	}
	var idx [][3]float64
	for h := highest[0]; h >= -highest[0]; h-- {
		for k := highest[1]; k >= -highest[1]; k-- {
			for l := highest[2]; l >= -highest[2]; l-- {
				if h == 0 && k == 0 && l == 0 {
					continue
				}
				idx = append(idx, [3]float64{float64(h), float64(k), float64(l)})
			}
		}
	}
	switch f {
	case HKL:
		return FromHKL(p, idx)
	case UVW:
		return FromUVW(p, idx)
	default:
		return nil, &ErrBadFormat{Format: f}
	}
}

// FromMinDSpacing enumerates the reflectors hkl whose interplanar
// spacing is at least dMin, excluding the zero vector.
func FromMinDSpacing(p *phase.Phase, dMin float64) (*Miller, error) {
	if p.Lattice() == nil {
		return nil, ErrNoLattice
	}
	if dMin <= 0 {
		return nil, fmt.Errorf("minimal d-spacing must be positive, got %v", dMin)
	}

	// Per-axis bound: the largest index along each reciprocal axis whose
	// lone reflection still satisfies dMin.
	var highest [3]int
	for axis := 0; axis < 3; axis++ {
		h := 1
		for {
			var hkl [3]float64
			hkl[axis] = float64(h)
			if p.Lattice().DSpacing(hkl) < dMin {
				break
			}
			h++
		}
		if h == 1 {
			h = 2
		}
		highest[axis] = h - 1
	}

	all, err := FromHighestIndices(p, HKL, highest)
	if err != nil {
		return nil, err
	}
	keep := make([]int, 0, all.Len())
	hkls := all.HKLs()
	for i, hkl := range hkls {
		if p.Lattice().DSpacing(hkl) >= dMin {
			keep = append(keep, i)
		}
	}
	return &Miller{vec: all.vec.Select(keep), phase: p, format: HKL}, nil
}
