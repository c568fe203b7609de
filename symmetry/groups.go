package symmetry

import (
	"math"
	"strings"

	"github.com/hexark/orient/quaternion"
)

// The 11 proper rotation groups. Generated once at init by closing the
// generator sets under composition.
var (
	C1 = generate("1", nil)
	C2 = generate("2", [][4]float64{axisAngle(0, 0, 1, math.Pi)})
	C3 = generate("3", [][4]float64{axisAngle(0, 0, 1, 2*math.Pi/3)})
	C4 = generate("4", [][4]float64{axisAngle(0, 0, 1, math.Pi/2)})
	C6 = generate("6", [][4]float64{axisAngle(0, 0, 1, math.Pi/3)})
	D2 = generate("222", [][4]float64{
		axisAngle(0, 0, 1, math.Pi),
		axisAngle(1, 0, 0, math.Pi),
	})
	D3 = generate("32", [][4]float64{
		axisAngle(0, 0, 1, 2*math.Pi/3),
		axisAngle(1, 0, 0, math.Pi),
	})
	D4 = generate("422", [][4]float64{
		axisAngle(0, 0, 1, math.Pi/2),
		axisAngle(1, 0, 0, math.Pi),
	})
	D6 = generate("622", [][4]float64{
		axisAngle(0, 0, 1, math.Pi/3),
		axisAngle(1, 0, 0, math.Pi),
	})
	T = generate("23", [][4]float64{
		axisAngle(0, 0, 1, math.Pi),
		axisAngle(1, 0, 0, math.Pi),
		axisAngle(1, 1, 1, 2*math.Pi/3),
	})
	O = generate("432", [][4]float64{
		axisAngle(0, 0, 1, math.Pi/2),
		axisAngle(1, 1, 1, 2*math.Pi/3),
	})
)

// Groups returns the 11 proper rotation groups in order of increasing order.
func Groups() []*Group {
	return []*Group{C1, C2, C3, C4, C6, D2, D3, D4, D6, T, O}
}

func axisAngle(x, y, z, angle float64) [4]float64 {
	n := math.Sqrt(x*x + y*y + z*z)
	s := math.Sin(angle / 2)
	return [4]float64{math.Cos(angle / 2), s * x / n, s * y / n, s * z / n}
}

// generate closes the generator set under quaternion multiplication.
// Group orders are small (≤ 24), so the fixed-point iteration is cheap.
func generate(name string, gens [][4]float64) *Group {
	flat := []float64{1, 0, 0, 0}
	for _, g := range gens {
		flat = append(flat, g[0], g[1], g[2], g[3])
	}
	rots, err := quaternion.FromFlat(flat)
	if err != nil {
		panic("symmetry: bad generator: " + err.Error())
	}
	for {
		products := rots.OuterMul(rots)
		closed, _ := rots.Concat(products).Unique()
		if closed.Len() == rots.Len() {
			return &Group{name: name, rots: closed}
		}
		rots = closed
	}
}

// pointGroups maps the 32 crystallographic point-group symbols
// (international notation) to the proper rotation group of their Laue
// class. Trailing alias entries cover the common split trigonal symbols.
var pointGroups = map[string]*Group{
	"1": C1, "-1": C1,
	"2": C2, "m": C2, "2/m": C2,
	"222": D2, "mm2": C2, "mmm": D2,
	"4": C4, "-4": C4, "4/m": C4,
	"422": D4, "4mm": C4, "-42m": D4, "-4m2": D4, "4/mmm": D4,
	"3": C3, "-3": C3,
	"32": D3, "312": D3, "321": D3,
	"3m": C3, "3m1": C3, "31m": C3,
	"-3m": D3, "-3m1": D3, "-31m": D3,
	"6": C6, "-6": C6, "6/m": C6,
	"622": D6, "6mm": C6, "-6m2": D6, "-62m": D6, "6/mmm": D6,
	"23": T, "m-3": T, "-43m": T,
	"432": O, "m-3m": O,
}

// FromName resolves a point-group symbol to its proper rotation group.
// Matching ignores dashes, so "m3m" and "m-3m" are equivalent; the alias
// "43" resolves to "432".
func FromName(name string) (*Group, error) {
	if g, ok := pointGroups[name]; ok {
		return g, nil
	}
	norm := strings.ReplaceAll(name, "-", "")
	if norm == "43" {
		norm = "432"
	}
	for sym, g := range pointGroups {
		if strings.ReplaceAll(sym, "-", "") == norm {
			return g, nil
		}
	}
	return nil, ErrUnknownGroup
}

// SymbolForSpaceGroup returns the point-group symbol of a space group by
// its number in the International Tables (1-230).
func SymbolForSpaceGroup(number int) (string, error) {
	if number < 1 || number > 230 {
		return "", &ErrSpaceGroupRange{Number: number}
	}
	for _, r := range spaceGroupRanges {
		if number <= r.last {
			return r.symbol, nil
		}
	}
	return "", &ErrSpaceGroupRange{Number: number} // unreachable
}

// FromSpaceGroup returns the proper point group of a space group by number.
func FromSpaceGroup(number int) (*Group, error) {
	sym, err := SymbolForSpaceGroup(number)
	if err != nil {
		return nil, err
	}
	return FromName(sym)
}

// spaceGroupRanges partitions 1-230 by point group, in order.
var spaceGroupRanges = []struct {
	last   int
	symbol string
}{
	{1, "1"}, {2, "-1"},
	{5, "2"}, {9, "m"}, {15, "2/m"},
	{24, "222"}, {46, "mm2"}, {74, "mmm"},
	{80, "4"}, {82, "-4"}, {88, "4/m"},
	{98, "422"}, {110, "4mm"}, {122, "-42m"}, {142, "4/mmm"},
	{146, "3"}, {148, "-3"}, {155, "32"}, {161, "3m"}, {167, "-3m"},
	{173, "6"}, {174, "-6"}, {176, "6/m"},
	{182, "622"}, {186, "6mm"}, {190, "-6m2"}, {194, "6/mmm"},
	{199, "23"}, {206, "m-3"}, {214, "432"}, {220, "-43m"}, {230, "m-3m"},
}
