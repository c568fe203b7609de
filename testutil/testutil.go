// Package testutil provides deterministic random data generators for
// tests and benchmarks.
package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/vector"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// Rotations generates n random rotations uniformly distributed over the
// rotation space. Each quaternion is drawn as a normalized Gaussian
// four-vector, which samples the Haar measure on SO(3).
func (r *RNG) Rotations(n int) *quaternion.Rotation {
	r.mu.Lock()
	defer r.mu.Unlock()

	abcd := make([]float64, 4*n)
	for i := range n {
		var norm float64
		for k := range 4 {
			v := r.rand.NormFloat64()
			abcd[4*i+k] = v
			norm += v * v
		}
		if norm == 0 {
			abcd[4*i] = 1
			norm = 1
		}
		inv := 1 / math.Sqrt(norm)
		for k := range 4 {
			abcd[4*i+k] *= inv
		}
	}

	rot, err := quaternion.FromFlat(abcd)
	if err != nil {
		panic(err) // rows are unit norm by construction
	}
	return rot
}

// UnitVectors generates n random directions uniformly distributed on
// the unit sphere.
func (r *RNG) UnitVectors(n int) *vector.Vector3d {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, 3*n)
	for i := range n {
		var norm float64
		for k := range 3 {
			v := r.rand.NormFloat64()
			data[3*i+k] = v
			norm += v * v
		}
		if norm == 0 {
			data[3*i+2] = 1
			norm = 1
		}
		inv := 1 / math.Sqrt(norm)
		for k := range 3 {
			data[3*i+k] *= inv
		}
	}

	v, err := vector.FromSlice(data)
	if err != nil {
		panic(err) // length is a multiple of three by construction
	}
	return v
}

// Eulers generates n random Bunge Euler triplets with phi1 and phi2 in
// [0, 2pi) and Phi drawn so the triplets cover orientation space
// uniformly.
func (r *RNG) Eulers(n int) [][3]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][3]float64, n)
	for i := range n {
		out[i] = [3]float64{
			r.rand.Float64() * 2 * math.Pi,
			math.Acos(1 - 2*r.rand.Float64()),
			r.rand.Float64() * 2 * math.Pi,
		}
	}
	return out
}

// PhaseIDs generates n phase assignments drawn from the given IDs.
func (r *RNG) PhaseIDs(n int, ids []int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range n {
		out[i] = ids[r.rand.Intn(len(ids))]
	}
	return out
}
