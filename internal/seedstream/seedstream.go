// Package seedstream splits randomness into a structural stream holding
// population-level truth fixed across repeated calls and a replicate stream
// varying per Monte-Carlo repetition. Mixing the two would make repeated
// simulation variance studies invalid, so each draw site names its stream.
package seedstream

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
)

// Streams owns the two seeded random streams of one generation call.
type Streams struct {
	structural    *rand.Rand
	replicate     *rand.Rand
	replicateSrc  rand.Source
	replicateSeed uint64
	draws         *atomic.Uint64
}

// New builds the stream pair. The structural seed must be stable across calls
// meant to share the same population truth. A nil replicate seed draws fresh
// entropy, so repeated calls produce different samples.
func New(structuralSeed uint64, replicateSeed *uint64) *Streams {
	rep := uint64(time.Now().UnixNano())
	if replicateSeed != nil {
		rep = *replicateSeed
	}
	draws := &atomic.Uint64{}
	src := &countingSource{src: rand.NewSource(rep), draws: draws}
	return &Streams{
		structural:    rand.New(rand.NewSource(structuralSeed)),
		replicate:     rand.New(src),
		replicateSrc:  src,
		replicateSeed: rep,
		draws:         draws,
	}
}

// Structural returns the stream for population-level truth: fixed-effect
// coefficients, canonical test-function parameters.
func (s *Streams) Structural() *rand.Rand { return s.structural }

// Replicate returns the stream for this replicate's sample: unit composition,
// truncation, noise.
func (s *Streams) Replicate() *rand.Rand { return s.replicate }

// ReplicateSource exposes the replicate stream as a raw source for samplers
// that consume sources directly. It shares state with Replicate.
func (s *Streams) ReplicateSource() rand.Source { return s.replicateSrc }

// UnitSource returns an independent source for one unit, seeded from the
// replicate seed plus the unit index. The fixed substream per unit keeps
// results identical regardless of how many units are sampled concurrently.
func (s *Streams) UnitSource(unit int) rand.Source {
	return &countingSource{
		src:   rand.NewSource(s.replicateSeed + uint64(unit)),
		draws: s.draws,
	}
}

// ReplicateDraws returns how many raw draws the replicate stream and its unit
// substreams have consumed. Fail-fast paths are required to leave this at zero.
func (s *Streams) ReplicateDraws() uint64 { return s.draws.Load() }

// countingSource counts every Uint64 pulled from the wrapped source. The
// counter is shared so substreams report into the same total.
type countingSource struct {
	src   rand.Source
	draws *atomic.Uint64
}

func (c *countingSource) Uint64() uint64 {
	c.draws.Add(1)
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed uint64) {
	c.src.Seed(seed)
}
