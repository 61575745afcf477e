package core

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Point is one ring record: three packed float32, 12 bytes.
type Point = mgl32.Vec3

const PointSize = 12

// Generator produces batches of random points in the [-1, 1] cube. It stands
// in for a live sensor feed.
type Generator struct {
	rng   *rand.Rand
	batch []Point
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator seeds a PCG source. Seed 0 picks a seed from the clock.
func NewSeededGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate replaces the previous batch with count new points. The returned
// slice is only valid until the next call.
func (g *Generator) Generate(count int) []Point {
	if count < 0 {
		count = 0
	}
	if cap(g.batch) < count {
		g.batch = make([]Point, count)
	}
	g.batch = g.batch[:count]
	for i := range g.batch {
		g.batch[i] = Point{g.coord(), g.coord(), g.coord()}
	}
	return g.batch
}

func (g *Generator) coord() float32 {
	return g.rng.Float32()*2 - 1
}
