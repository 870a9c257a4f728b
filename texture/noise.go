package texture

import (
	"math"
	"math/rand"

	"github.com/sakarias88/racer-tracer/vec3"
)

// pointCount is the Perlin lattice size, matching the reference
// implementation's constant.
const pointCount = 256

// perlin is a classic-Perlin noise generator: a table of random unit
// vectors plus three independent permutation tables, combined with
// Hermite-smoothed trilinear interpolation.
type perlin struct {
	ranVec  [pointCount]vec3.Vec3
	permX   [pointCount]int
	permY   [pointCount]int
	permZ   [pointCount]int
}

func newPerlin(rng *rand.Rand) *perlin {
	p := &perlin{}
	for i := range p.ranVec {
		p.ranVec[i] = vec3.New(2*rng.Float64()-1, 2*rng.Float64()-1, 2*rng.Float64()-1).Unit()
	}
	p.permX = generatePerm(rng)
	p.permY = generatePerm(rng)
	p.permZ = generatePerm(rng)
	return p
}

func generatePerm(rng *rand.Rand) [pointCount]int {
	var perm [pointCount]int
	for i := range perm {
		perm[i] = i
	}
	for i := pointCount - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// noise returns a smoothed noise value (roughly in [-1,1]) at p.
func (pn *perlin) noise(p vec3.Vec3) float64 {
	u := p.X() - math.Floor(p.X())
	v := p.Y() - math.Floor(p.Y())
	w := p.Z() - math.Floor(p.Z())

	i := int(math.Floor(p.X()))
	j := int(math.Floor(p.Y()))
	k := int(math.Floor(p.Z()))

	var c [2][2][2]vec3.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				idx := pn.permX[(i+di)&255] ^ pn.permY[(j+dj)&255] ^ pn.permZ[(k+dk)&255]
				c[di][dj][dk] = pn.ranVec[idx]
			}
		}
	}
	return perlinInterp(c, u, v, w)
}

func perlinInterp(c [2][2][2]vec3.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var accum float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				weight := vec3.New(u-float64(i), v-float64(j), w-float64(k))
				fi, fj, fk := float64(i), float64(j), float64(k)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// turbulence accumulates |Σ weight·noise(p)| over depth octaves, halving
// weight and doubling frequency each step.
func (pn *perlin) turbulence(p vec3.Vec3, depth int) float64 {
	accum := 0.0
	temp := p
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * pn.noise(temp)
		weight *= 0.5
		temp = temp.Scale(2)
	}
	return math.Abs(accum)
}

// Noise is a Perlin-turbulence marble-like texture:
// color * 0.5 * (1 + sin(scale*point.z + 10*turbulence(point))).
type Noise struct {
	Color vec3.Color
	Scale float64
	Depth int
	pn    *perlin
}

// NewNoise returns a noise texture of the given scale and octave depth,
// seeded from rng at construction time.
func NewNoise(color vec3.Color, scale float64, depth int, rng *rand.Rand) *Noise {
	return &Noise{Color: color, Scale: scale, Depth: depth, pn: newPerlin(rng)}
}

// Value implements Texture.
func (n *Noise) Value(_, _ float64, p vec3.Vec3) vec3.Color {
	turb := n.pn.turbulence(p, n.Depth)
	factor := 0.5 * (1 + math.Sin(n.Scale*p.Z()+10*turb))
	return n.Color.Scale(factor)
}
