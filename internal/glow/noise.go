package glow

import (
	"math"
	"math/rand/v2"
)

// SimplexNoise generates 2D and 3D simplex noise with a seed-shuffled
// permutation table.
type SimplexNoise struct {
	perm [512]int
}

// NewSimplexNoise creates a new noise generator with the given seed.
func NewSimplexNoise(seed uint64) *SimplexNoise {
	sn := &SimplexNoise{}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	p := make([]int, 256)
	for i := range p {
		p[i] = i
	}
	r.Shuffle(256, func(i, j int) { p[i], p[j] = p[j], p[i] })

	for i := 0; i < 512; i++ {
		sn.perm[i] = p[i&255]
	}
	return sn
}

// grad2 computes the dot product of a gradient vector and (x, y).
func grad2(hash int, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// grad3 uses the twelve cube-edge gradients.
func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	v := z
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

const (
	f2 = 0.3660254037844386  // (sqrt(3) - 1) / 2
	g2 = 0.21132486540518713 // (3 - sqrt(3)) / 6
	f3 = 1.0 / 3.0
	g3 = 1.0 / 6.0
)

// Noise2D returns 2D simplex noise in the range [-1, 1].
func (sn *SimplexNoise) Noise2D(x, y float64) float64 {
	// Skew input space to determine which simplex cell we're in
	s := (x + y) * f2
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * g2
	x0 := x - (i - t)
	y0 := y - (j - t)

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := int(i) & 255
	jj := int(j) & 255

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 > 0 {
		t0 *= t0
		n0 = t0 * t0 * grad2(sn.perm[ii+sn.perm[jj]], x0, y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 > 0 {
		t1 *= t1
		n1 = t1 * t1 * grad2(sn.perm[ii+i1+sn.perm[jj+j1]], x1, y1)
	}

	t2 := 0.5 - x2*x2 - y2*y2
	if t2 > 0 {
		t2 *= t2
		n2 = t2 * t2 * grad2(sn.perm[ii+1+sn.perm[jj+1]], x2, y2)
	}

	return 70.0 * (n0 + n1 + n2)
}

// Noise3D returns 3D simplex noise in roughly [-1, 1].
func (sn *SimplexNoise) Noise3D(x, y, z float64) float64 {
	s := (x + y + z) * f3
	i := math.Floor(x + s)
	j := math.Floor(y + s)
	k := math.Floor(z + s)

	t := (i + j + k) * g3
	x0 := x - (i - t)
	y0 := y - (j - t)
	z0 := z - (k - t)

	// Rank the offsets to pick one of six tetrahedra.
	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= y0 && x0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case y0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case x0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	ii := int(i) & 255
	jj := int(j) & 255
	kk := int(k) & 255
	p := &sn.perm

	corner := func(hash int, x, y, z float64) float64 {
		t := 0.6 - x*x - y*y - z*z
		if t < 0 {
			return 0
		}
		t *= t
		return t * t * grad3(hash, x, y, z)
	}

	n0 := corner(p[ii+p[jj+p[kk]]], x0, y0, z0)
	n1 := corner(p[ii+i1+p[jj+j1+p[kk+k1]]], x1, y1, z1)
	n2 := corner(p[ii+i2+p[jj+j2+p[kk+k2]]], x2, y2, z2)
	n3 := corner(p[ii+1+p[jj+1+p[kk+1]]], x3, y3, z3)

	return 32.0 * (n0 + n1 + n2 + n3)
}

// Fractal generates multi-octave fractal noise normalized to [0, 1].
func (sn *SimplexNoise) Fractal(x, y, freq float64, octaves int, lacunarity, persistence float64) float64 {
	var total float64
	var maxAmp float64
	amp := 1.0

	for i := 0; i < octaves; i++ {
		total += sn.Noise2D(x*freq, y*freq) * amp
		maxAmp += amp
		freq *= lacunarity
		amp *= persistence
	}

	return (total/maxAmp + 1.0) / 2.0
}
