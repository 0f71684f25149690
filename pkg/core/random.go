package core

import "math"

// XorShift is a fast xorshift64* pseudo-random generator. It is not safe for
// concurrent use; every render worker owns its own instance.
type XorShift struct {
	state uint64
}

// NewXorShift creates a generator from seed. Seeds are scrambled with a
// splitmix64 step so that consecutive seeds yield unrelated streams.
func NewXorShift(seed uint64) *XorShift {
	z := seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 0x2545f4914f6cdd1d
	}
	return &XorShift{state: z}
}

// Uint64 advances the generator and returns the next value
func (x *XorShift) Uint64() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545f4914f6cdd1d
}

// Float64 returns a uniform value in [0, 1)
func (x *XorShift) Float64() float64 {
	return float64(x.Uint64()>>11) / (1 << 53)
}

// Byte returns a uniform value in [0, 255]
func (x *XorShift) Byte() byte {
	return byte(x.Uint64() >> 56)
}

// Intn returns a uniform value in [0, n). It panics if n <= 0.
func (x *XorShift) Intn(n int) int {
	if n <= 0 {
		panic("core: invalid argument to Intn")
	}
	return int(x.Uint64() % uint64(n))
}

// Shuffle permutes the first n elements using swap (Fisher-Yates)
func (x *XorShift) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, x.Intn(i+1))
	}
}

// UnitVector returns a uniformly distributed direction on the unit sphere
func (x *XorShift) UnitVector() Vec3 {
	z := 1.0 - 2.0*x.Float64() // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * x.Float64()
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}
