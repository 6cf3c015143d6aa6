package ctph

const rollingWindow = 7

// rollingHash is the content-defined trigger: an Adler-style sum over the last
// rollingWindow bytes mixed with an unwindowed shift register. All arithmetic
// wraps at 32 bits.
type rollingHash struct {
	window [rollingWindow]byte
	h1     uint32 // sum of window bytes
	h2     uint32 // position-weighted sum of window bytes
	h3     uint32
	n      int
}

func (r *rollingHash) roll(c byte) {
	r.h2 -= r.h1
	r.h2 += rollingWindow * uint32(c)

	r.h1 += uint32(c)
	r.h1 -= uint32(r.window[r.n])

	r.window[r.n] = c
	r.n++
	if r.n == rollingWindow {
		r.n = 0
	}

	r.h3 <<= 5
	r.h3 ^= uint32(c)
}

func (r *rollingHash) sum() uint32 {
	return r.h1 + r.h2 + r.h3
}
