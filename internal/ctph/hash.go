package ctph

import (
	"fmt"
)

// Hash is a streaming CTPH engine. The zero value is not usable; call New.
type Hash struct {
	roll   rollingHash
	blocks [numBlockHashes]blockHash

	// Live resolutions are blocks[start:end]. Both only grow.
	start int
	end   int
	// Forks may activate slots up to and including endLimit.
	endLimit int

	totalSize uint64
	fixedSize uint64
	sizeFixed bool

	lastH     uint32
	needLastH bool
}

// New returns an engine ready to hash a new stream.
func New() *Hash {
	h := &Hash{}
	h.Reset()
	return h
}

// Reset discards all hashed input and any declared size.
func (h *Hash) Reset() {
	h.roll = rollingHash{}
	for i := range h.blocks {
		h.blocks[i].reset()
	}
	h.start = 0
	h.end = 1
	h.endLimit = numBlockHashes - 1
	h.totalSize = 0
	h.fixedSize = 0
	h.sizeFixed = false
	h.lastH = 0
	h.needLastH = false
}

// SetTotalSize declares how many bytes the stream will contain. It is optional
// and lets the engine skip resolutions the final size can never select; Digest
// then fails unless exactly n bytes were hashed. Declaring a different size a
// second time fails with ErrFixedSizeMismatch.
func (h *Hash) SetTotalSize(n uint64) error {
	if n > MaxTotalSize {
		return fmt.Errorf("declare size %d: %w", n, ErrSizeOverflow)
	}
	if h.sizeFixed && h.fixedSize != n {
		return fmt.Errorf("declare size %d after %d: %w", n, h.fixedSize, ErrFixedSizeMismatch)
	}
	h.sizeFixed = true
	h.fixedSize = n

	bi := 0
	for BlockSize(bi)*SpamsumLength < n {
		bi++
		if bi == numBlockHashes-2 {
			break
		}
	}
	h.endLimit = bi + 1
	return nil
}

// Size reports the number of bytes hashed so far. Once the input grows past
// MaxTotalSize it reports MaxTotalSize+1 and stops counting.
func (h *Hash) Size() uint64 {
	return h.totalSize
}

func (h *Hash) overflowed() bool {
	return h.totalSize > MaxTotalSize
}

// Update hashes p. It may be called any number of times; the digest depends
// only on the concatenated input, not on how it was split.
func (h *Hash) Update(p []byte) {
	if !h.overflowed() {
		n := uint64(len(p))
		if n > MaxTotalSize || MaxTotalSize-n < h.totalSize {
			h.totalSize = MaxTotalSize + 1
		} else {
			h.totalSize += n
		}
	}
	for _, c := range p {
		h.step(c)
	}
}

// Write implements io.Writer. It never returns an error.
func (h *Hash) Write(p []byte) (int, error) {
	h.Update(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (h *Hash) WriteByte(c byte) error {
	h.Update([]byte{c})
	return nil
}

func (h *Hash) step(c byte) {
	h.roll.roll(c)
	sum := h.roll.sum()

	for i := h.start; i < h.end; i++ {
		h.blocks[i].fold(c)
	}
	if h.needLastH {
		h.lastH = sumHash(h.lastH, c)
	}

	for i := h.start; i < h.end; i++ {
		bs := BlockSize(i)
		// sum ≡ -1 (mod 2*bs) implies sum ≡ -1 (mod bs), so the first miss
		// ends the scan.
		if uint64(sum)%bs != bs-1 {
			break
		}
		if h.blocks[i].dlen == 0 {
			h.tryFork()
		}
		if !h.blocks[i].emit() {
			h.tryReduce()
		}
	}
}

// tryFork activates the next coarser resolution, seeding it with the span
// state of the current coarsest one. With every slot live it arms the tail
// hash instead.
func (h *Hash) tryFork() {
	last := &h.blocks[h.end-1]
	if h.end <= h.endLimit {
		next := &h.blocks[h.end]
		next.h = last.h
		next.halfH = last.halfH
		next.digest[0] = 0
		next.halfDigest = 0
		next.dlen = 0
		h.end++
		return
	}
	if h.end == numBlockHashes && !h.needLastH {
		h.needLastH = true
		h.lastH = last.h
	}
}

// tryReduce retires the finest live resolution once the input is too large
// for it and the next one has a digest at least half full.
func (h *Hash) tryReduce() {
	if h.end-h.start < 2 {
		return
	}
	size := h.totalSize
	if h.sizeFixed {
		size = h.fixedSize
	}
	if !h.overflowed() && BlockSize(h.start)*SpamsumLength >= size {
		return
	}
	if h.blocks[h.start+1].dlen < SpamsumLength/2 {
		return
	}
	h.start++
}
