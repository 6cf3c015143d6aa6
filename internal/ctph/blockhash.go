package ctph

const (
	numBlockHashes = 32
	minBlockSize   = 3
	// SpamsumLength is the capacity of each digest part in characters.
	SpamsumLength = 64

	hashPrime = 0x01000193
	hashInit  = 0x28021967

	// MaxTotalSize is the largest input, in bytes, that still has a valid
	// digest: the coarsest block size times the digest length.
	MaxTotalSize = (uint64(minBlockSize) << (numBlockHashes - 1)) * SpamsumLength
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// BlockSize returns the segment granularity of resolution i. It returns 0
// when i is outside [0, 32). The coarsest size exceeds 32 bits.
func BlockSize(i int) uint64 {
	if i < 0 || i >= numBlockHashes {
		return 0
	}
	return minBlockSize << uint(i)
}

func sumHash(h uint32, c byte) uint32 {
	return h*hashPrime ^ uint32(c)
}

func base64Char(h uint32) byte {
	return base64Alphabet[h%64]
}

// blockHash accumulates the digest for one resolution. digest[dlen] holds the
// character emitted for the span in progress once the digest is full, and is
// zero otherwise.
type blockHash struct {
	h          uint32
	halfH      uint32
	digest     [SpamsumLength]byte
	halfDigest byte
	dlen       int
}

func (b *blockHash) reset() {
	*b = blockHash{h: hashInit, halfH: hashInit}
}

func (b *blockHash) fold(c byte) {
	b.h = sumHash(b.h, c)
	b.halfH = sumHash(b.halfH, c)
}

// emit records the character for the span that just ended and starts the next
// span. Once the digest is full the final character keeps absorbing input and
// emit reports false so the caller can try to retire this resolution.
func (b *blockHash) emit() bool {
	b.digest[b.dlen] = base64Char(b.h)
	b.halfDigest = base64Char(b.halfH)
	if b.dlen >= SpamsumLength-1 {
		return false
	}
	b.dlen++
	b.digest[b.dlen] = 0
	b.h = hashInit
	if b.dlen < SpamsumLength/2 {
		b.halfH = hashInit
		b.halfDigest = 0
	}
	return true
}

// trailing returns the extra character appended after the completed digest
// characters. live is the current rolling trigger value.
func (b *blockHash) trailing(live uint32) byte {
	if live != 0 {
		return base64Char(b.h)
	}
	return b.digest[b.dlen]
}
