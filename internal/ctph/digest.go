package ctph

import (
	"fmt"
	"io"
	"strconv"
)

// Digest renders the signature of everything hashed so far. It does not
// modify the engine, so more input may follow and Digest may be called again.
func (h *Hash) Digest() (string, error) {
	if h.overflowed() {
		return "", ErrSizeOverflow
	}
	if h.sizeFixed && h.fixedSize != h.totalSize {
		return "", fmt.Errorf("declared %d bytes, hashed %d: %w", h.fixedSize, h.totalSize, ErrFixedSizeMismatch)
	}

	bi, err := h.selectBlock()
	if err != nil {
		return "", err
	}
	live := h.roll.sum()

	buf := make([]byte, 0, 16+2*SpamsumLength+2)
	buf = strconv.AppendUint(buf, BlockSize(bi), 10)
	buf = append(buf, ':')
	buf = appendBlock(buf, &h.blocks[bi], live)
	buf = append(buf, ':')

	switch {
	case bi < h.end-1:
		buf = appendBlock(buf, &h.blocks[bi+1], live)
	case live == 0:
	case bi == 0:
		buf = append(buf, base64Char(h.blocks[0].h))
	case bi == numBlockHashes-1:
		buf = append(buf, base64Char(h.lastH))
	default:
		return "", fmt.Errorf("block %d is the last live resolution: %w", bi, ErrInvariant)
	}
	return string(buf), nil
}

// selectBlock picks the resolution whose digest represents the whole input:
// the smallest block size whose full digest covers the input, lowered while
// the candidate has produced less than half a digest.
func (h *Hash) selectBlock() (int, error) {
	if h.start < 0 || h.start >= h.end || h.end > numBlockHashes {
		return 0, fmt.Errorf("live window [%d, %d): %w", h.start, h.end, ErrInvariant)
	}

	if h.start > 0 && BlockSize(h.start)/2*SpamsumLength >= h.totalSize {
		return 0, fmt.Errorf("block size %d retired for %d bytes: %w", BlockSize(h.start-1), h.totalSize, ErrInvariant)
	}

	bi := h.start
	for bi < numBlockHashes-1 && BlockSize(bi)*SpamsumLength < h.totalSize {
		bi++
	}
	if bi >= h.end {
		bi = h.end - 1
	}
	for bi > h.start && h.blocks[bi].dlen < SpamsumLength/2 {
		bi--
	}

	if bi > 0 && h.blocks[bi].dlen < SpamsumLength/2 {
		return 0, fmt.Errorf("block size %d holds %d characters: %w", BlockSize(bi), h.blocks[bi].dlen, ErrInvariant)
	}
	for i := bi; i < h.end && i <= bi+1; i++ {
		if n := h.blocks[i].dlen; n < 0 || n >= SpamsumLength {
			return 0, fmt.Errorf("block size %d cursor at %d: %w", BlockSize(i), n, ErrInvariant)
		}
	}
	return bi, nil
}

func appendBlock(buf []byte, b *blockHash, live uint32) []byte {
	buf = append(buf, b.digest[:b.dlen]...)
	if c := b.trailing(live); c != 0 {
		buf = append(buf, c)
	}
	return buf
}

// Sum returns the digest of p.
func Sum(p []byte) (string, error) {
	h := New()
	if err := h.SetTotalSize(uint64(len(p))); err != nil {
		return "", err
	}
	h.Update(p)
	return h.Digest()
}

// SumReader returns the digest of everything read from r until io.EOF.
func SumReader(r io.Reader) (string, error) {
	h := New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return h.Digest()
}
