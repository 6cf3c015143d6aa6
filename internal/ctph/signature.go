package ctph

import (
	"fmt"
	"strconv"
	"strings"
)

// Signature is a parsed digest.
type Signature struct {
	BlockSize uint64
	// Primary is the digest at BlockSize, Secondary the one at twice it.
	Primary   string
	Secondary string
}

// Parse splits a digest produced by Digest into its components.
func Parse(digest string) (Signature, error) {
	parts := strings.Split(digest, ":")
	if len(parts) != 3 {
		return Signature{}, fmt.Errorf("%q: want 3 fields, got %d: %w", digest, len(parts), ErrMalformedDigest)
	}
	bs, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%q: block size: %w", digest, ErrMalformedDigest)
	}
	if !knownBlockSize(bs) {
		return Signature{}, fmt.Errorf("%q: block size %d is not 3<<n: %w", digest, bs, ErrMalformedDigest)
	}
	for _, part := range parts[1:] {
		if len(part) > SpamsumLength {
			return Signature{}, fmt.Errorf("%q: part longer than %d: %w", digest, SpamsumLength, ErrMalformedDigest)
		}
		if i := strings.IndexFunc(part, notInAlphabet); i >= 0 {
			return Signature{}, fmt.Errorf("%q: invalid character %q: %w", digest, part[i], ErrMalformedDigest)
		}
	}
	return Signature{BlockSize: bs, Primary: parts[1], Secondary: parts[2]}, nil
}

// Valid reports whether digest is well formed.
func Valid(digest string) bool {
	_, err := Parse(digest)
	return err == nil
}

func (s Signature) String() string {
	return strconv.FormatUint(s.BlockSize, 10) + ":" + s.Primary + ":" + s.Secondary
}

func knownBlockSize(bs uint64) bool {
	for i := 0; i < numBlockHashes; i++ {
		if BlockSize(i) == bs {
			return true
		}
	}
	return false
}

func notInAlphabet(r rune) bool {
	return !strings.ContainsRune(base64Alphabet, r)
}
