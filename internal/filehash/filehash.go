package filehash

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"fuzzyhash/internal/ctph"
)

// DefaultBufferSize is used when Options.BufferSize is not positive.
const DefaultBufferSize = 256 * 1024

// ErrNotRegular reports a path that is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// ErrChanged reports a file whose size changed while it was being hashed.
var ErrChanged = errors.New("file changed while hashing")

// Options controls how inputs are read.
type Options struct {
	BufferSize int
	// DeclareSize hands the stat size to the engine before reading.
	DeclareSize bool
}

// Result describes one hashed file.
type Result struct {
	Path    string
	Size    int64
	ModTime time.Time
	Digest  string
	// Checksum is the hex BLAKE3-256 of the content, for exact-match lookups.
	Checksum string
}

var buffers sync.Map // buffer size -> *sync.Pool

func getBuffer(size int) (*[]byte, func()) {
	if size <= 0 {
		size = DefaultBufferSize
	}
	v, _ := buffers.LoadOrStore(size, &sync.Pool{New: func() any {
		b := make([]byte, size)
		return &b
	}})
	pool := v.(*sync.Pool)
	buf := pool.Get().(*[]byte)
	return buf, func() { pool.Put(buf) }
}

// HashReader digests everything read from r until io.EOF. It returns the digest
// and the number of bytes read. declared, when non-negative, is passed to the
// engine as the expected total size.
func HashReader(ctx context.Context, r io.Reader, declared int64, opts Options) (string, int64, error) {
	h := ctph.New()
	if declared >= 0 {
		if err := h.SetTotalSize(uint64(declared)); err != nil {
			return "", 0, fmt.Errorf("declare size: %w", err)
		}
	}

	buf, release := getBuffer(opts.BufferSize)
	defer release()

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return "", total, err
		}
		n, err := r.Read(*buf)
		if n > 0 {
			h.Update((*buf)[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", total, fmt.Errorf("read: %w", err)
		}
	}

	digest, err := h.Digest()
	if err != nil {
		if errors.Is(err, ctph.ErrFixedSizeMismatch) {
			return "", total, fmt.Errorf("%w: %w", ErrChanged, err)
		}
		return "", total, err
	}
	return digest, total, nil
}

// HashFile digests the regular file at path.
func HashFile(ctx context.Context, path string, opts Options) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Result{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	adviseSequential(file)

	declared := int64(-1)
	if opts.DeclareSize {
		declared = info.Size()
	}
	sum := blake3.New()
	digest, n, err := HashReader(ctx, io.TeeReader(file, sum), declared, opts)
	if err != nil {
		return Result{}, fmt.Errorf("hash %s: %w", path, err)
	}
	return Result{
		Path:     path,
		Size:     n,
		ModTime:  info.ModTime(),
		Digest:   digest,
		Checksum: hex.EncodeToString(sum.Sum(nil)),
	}, nil
}
