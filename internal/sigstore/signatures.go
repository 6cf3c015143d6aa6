package sigstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fuzzyhash/internal/ctph"
	"fuzzyhash/internal/filehash"
)

// Signature is one catalogued file digest.
type Signature struct {
	Path       string
	Size       int64
	Digest     string
	Checksum   string
	BlockSize  uint64
	RunID      string
	ModifiedAt time.Time
	HashedAt   time.Time
}

// ListOptions filters List.
type ListOptions struct {
	// Prefix restricts results to paths starting with it.
	Prefix string
	// BlockSize restricts results to one block size; zero matches all.
	BlockSize uint64
	// Checksum restricts results to files with this exact content.
	Checksum string
	// Limit caps the number of rows; zero or negative means unlimited.
	Limit int
}

const signatureColumns = "path, size, digest, checksum, block_size, run_id, modified_at, hashed_at"

// Record stores or replaces the signature for res.Path. runID may be empty for
// ad-hoc hashes made outside a scan.
func (s *Store) Record(ctx context.Context, runID string, res filehash.Result) error {
	sig, err := ctph.Parse(res.Digest)
	if err != nil {
		return fmt.Errorf("record %s: %w", res.Path, err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO signatures (`+signatureColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET
             size = excluded.size,
             digest = excluded.digest,
             checksum = excluded.checksum,
             block_size = excluded.block_size,
             run_id = excluded.run_id,
             modified_at = excluded.modified_at,
             hashed_at = excluded.hashed_at`,
		res.Path,
		res.Size,
		res.Digest,
		nullableString(res.Checksum),
		sig.BlockSize,
		nullableString(runID),
		nullableTime(res.ModTime),
		formatTime(timeNow()),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", res.Path, err)
	}
	return nil
}

// Get returns the signature stored for path, or nil if there is none.
func (s *Store) Get(ctx context.Context, path string) (*Signature, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+signatureColumns+` FROM signatures WHERE path = ?`, path)
	sig, err := scanSignature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get signature: %w", err)
	}
	return sig, nil
}

// List returns catalogued signatures ordered by path.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Signature, error) {
	var (
		clauses []string
		args    []any
	)
	if opts.Prefix != "" {
		clauses = append(clauses, `instr(path, ?) = 1`)
		args = append(args, opts.Prefix)
	}
	if opts.Checksum != "" {
		clauses = append(clauses, `checksum = ?`)
		args = append(args, strings.ToLower(opts.Checksum))
	}
	if opts.BlockSize != 0 {
		clauses = append(clauses, `block_size = ?`)
		args = append(args, opts.BlockSize)
	}
	query := `SELECT ` + signatureColumns + ` FROM signatures`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY path`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list signatures: %w", err)
	}
	defer rows.Close()

	var out []*Signature
	for rows.Next() {
		sig, err := scanSignature(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		out = append(out, sig)
	}
	return out, rows.Err()
}

// Delete removes the signature for path and reports whether one existed.
func (s *Store) Delete(ctx context.Context, path string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM signatures WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("delete signature: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete signature: %w", err)
	}
	return n > 0, nil
}

// Prune removes signatures whose files no longer exist and returns the
// removed paths.
func (s *Store) Prune(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM signatures ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	var missing []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan path: %w", err)
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			missing = append(missing, path)
		}
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}

	for _, path := range missing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.Delete(ctx, path); err != nil {
			return nil, err
		}
	}
	return missing, nil
}

func scanSignature(scanner interface{ Scan(dest ...any) error }) (*Signature, error) {
	var (
		sig      Signature
		checksum sql.NullString
		runID    sql.NullString
		modified sql.NullString
		hashed   sql.NullString
	)
	if err := scanner.Scan(&sig.Path, &sig.Size, &sig.Digest, &checksum, &sig.BlockSize, &runID, &modified, &hashed); err != nil {
		return nil, err
	}
	sig.Checksum = checksum.String
	sig.RunID = runID.String
	sig.ModifiedAt = parseTime(modified)
	sig.HashedAt = parseTime(hashed)
	return &sig, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
