// This file provides JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

// jsonlPath returns the JSONL file of one kind inside dataDir.
func jsonlPath(dataDir, kind string) string {
	return filepath.Join(dataDir, kind+".jsonl")
}

// initJSONLFiles creates an empty JSONL file for every kind that has none.
func initJSONLFiles(dataDir string) error {
	for _, kind := range types.StandardKinds {
		path := jsonlPath(dataDir, kind)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped and counted.
func readJSONL(path string) ([]json.RawMessage, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, skipped, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// persistKindLocked rewrites the JSONL file of one kind from the database.
// The caller must hold b.mu.
func (b *Backend) persistKindLocked(ctx context.Context, kind string) error {
	records, err := b.recordsLocked(ctx, kind)
	if err != nil {
		return err
	}
	return writeJSONL(jsonlPath(b.config.DataDir, kind), records)
}

// recordsLocked returns the raw JSON bodies of one kind in insertion order.
func (b *Backend) recordsLocked(ctx context.Context, kind string) ([]json.RawMessage, error) {
	rows, err := b.db.QueryContext(ctx, selectDocuments, kind)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", kind, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}
		records = append(records, json.RawMessage(data))
	}
	return records, rows.Err()
}

// ExportJSONL writes every record of one kind to path atomically and
// returns the number written.
func (b *Backend) ExportJSONL(ctx context.Context, kind, path string) (int, error) {
	if !types.IsKind(kind) {
		return 0, fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrDetached
	}

	records, err := b.recordsLocked(ctx, kind)
	if err != nil {
		return 0, err
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, fmt.Errorf("exporting %s: %w", kind, err)
	}
	return len(records), nil
}

// ImportJSONL upserts every record of a JSONL file into one kind and
// returns the number imported. Records without an id receive a fresh
// UUID v7; malformed lines are skipped. The import is transactional.
func (b *Backend) ImportJSONL(ctx context.Context, kind, path string) (int, error) {
	if !types.IsKind(kind) {
		return 0, fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
	}
	records, skipped, err := readJSONL(path)
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		b.logger.Warn("sqlite: skipped malformed lines", "path", path, "count", skipped)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return 0, types.ErrDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := upsertRecords(ctx, tx, kind, records, true, b.logger)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	if err := b.persistKindLocked(ctx, kind); err != nil {
		return n, fmt.Errorf("persisting %s: %w", kind, err)
	}
	return n, nil
}
