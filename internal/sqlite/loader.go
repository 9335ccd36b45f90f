// This file implements JSONL loading for startup and import.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

// loadAllJSONL reads each kind's JSONL file from dataDir and inserts the
// records into the documents table. Loading is transactional: all succeed
// or the database remains empty. Malformed lines and records without an
// id are skipped. Unknown fields are kept verbatim in the stored body.
func loadAllJSONL(db *sql.DB, dataDir string, logger *slog.Logger) (int, error) {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0
	for _, kind := range types.StandardKinds {
		path := jsonlPath(dataDir, kind)
		records, skipped, err := readJSONL(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", kind, err)
		}
		if skipped > 0 {
			logger.Warn("sqlite: skipped malformed lines", "kind", kind, "count", skipped)
		}
		if len(records) == 0 {
			continue
		}

		n, err := upsertRecords(ctx, tx, kind, records, false, logger)
		if err != nil {
			return 0, fmt.Errorf("loading %s: %w", kind, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return total, nil
}

// upsertRecords writes records of one kind inside tx. When assignIDs is
// set, records lacking an id get a new UUID v7 written into their body;
// otherwise they are skipped. Records must be JSON objects.
func upsertRecords(ctx context.Context, tx *sql.Tx, kind string, records []json.RawMessage, assignIDs bool, logger *slog.Logger) (int, error) {
	stmt, err := tx.PrepareContext(ctx, upsertDocument)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	n := 0
	for _, rec := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rec, &fields); err != nil || fields == nil {
			logger.Warn("sqlite: skipping non-object record", "kind", kind)
			continue
		}

		id := recordID(fields)
		if id == "" {
			if !assignIDs {
				logger.Warn("sqlite: skipping record without id", "kind", kind)
				continue
			}
			id = newUUID()
			fields["id"], _ = json.Marshal(id)
			if rec, err = json.Marshal(fields); err != nil {
				return n, fmt.Errorf("encoding %s record: %w", kind, err)
			}
		}

		if _, err := stmt.ExecContext(ctx, kind, id, string(rec), now, now); err != nil {
			return n, fmt.Errorf("upserting %s %s: %w", kind, id, err)
		}
		n++
	}
	return n, nil
}

// recordID extracts the string id of a decoded record, or "".
func recordID(fields map[string]json.RawMessage) string {
	raw, ok := fields["id"]
	if !ok {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return id
}
