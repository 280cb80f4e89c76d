// JSONL snapshot export with atomic writes.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/christianbiango/team-up/pkg/types"
)

// snapshotTables maps SQLite tables to their export file names.
var snapshotTables = map[string]string{
	"events":         "events.jsonl",
	"participations": "participations.jsonl",
	"profiles":       "profiles.jsonl",
	types.TableQueue: "sync_queue.jsonl",
}

// ExportSnapshot writes every table as a JSONL file under dir, one JSON
// object per row. Creates dir if needed. Files are written atomically so a
// crash mid-export never leaves a truncated snapshot.
func (b *Backend) ExportSnapshot(dir string) error {
	if _, err := b.handle(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	for table, fileName := range snapshotTables {
		records, err := b.dumpTable(table)
		if err != nil {
			return err
		}
		if err := writeJSONL(filepath.Join(dir, fileName), records); err != nil {
			return fmt.Errorf("exporting %s: %w", table, err)
		}
	}
	return nil
}

// dumpTable reads all rows from a table as column-keyed JSON objects.
func (b *Backend) dumpTable(table string) ([]json.RawMessage, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("querying %s for snapshot: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for %s: %w", table, err)
	}

	var records []json.RawMessage
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			rec[col] = values[i]
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s row: %w", table, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s for snapshot: %w", table, err)
	}
	return records, nil
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

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
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
