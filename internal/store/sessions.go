package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"intervue/internal/interview"
)

// SaveSessions writes the full session list as JSON snapshots, one row
// per session. seq preserves creation order across restarts. The write
// is transactional: either the whole list lands or none of it.
func (s *Store) SaveSessions(ctx context.Context, sessions []*interview.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, sess := range sessions {
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session %s: %w", sess.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sessions (id, seq, data, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET seq = excluded.seq, data = excluded.data, updated_at = excluded.updated_at`,
			sess.ID, i, string(data), now)
		if err != nil {
			return fmt.Errorf("upsert session %s: %w", sess.ID, err)
		}
	}

	return tx.Commit()
}

// LoadSessions reads all stored sessions in their original creation
// order. Rows that fail to decode are skipped rather than aborting the
// load; one corrupt snapshot should not take the rest down with it.
func (s *Store) LoadSessions(ctx context.Context) ([]*interview.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, data FROM sessions ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []*interview.Session
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		var sess interview.Session
		if err := json.Unmarshal([]byte(data), &sess); err != nil {
			continue
		}
		out = append(out, &sess)
	}
	return out, rows.Err()
}
