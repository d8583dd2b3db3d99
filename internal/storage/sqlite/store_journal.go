package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/ashfall.world/internal/storage"
)

// AppendJournal writes one lifecycle entry and returns its row id.
func (s *Store) AppendJournal(ctx context.Context, entry storage.JournalEntry) (int64, error) {
	if entry.WorldID == "" {
		return 0, fmt.Errorf("journal world id is required")
	}

	recorded := entry.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
INSERT INTO journal (world_id, event_id, kind, type, state, magnitude, remaining, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		entry.WorldID,
		entry.EventID,
		entry.Kind,
		entry.Type,
		entry.State,
		entry.Magnitude,
		entry.Remaining,
		recorded.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("append journal: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal last insert id: %w", err)
	}
	return id, nil
}

// ListJournal returns all entries for a world in append order.
func (s *Store) ListJournal(ctx context.Context, worldID string) ([]storage.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, world_id, event_id, kind, type, state, magnitude, remaining, recorded_at
FROM journal WHERE world_id = ? ORDER BY id
`, worldID)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var entries []storage.JournalEntry
	for rows.Next() {
		var entry storage.JournalEntry
		var recordedAt int64
		if err := rows.Scan(
			&entry.ID,
			&entry.WorldID,
			&entry.EventID,
			&entry.Kind,
			&entry.Type,
			&entry.State,
			&entry.Magnitude,
			&entry.Remaining,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.RecordedAt = time.UnixMilli(recordedAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}
