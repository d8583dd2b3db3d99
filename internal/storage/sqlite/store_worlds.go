package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/louisbranch/ashfall.world/internal/storage"
)

// PutWorld inserts or replaces a world snapshot.
func (s *Store) PutWorld(ctx context.Context, record storage.WorldRecord) error {
	if record.ID == "" {
		return fmt.Errorf("world id is required")
	}

	now := time.Now().UTC()
	created := record.CreatedAt
	if created.IsZero() {
		created = now
	}
	updated := record.UpdatedAt
	if updated.IsZero() {
		updated = now
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO worlds (id, name, seed, graph, tick, score, outcome, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    seed = excluded.seed,
    graph = excluded.graph,
    tick = excluded.tick,
    score = excluded.score,
    outcome = excluded.outcome,
    updated_at = excluded.updated_at
`,
		record.ID,
		record.Name,
		record.Seed,
		record.Graph,
		record.Tick,
		record.Score,
		record.Outcome,
		created.UnixMilli(),
		updated.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put world: %w", err)
	}
	return nil
}

// GetWorld loads a world snapshot by id.
func (s *Store) GetWorld(ctx context.Context, id string) (storage.WorldRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, seed, graph, tick, score, outcome, created_at, updated_at
FROM worlds WHERE id = ?
`, id)

	record, err := scanWorld(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.WorldRecord{}, storage.ErrNotFound
		}
		return storage.WorldRecord{}, fmt.Errorf("get world: %w", err)
	}
	return record, nil
}

// ListWorlds returns all world snapshots ordered by creation time.
func (s *Store) ListWorlds(ctx context.Context) ([]storage.WorldRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, seed, graph, tick, score, outcome, created_at, updated_at
FROM worlds ORDER BY created_at, id
`)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	defer rows.Close()

	var records []storage.WorldRecord
	for rows.Next() {
		record, err := scanWorld(rows)
		if err != nil {
			return nil, fmt.Errorf("scan world: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worlds: %w", err)
	}
	return records, nil
}

// DeleteWorld removes a world snapshot. Missing ids return ErrNotFound.
func (s *Store) DeleteWorld(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM worlds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete world: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete world rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorld(row rowScanner) (storage.WorldRecord, error) {
	var record storage.WorldRecord
	var createdAt, updatedAt int64
	if err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Seed,
		&record.Graph,
		&record.Tick,
		&record.Score,
		&record.Outcome,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.WorldRecord{}, err
	}
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	record.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return record, nil
}
