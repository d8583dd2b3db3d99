package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/ashfall.world/internal/storage"
)

// AppendTelemetry writes one observability event.
func (s *Store) AppendTelemetry(ctx context.Context, event storage.TelemetryEvent) error {
	if event.WorldID == "" {
		return fmt.Errorf("telemetry world id is required")
	}
	if event.Name == "" {
		return fmt.Errorf("telemetry event name is required")
	}

	attrs := event.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode telemetry attributes: %w", err)
	}

	recorded := event.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now().UTC()
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO telemetry (world_id, name, attributes, recorded_at)
VALUES (?, ?, ?, ?)
`,
		event.WorldID,
		event.Name,
		string(encoded),
		recorded.UnixMilli(),
	); err != nil {
		return fmt.Errorf("append telemetry: %w", err)
	}
	return nil
}

// ListTelemetry returns all events for a world in append order.
func (s *Store) ListTelemetry(ctx context.Context, worldID string) ([]storage.TelemetryEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, world_id, name, attributes, recorded_at
FROM telemetry WHERE world_id = ? ORDER BY id
`, worldID)
	if err != nil {
		return nil, fmt.Errorf("list telemetry: %w", err)
	}
	defer rows.Close()

	var events []storage.TelemetryEvent
	for rows.Next() {
		var event storage.TelemetryEvent
		var encoded string
		var recordedAt int64
		if err := rows.Scan(
			&event.ID,
			&event.WorldID,
			&event.Name,
			&encoded,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan telemetry event: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &event.Attributes); err != nil {
			return nil, fmt.Errorf("decode telemetry attributes: %w", err)
		}
		event.RecordedAt = time.UnixMilli(recordedAt).UTC()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry: %w", err)
	}
	return events, nil
}
