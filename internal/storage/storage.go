// Package storage defines the persistence interfaces for simulation state.
//
// A world record holds the serialized technology graph plus run metadata.
// The journal is an append-only log of event lifecycle entries, and the
// telemetry store collects loosely structured observability events.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// WorldRecord is a persisted snapshot of a simulation run.
type WorldRecord struct {
	ID        string
	Name      string
	Seed      int64
	Graph     []byte // JSON-encoded technology graph
	Tick      int64
	Score     float64
	Outcome   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JournalEntry records one lifecycle transition of a world event.
type JournalEntry struct {
	ID         int64
	WorldID    string
	EventID    int64
	Kind       string
	Type       string
	State      string
	Magnitude  float64
	Remaining  float64
	RecordedAt time.Time
}

// TelemetryEvent is a loosely structured observability record.
type TelemetryEvent struct {
	ID         int64
	WorldID    string
	Name       string
	Attributes map[string]string
	RecordedAt time.Time
}

// WorldStore persists world snapshots.
type WorldStore interface {
	PutWorld(ctx context.Context, record WorldRecord) error
	GetWorld(ctx context.Context, id string) (WorldRecord, error)
	ListWorlds(ctx context.Context) ([]WorldRecord, error)
	DeleteWorld(ctx context.Context, id string) error
}

// JournalStore appends and reads event lifecycle entries.
type JournalStore interface {
	AppendJournal(ctx context.Context, entry JournalEntry) (int64, error)
	ListJournal(ctx context.Context, worldID string) ([]JournalEntry, error)
}

// TelemetryStore collects observability events.
type TelemetryStore interface {
	AppendTelemetry(ctx context.Context, event TelemetryEvent) error
	ListTelemetry(ctx context.Context, worldID string) ([]TelemetryEvent, error)
}

// Store is the full persistence surface used by the simulation commands.
type Store interface {
	WorldStore
	JournalStore
	TelemetryStore
	Close() error
}
