// Package telemetry records operational events emitted by the simulation.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/ashfall.world/internal/storage"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, event storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if event.RecordedAt.IsZero() {
		if e.clock == nil {
			event.RecordedAt = time.Now().UTC()
		} else {
			event.RecordedAt = e.clock().UTC()
		}
	}
	return e.store.AppendTelemetry(ctx, event)
}
