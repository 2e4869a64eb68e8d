package durable

import (
	"context"
	"time"
)

const (
	CollectionProperties      = "properties"
	CollectionSavedProperties = "saved_properties"
)

// Latency scales the nominal delay of every access-service call. A zero
// scale disables the simulated round trip.
type Latency struct {
	Scale float64
}

func (l Latency) Duration(nominal time.Duration) time.Duration {
	return time.Duration(float64(nominal) * l.Scale)
}

func (l Latency) Wait(ctx context.Context, nominal time.Duration) error {
	d := l.Duration(nominal)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type Database struct {
	properties      *Collection
	savedProperties *Collection
	latency         Latency
}

func NewDatabase(latency Latency) *Database {
	return &Database{
		properties:      NewCollection(CollectionProperties),
		savedProperties: NewCollection(CollectionSavedProperties),
		latency:         latency,
	}
}

func (db *Database) Properties() *Collection {
	return db.properties
}

func (db *Database) SavedProperties() *Collection {
	return db.savedProperties
}

// RoundTrip simulates the remote boundary in front of collection before an
// operation named by operation runs.
func (db *Database) RoundTrip(ctx context.Context, nominal time.Duration, collection, operation string) error {
	return db.latency.Wait(ctx, nominal)
}
