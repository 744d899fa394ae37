package store

import (
	"context"
	"encoding/json"
)

// RecordCollection is the persistence primitive: an ordered,
// append-only list of JSON records. Records are only ever added;
// nothing is updated or removed through this interface. Append must
// be atomic per call, so concurrent writers never lose each other's
// records.
type RecordCollection interface {
	// All returns every record in insertion order. A collection that
	// was never written to reads as empty, not as an error.
	All(ctx context.Context) ([]json.RawMessage, error)

	// Append adds one record to the end of the collection.
	Append(ctx context.Context, record json.RawMessage) error
}
