// Package store holds the flight records produced by a batch run.
package store

import (
	"context"
	"errors"

	"github.com/trailsync/emission-engine/internal/model"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("store: record not found")

// RecordStore is an append-only ledger of processed flights.
type RecordStore interface {
	// Append records one processed flight. Records are never modified.
	Append(ctx context.Context, rec model.FlightRecord) error

	// Get returns the first record with the given record id.
	Get(ctx context.Context, recordID string) (model.FlightRecord, error)

	// List returns all records in insertion order.
	List(ctx context.Context) ([]model.FlightRecord, error)

	// TopEmitters returns up to n records with the highest total CO2.
	TopEmitters(ctx context.Context, n int) ([]model.FlightRecord, error)

	// Len returns the number of stored records.
	Len() int
}
