// Package batch computes emissions for a table of flights.
//
// Input is a CSV with one flight per row described by two waypoints:
//
//	latitude_1, longitude_1, latitude_2, longitude_2   required
//	altitude_1, altitude_2                             meters, default 0
//	avg_ground_speed_ms                                default 230
//	callsign                                           default UNKNOWN
//	typecode                                           default "default"
//	record_id, icao24
//
// Rows are folded one at a time. A row that cannot be parsed is logged,
// collected as a RowError and skipped; it never aborts the batch. A missing
// input table or a missing required column fails the whole run.
package batch
