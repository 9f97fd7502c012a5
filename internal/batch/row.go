package batch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/trailsync/emission-engine/internal/aircraft"
	"github.com/trailsync/emission-engine/internal/model"
)

// Row defaults.
const (
	DefaultSpeedMS  = 230.0
	DefaultCallsign = "UNKNOWN"
)

// Input column names.
const (
	ColLat1     = "latitude_1"
	ColLon1     = "longitude_1"
	ColLat2     = "latitude_2"
	ColLon2     = "longitude_2"
	ColAlt1     = "altitude_1"
	ColAlt2     = "altitude_2"
	ColSpeed    = "avg_ground_speed_ms"
	ColCallsign = "callsign"
	ColTypeCode = "typecode"
	ColRecordID = "record_id"
	ColICAO24   = "icao24"
)

var requiredColumns = []string{ColLat1, ColLon1, ColLat2, ColLon2}

var (
	ErrMissingInput  = errors.New("batch: input table is required")
	ErrMissingColumn = errors.New("batch: required column missing")
	ErrInvalidRow    = errors.New("batch: invalid row")
)

// RowError describes one skipped input row.
type RowError struct {
	Index    int // 0-based data row
	Line     int // 1-based line in the input file
	RecordID string
	Callsign string
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (line %d, record %s, callsign %s): %v", e.Index, e.Line, e.RecordID, e.Callsign, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// header maps column names to field positions.
type header map[string]int

func newHeader(cols []string) (header, error) {
	h := make(header, len(cols))
	for i, c := range cols {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, req := range requiredColumns {
		if _, ok := h[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}
	return h, nil
}

// row is one input record addressed by column name.
type row struct {
	h      header
	fields []string
	line   int   // 1-based line where the record starts
	err    error // tokenization failure, fields is nil
}

// text returns the trimmed value of col and whether it is non-null.
func (r row) text(col string) (string, bool) {
	i, ok := r.h[col]
	if !ok || i >= len(r.fields) {
		return "", false
	}
	v := strings.TrimSpace(r.fields[i])
	switch strings.ToLower(v) {
	case "", "nan", "null", "none":
		return "", false
	}
	return v, true
}

func (r row) textOr(col, def string) string {
	if v, ok := r.text(col); ok {
		return v
	}
	return def
}

func (r row) number(col string, required bool, def float64) (float64, error) {
	v, ok := r.text(col)
	if !ok {
		if required {
			return 0, fmt.Errorf("%w: %s is missing", ErrInvalidRow, col)
		}
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidRow, col, v)
	}
	return f, nil
}

// flight is a parsed batch row.
type flight struct {
	recordID string
	callsign string
	icao24   string
	typeCode string
	track    model.FlightTrack
}

func parseFlight(r row, index int) (flight, error) {
	f := flight{
		recordID: r.textOr(ColRecordID, strconv.Itoa(index)),
		callsign: r.textOr(ColCallsign, DefaultCallsign),
		icao24:   r.textOr(ColICAO24, ""),
		typeCode: r.textOr(ColTypeCode, aircraft.DefaultType),
	}

	var vals [6]float64
	specs := []struct {
		col      string
		required bool
		def      float64
	}{
		{ColLat1, true, 0},
		{ColLon1, true, 0},
		{ColLat2, true, 0},
		{ColLon2, true, 0},
		{ColAlt1, false, 0},
		{ColAlt2, false, 0},
	}
	for i, s := range specs {
		v, err := r.number(s.col, s.required, s.def)
		if err != nil {
			return f, err
		}
		vals[i] = v
	}
	speed, err := r.number(ColSpeed, false, DefaultSpeedMS)
	if err != nil {
		return f, err
	}

	lat1, lon1, lat2, lon2, alt1, alt2 := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	if math.Abs(lat1) > 90 || math.Abs(lat2) > 90 || math.Abs(lon1) > 180 || math.Abs(lon2) > 180 {
		return f, fmt.Errorf("%w: coordinates out of range", ErrInvalidRow)
	}

	f.track, err = model.NewFlightTrack([]model.Waypoint{
		{Latitude: lat1, Longitude: lon1, BaroAltitude: alt1, Velocity: speed, Callsign: f.callsign},
		{Latitude: lat2, Longitude: lon2, BaroAltitude: alt2, Velocity: speed, Callsign: f.callsign},
	})
	return f, err
}
