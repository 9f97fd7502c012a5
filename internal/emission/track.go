package emission

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/trailsync/emission-engine/internal/model"
)

// ErrTrackColumn is returned when a track table lacks a required column.
var ErrTrackColumn = errors.New("emission: track column missing")

var trackColumns = []string{"latitude", "longitude", "baro_altitude", "velocity"}

// ReadTrackCSV parses a flight track table with latitude, longitude,
// baro_altitude and velocity columns and an optional callsign column.
func ReadTrackCSV(r io.Reader) (model.FlightTrack, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return model.FlightTrack{}, fmt.Errorf("emission: read track header: %w", err)
	}
	idx := make(map[string]int, len(head))
	for i, h := range head {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range trackColumns {
		if _, ok := idx[c]; !ok {
			return model.FlightTrack{}, fmt.Errorf("%w: %s", ErrTrackColumn, c)
		}
	}
	csIdx, hasCallsign := idx["callsign"]

	var wps []model.Waypoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.FlightTrack{}, fmt.Errorf("emission: read track: %w", err)
		}

		var vals [4]float64
		for i, c := range trackColumns {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[c]]), 64)
			if err != nil {
				return model.FlightTrack{}, fmt.Errorf("emission: track line %d %s: %w", line, c, err)
			}
			vals[i] = v
		}
		wp := model.Waypoint{Latitude: vals[0], Longitude: vals[1], BaroAltitude: vals[2], Velocity: vals[3]}
		if hasCallsign {
			wp.Callsign = strings.TrimSpace(rec[csIdx])
		}
		wps = append(wps, wp)
	}
	return model.NewFlightTrack(wps)
}
