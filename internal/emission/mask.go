package emission

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// PresenceThreshold is the value a mask cell must exceed to count as contrail.
const PresenceThreshold = 0.5

var (
	ErrEmptyMask  = errors.New("emission: contrail mask has no cells")
	ErrRaggedMask = errors.New("emission: contrail mask rows differ in length")
	ErrMaskValue  = errors.New("emission: contrail mask value outside [0,1]")
)

// ContrailMask is an immutable 2-D grid of contrail occupancy or probability
// values in [0,1].
type ContrailMask struct {
	rows, cols int
	cells      []float64
}

// NewContrailMask copies grid into a mask. Every row must have the same
// length and every value must lie in [0,1].
func NewContrailMask(grid [][]float64) (*ContrailMask, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyMask
	}
	rows, cols := len(grid), len(grid[0])
	cells := make([]float64, 0, rows*cols)
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedMask, r, len(row), cols)
		}
		for c, v := range row {
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, fmt.Errorf("%w: (%d,%d)=%v", ErrMaskValue, r, c, v)
			}
		}
		cells = append(cells, row...)
	}
	return &ContrailMask{rows: rows, cols: cols, cells: cells}, nil
}

// Rows returns the grid height.
func (m *ContrailMask) Rows() int { return m.rows }

// Cols returns the grid width.
func (m *ContrailMask) Cols() int { return m.cols }

// At returns the value at row r, column c.
func (m *ContrailMask) At(r, c int) float64 { return m.cells[r*m.cols+c] }

// PresentCells counts cells above PresenceThreshold.
func (m *ContrailMask) PresentCells() int {
	n := 0
	for _, v := range m.cells {
		if v > PresenceThreshold {
			n++
		}
	}
	return n
}

// MeanPresentIntensity is the mean value of present cells, or 0 if none.
func (m *ContrailMask) MeanPresentIntensity() float64 {
	var sum float64
	n := 0
	for _, v := range m.cells {
		if v > PresenceThreshold {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CoveragePercent is the share of the tile covered by contrail cells.
func (m *ContrailMask) CoveragePercent() float64 {
	return float64(m.PresentCells()) / float64(len(m.cells)) * 100
}

// ReadMaskCSV parses a comma-separated numeric grid, one mask row per line.
func ReadMaskCSV(r io.Reader) (*ContrailMask, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("emission: read mask: %w", err)
	}

	grid := make([][]float64, 0, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("emission: mask line %d col %d: %w", i+1, j+1, err)
			}
			row[j] = v
		}
		grid = append(grid, row)
	}
	return NewContrailMask(grid)
}
