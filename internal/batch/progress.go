package batch

// ProgressInterval is how many rows pass between progress reports.
const ProgressInterval = 10

const percentMultiplier = 100

// Progress is a snapshot of a running batch.
type Progress struct {
	Processed int // rows visited, including failures
	Succeeded int
	Failed    int
	Total     int
}

// Percent returns the share of rows visited, 0-100.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.Total) * percentMultiplier
}

// ProgressFunc receives progress snapshots.
type ProgressFunc func(Progress)

// due reports whether a progress report is owed after visiting n of total rows.
func due(n, total int) bool {
	return n%ProgressInterval == 0 || n == total
}
