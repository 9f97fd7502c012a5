package aircraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A320", "A320"},
		{"  a321 ", "A321"},
		{"B737-800", "B737-800"},
		{"B737", "B737-800"},
		{"A320NEO", "A320"},
		{"B777-300ER", "B777-300ER"},
		{"B787", "B787-9"},
		{"CESSNA", DefaultType},
		{"", DefaultType},
		{"   ", DefaultType},
		{"default", DefaultType},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Lookup(tc.input).Type)
		})
	}
}

func TestLookup_DefaultProfile(t *testing.T) {
	f := Lookup("ZZZ9")
	assert.Equal(t, 3.0, f.FuelBurnCruise)
	assert.Equal(t, 3.16, f.EFCO2)
}

func TestTypes_ExcludesDefault(t *testing.T) {
	types := Types()
	assert.Len(t, types, 10)
	assert.NotContains(t, types, DefaultType)
	assert.Equal(t, "A320", types[0])
	assert.Equal(t, "A380", types[len(types)-1])
}

func TestCompare(t *testing.T) {
	rows := Compare([]string{"B747-400", "A320", "unknown", "A320"})
	assert.Len(t, rows, 3)

	assert.Equal(t, "B747-400", rows[0].ResolvedType)
	assert.Equal(t, 12.0, rows[0].FuelBurnCruise)
	assert.Equal(t, 0.55, rows[0].ContrailProbability)

	assert.Equal(t, "A320", rows[1].ResolvedType)
	assert.Equal(t, "unknown", rows[2].Requested)
	assert.Equal(t, DefaultType, rows[2].ResolvedType)
}
