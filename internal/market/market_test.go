package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLookup_Seeds(t *testing.T) {
	tests := []struct {
		id       string
		price    int64
		currency string
	}{
		{EUETS, 95, "EUR"},
		{CORSIA, 20, "USD"},
		{China, 11, "CNY"},
		{UKETS, 55, "GBP"},
		{California, 32, "USD"},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			mk := Lookup(tc.id)
			assert.Equal(t, tc.id, mk.ID)
			assert.True(t, mk.PriceUSD.Equal(decimal.NewFromInt(tc.price)), "price %s", mk.PriceUSD)
			assert.Equal(t, tc.currency, mk.Currency)
			assert.True(t, Known(tc.id))
		})
	}
}

func TestLookup_UnknownFallsBackToEUETS(t *testing.T) {
	for _, id := range []string{"", "eu_ets", "NZ_ETS"} {
		assert.Equal(t, EUETS, Lookup(id).ID)
		assert.True(t, Price(id).Equal(decimal.NewFromInt(95)))
		assert.False(t, Known(id))
	}
}

func TestIDs_Order(t *testing.T) {
	assert.Equal(t, []string{EUETS, CORSIA, China, UKETS, California}, IDs())
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	assert.Equal(t, "EU Emissions Trading System", Lookup(EUETS).Name)
}
