package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheapestOptions_SortedAndQualifying(t *testing.T) {
	weights := []string{"0.2", "1", "2", "3", "5", "10", "20", "25", "31.5"}

	for _, w := range weights {
		weight := decimal.RequireFromString(w)
		opts := CheapestOptions(weight)

		assert.LessOrEqual(t, len(opts), 2, "weight %s", w)
		for _, opt := range opts {
			assert.True(t, weight.LessThanOrEqual(opt.MaxWeightKg),
				"weight %s offered %s %s with max %s", w, opt.Carrier, opt.PackageName, opt.MaxWeightKg)
		}
		if len(opts) == 2 {
			assert.True(t, opts[0].Price.LessThanOrEqual(opts[1].Price))
		}
	}
}

func TestCheapestOptions_LightParcel(t *testing.T) {
	opts := CheapestOptions(decimal.RequireFromString("0.5"))
	require.Len(t, opts, 2)

	// Hermes Päckchen (3.70) beats DHL Päckchen S (3.99).
	assert.Equal(t, "Hermes", opts[0].Carrier)
	assert.Equal(t, "3.7", opts[0].Price.String())
	assert.Equal(t, "DHL", opts[1].Carrier)
	assert.Equal(t, "3.99", opts[1].Price.String())
}

func TestCheapestOptions_OverweightReturnsEmpty(t *testing.T) {
	opts := CheapestOptions(decimal.RequireFromString("40"))
	assert.Empty(t, opts)
}

func TestCheapestOptions_TwoKilogramParcel(t *testing.T) {
	// At 2kg the Hermes Päckchen (max 1kg) drops out: DHL Päckchen S wins,
	// and the 4.50 tie between Hermes S-Paket and GLS Paket XS resolves to
	// Hermes by rate table order.
	opts := CheapestOptions(decimal.RequireFromString("2"))
	require.Len(t, opts, 2)
	assert.Equal(t, "DHL", opts[0].Carrier)
	assert.Equal(t, "3.99", opts[0].Price.String())
	assert.Equal(t, "Hermes", opts[1].Carrier)
	assert.Equal(t, "S-Paket", opts[1].PackageName)
}

func TestFindOption(t *testing.T) {
	weight := decimal.RequireFromString("0.5")

	_, ok := FindOption(weight, "Hermes", decimal.RequireFromString("3.70"))
	assert.True(t, ok)

	// Right carrier, wrong price.
	_, ok = FindOption(weight, "Hermes", decimal.RequireFromString("1.00"))
	assert.False(t, ok)

	// Option exists in the table but cannot carry the weight.
	_, ok = FindOption(decimal.RequireFromString("30"), "Hermes", decimal.RequireFromString("3.70"))
	assert.False(t, ok)
}
