package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocate_PartialCoverage(t *testing.T) {
	// warehouse=100, incoming=0, per-order shipping=0, profit=50
	// → fillRatio 0.5, warehouse 50% covered, net profit 0.
	report := Allocate(d("50"), d("100"), d("0"), d("0"))

	assert.True(t, report.Warehouse.CoveragePct.Equal(d("50")), "coverage %s", report.Warehouse.CoveragePct)
	assert.True(t, report.Warehouse.Filled.Equal(d("50")))
	assert.True(t, report.NetProfit.IsZero())
	assert.True(t, report.Deficit.IsZero())
}

func TestAllocate_FullCoverageYieldsNetProfit(t *testing.T) {
	// totalCosts = 100 warehouse + (20 incoming + 30 per-order) = 150
	report := Allocate(d("200"), d("100"), d("20"), d("30"))

	assert.True(t, report.Warehouse.CoveragePct.Equal(d("100")))
	assert.True(t, report.Shipping.CoveragePct.Equal(d("100")))
	assert.True(t, report.Warehouse.Filled.Equal(d("100")))
	assert.True(t, report.Shipping.Filled.Equal(d("50")))
	assert.True(t, report.NetProfit.Equal(d("50")), "net %s", report.NetProfit)
}

func TestAllocate_CoverageCappedAtHundred(t *testing.T) {
	report := Allocate(d("1000"), d("10"), d("0"), d("0"))
	assert.True(t, report.Warehouse.CoveragePct.Equal(d("100")))
	assert.True(t, report.NetProfit.Equal(d("990")))
}

func TestAllocate_LossSurfacesDeficit(t *testing.T) {
	report := Allocate(d("-25"), d("100"), d("10"), d("0"))

	assert.True(t, report.Warehouse.CoveragePct.IsZero())
	assert.True(t, report.Shipping.CoveragePct.IsZero())
	assert.True(t, report.NetProfit.IsZero(), "losses must not report negative net profit")
	assert.True(t, report.Deficit.Equal(d("25")))
}

func TestAllocate_ZeroCostsAllProfitIsNet(t *testing.T) {
	report := Allocate(d("42"), d("0"), d("0"), d("0"))
	assert.True(t, report.NetProfit.Equal(d("42")))
	assert.True(t, report.Warehouse.CoveragePct.IsZero())
}

func TestAllocate_Idempotent(t *testing.T) {
	first := Allocate(d("75.50"), d("120"), d("15.25"), d("9.45"))
	second := Allocate(d("75.50"), d("120"), d("15.25"), d("9.45"))
	assert.Equal(t, first, second)
}
