package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// maxCandidates caps how many shipping options the selector returns.
const maxCandidates = 2

// CheapestOptions returns up to two shipping options able to carry the
// given total weight, cheapest first. Ties keep rate-table order (stable
// sort). An empty slice means no carrier tier can take the shipment; the
// caller must treat that as "no shipping cost available", not an error.
func CheapestOptions(totalWeightKg decimal.Decimal) []ShippingOption {
	var qualifying []ShippingOption
	for _, opt := range rateTable {
		if totalWeightKg.LessThanOrEqual(opt.MaxWeightKg) {
			qualifying = append(qualifying, opt)
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].Price.LessThan(qualifying[j].Price)
	})

	if len(qualifying) > maxCandidates {
		qualifying = qualifying[:maxCandidates]
	}
	return qualifying
}

// FindOption looks up a carrier/price pair in the candidate list computed
// for the given weight. Used to validate a client-submitted shipping
// selection against what the rate table actually offers for the shipment.
func FindOption(totalWeightKg decimal.Decimal, carrier string, price decimal.Decimal) (ShippingOption, bool) {
	for _, opt := range CheapestOptions(totalWeightKg) {
		if opt.Carrier == carrier && opt.Price.Equal(price) {
			return opt, true
		}
	}
	return ShippingOption{}, false
}
