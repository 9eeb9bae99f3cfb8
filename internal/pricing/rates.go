// Package pricing implements the order calculation core: shipping rate
// lookup, order weight/cost aggregation, per-order profit and the
// portfolio-level cost-coverage report shown on the admin calculator page.
// All functions are pure; callers load orders and stock and feed them in.
package pricing

import "github.com/shopspring/decimal"

// ShippingOption is one carrier package tier: a fixed price for shipments
// up to MaxWeightKg.
type ShippingOption struct {
	Carrier     string          `json:"carrier"`
	PackageName string          `json:"packageName"`
	Price       decimal.Decimal `json:"price"`
	MaxWeightKg decimal.Decimal `json:"maxWeightKg"`
}

// rateTable is the static carrier rate card. Order matters: ties on price
// are broken by table position.
var rateTable = []ShippingOption{
	{Carrier: "DHL", PackageName: "Päckchen S", Price: dec("3.99"), MaxWeightKg: dec("2")},
	{Carrier: "DHL", PackageName: "Paket 2kg", Price: dec("5.49"), MaxWeightKg: dec("2")},
	{Carrier: "DHL", PackageName: "Paket 5kg", Price: dec("6.99"), MaxWeightKg: dec("5")},
	{Carrier: "DHL", PackageName: "Paket 10kg", Price: dec("10.49"), MaxWeightKg: dec("10")},
	{Carrier: "DHL", PackageName: "Paket 31,5kg", Price: dec("19.99"), MaxWeightKg: dec("31.5")},
	{Carrier: "Hermes", PackageName: "Päckchen", Price: dec("3.70"), MaxWeightKg: dec("1")},
	{Carrier: "Hermes", PackageName: "S-Paket", Price: dec("4.50"), MaxWeightKg: dec("3")},
	{Carrier: "Hermes", PackageName: "M-Paket", Price: dec("5.95"), MaxWeightKg: dec("10")},
	{Carrier: "Hermes", PackageName: "L-Paket", Price: dec("9.95"), MaxWeightKg: dec("25")},
	{Carrier: "DPD", PackageName: "Classic S", Price: dec("4.90"), MaxWeightKg: dec("3")},
	{Carrier: "DPD", PackageName: "Classic M", Price: dec("5.90"), MaxWeightKg: dec("10")},
	{Carrier: "DPD", PackageName: "Classic L", Price: dec("9.90"), MaxWeightKg: dec("20")},
	{Carrier: "GLS", PackageName: "Paket XS", Price: dec("4.50"), MaxWeightKg: dec("2")},
	{Carrier: "GLS", PackageName: "Paket S", Price: dec("5.75"), MaxWeightKg: dec("5")},
	{Carrier: "GLS", PackageName: "Paket M", Price: dec("7.90"), MaxWeightKg: dec("10")},
	{Carrier: "GLS", PackageName: "Paket L", Price: dec("11.55"), MaxWeightKg: dec("31.5")},
}

// RateTable returns a copy of the carrier rate card.
func RateTable() []ShippingOption {
	out := make([]ShippingOption, len(rateTable))
	copy(out, rateTable)
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
