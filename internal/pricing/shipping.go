// Package pricing holds the order pricing rules: the shipping fee policy
// and the simulated bank-transfer virtual accounts.
package pricing

import "strings"

// FlatShippingFee is charged outside the free-delivery service area, in rupiah.
const FlatShippingFee int64 = 50000

// Free-delivery service area around Kuningan, West Java.
const (
	areaLatMin = -7.15
	areaLatMax = -6.75
	areaLonMin = 108.25
	areaLonMax = 108.75
)

// ShippingCost returns the delivery fee for a destination. Delivery is free
// when the city name contains "kuningan" or the coordinates fall inside the
// service area; otherwise the flat fee applies.
func ShippingCost(city string, lat, lon *float64) int64 {
	if strings.Contains(strings.ToLower(city), "kuningan") {
		return 0
	}
	if lat != nil && lon != nil && inServiceArea(*lat, *lon) {
		return 0
	}
	return FlatShippingFee
}

func inServiceArea(lat, lon float64) bool {
	return lat >= areaLatMin && lat <= areaLatMax &&
		lon >= areaLonMin && lon <= areaLonMax
}
