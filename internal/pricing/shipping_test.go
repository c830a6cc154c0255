package pricing

import "testing"

func f(v float64) *float64 { return &v }

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name string
		city string
		lat  *float64
		lon  *float64
		want int64
	}{
		{"kuningan city", "Kuningan", nil, nil, 0},
		{"kuningan lowercase", "kuningan", nil, nil, 0},
		{"kuningan substring", "Kabupaten KUNINGAN", nil, nil, 0},
		{"other city no coords", "Jakarta", nil, nil, FlatShippingFee},
		{"inside service area", "Cirebon", f(-6.98), f(108.48), 0},
		{"lat edge min", "Jakarta", f(-7.15), f(108.5), 0},
		{"lat edge max", "Jakarta", f(-6.75), f(108.5), 0},
		{"lon edge min", "Jakarta", f(-7.0), f(108.25), 0},
		{"lon edge max", "Jakarta", f(-7.0), f(108.75), 0},
		{"north of area", "Jakarta", f(-6.5), f(108.5), FlatShippingFee},
		{"south of area", "Jakarta", f(-7.3), f(108.5), FlatShippingFee},
		{"west of area", "Jakarta", f(-7.0), f(107.9), FlatShippingFee},
		{"east of area", "Jakarta", f(-7.0), f(109.1), FlatShippingFee},
		{"lat only is not enough", "Jakarta", f(-7.0), nil, FlatShippingFee},
		{"empty city no coords", "", nil, nil, FlatShippingFee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingCost(tt.city, tt.lat, tt.lon); got != tt.want {
				t.Fatalf("ShippingCost(%q, %v, %v) = %d, want %d", tt.city, tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}
