package calc

import "strings"

// IDVInput carries the raw form fields for an insured-declared-value lookup.
type IDVInput struct {
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	VehicleAge string `json:"vehicle_age"`
}

// IDVResult reports the depreciated insurable value of a vehicle.
type IDVResult struct {
	BasePrice       int      `json:"base_price"`
	DepreciationPct float64  `json:"depreciation_pct"`
	IDV             int      `json:"idv"`
	AssumedDefaults []string `json:"assumed_defaults,omitempty"`
}

const defaultVehiclePrice = 450000

// Ex-showroom reference prices keyed by "brand model" in lowercase.
var vehiclePrices = map[string]float64{
	"maruti swift":          650000,
	"maruti baleno":         750000,
	"maruti wagonr":         600000,
	"hyundai i20":           800000,
	"hyundai creta":         1200000,
	"tata nexon":            1000000,
	"tata punch":            700000,
	"mahindra xuv700":       1600000,
	"honda city":            1250000,
	"toyota innova":         2000000,
	"hero splendor":         78000,
	"honda activa":          90000,
	"bajaj pulsar":          130000,
	"tvs apache":            140000,
	"royal enfield classic": 210000,
}

// IDV looks up the base price for a brand/model pair (falling back to a
// default when unmatched) and applies the age-banded depreciation schedule.
func IDV(in IDVInput) IDVResult {
	var p parser
	age := p.FloatOr("vehicle_age", in.VehicleAge, 0)

	key := strings.ToLower(strings.TrimSpace(in.Brand) + " " + strings.TrimSpace(in.Model))
	price, ok := vehiclePrices[key]
	if !ok {
		price = defaultVehiclePrice
		p.assumed = append(p.assumed, "base_price")
	}

	dep := depreciationPct(age)

	return IDVResult{
		BasePrice:       money(price),
		DepreciationPct: dep,
		IDV:             money(price * (1 - dep/100)),
		AssumedDefaults: p.Assumed(),
	}
}

// Standard age-banded depreciation schedule.
func depreciationPct(age float64) float64 {
	switch {
	case age <= 0.5:
		return 5
	case age <= 1:
		return 15
	case age <= 2:
		return 20
	case age <= 3:
		return 30
	case age <= 4:
		return 40
	case age <= 5:
		return 50
	default:
		return 60
	}
}
