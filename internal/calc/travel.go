package calc

// TravelInput carries the raw form fields for a travel cover quote.
type TravelInput struct {
	TripDays        string   `json:"trip_days"`
	Age             string   `json:"age"`
	Destination     string   `json:"destination"`
	MedicalCover    string   `json:"medical_cover"`
	AdventureSports bool     `json:"adventure_sports"`
	PreExisting     bool     `json:"pre_existing"`
	AddOns          []string `json:"add_ons"`
}

// TravelBreakdown reports the rounded components of a travel quote.
type TravelBreakdown struct {
	BasePremium     int      `json:"base_premium"`
	MedicalCoverFee int      `json:"medical_cover_fee"`
	AddOnPremium    int      `json:"add_on_premium"`
	TotalPremium    int      `json:"total_premium"`
	AssumedDefaults []string `json:"assumed_defaults,omitempty"`
}

const (
	travelFlatBase = 400
	travelPerDay   = 40
)

var travelAddOns = map[string]addOn{
	"baggage_cover":     {flat: 250},
	"trip_cancellation": {pctOfPrimary: 0.15},
	"home_burglary":     {flat: 180},
}

// TravelPremium computes a single-trip travel quote. The medical cover fee
// is a fixed lookup by sum band and is not subject to the base adjustments.
func TravelPremium(in TravelInput) TravelBreakdown {
	var p parser
	days := p.FloatOr("trip_days", in.TripDays, defaultTravelTripDays)
	age := p.FloatOr("age", in.Age, 0)
	medical := p.FloatOr("medical_cover", in.MedicalCover, 0)

	if days < 0 {
		days = 0
	}

	base := travelFlatBase + days*travelPerDay
	base *= travelAgeFactor(age)
	base *= destinationFactor(in.Destination)
	if in.AdventureSports {
		base *= 1.50
	}
	if in.PreExisting {
		base *= 1.40
	}

	fee := medicalCoverFee(medical)
	addOns := addOnTotal(travelAddOns, in.AddOns, base)

	return TravelBreakdown{
		BasePremium:     money(base),
		MedicalCoverFee: money(fee),
		AddOnPremium:    money(addOns),
		TotalPremium:    money(base + fee + addOns),
		AssumedDefaults: p.Assumed(),
	}
}

func travelAgeFactor(age float64) float64 {
	switch {
	case age > 70:
		return 2.00
	case age > 60:
		return 1.60
	case age > 40:
		return 1.20
	default:
		return 1.00
	}
}

func destinationFactor(dest string) float64 {
	switch dest {
	case "worldwide_incl_us":
		return 1.50
	case "worldwide":
		return 1.30
	case "domestic":
		return 0.70
	default:
		return 1.00
	}
}

func medicalCoverFee(sum float64) float64 {
	switch {
	case sum <= 50000:
		return 0
	case sum <= 100000:
		return 250
	default:
		return 600
	}
}
