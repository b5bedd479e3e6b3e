package calc

// HealthInput carries the raw form fields for a health cover quote.
type HealthInput struct {
	SumInsured  string   `json:"sum_insured"`
	Age         string   `json:"age"`
	City        string   `json:"city"`
	Smoker      bool     `json:"smoker"`
	PreExisting bool     `json:"pre_existing"`
	NCB         string   `json:"ncb"`
	AddOns      []string `json:"add_ons"`
}

// HealthBreakdown reports the rounded components of a health quote.
type HealthBreakdown struct {
	BasePremium     int      `json:"base_premium"`
	AddOnPremium    int      `json:"add_on_premium"`
	TotalPremium    int      `json:"total_premium"`
	AssumedDefaults []string `json:"assumed_defaults,omitempty"`
}

const (
	healthBaseRate          = 0.02
	defaultHealthSumInsured = 500000
)

var healthAddOns = map[string]addOn{
	"critical_illness": {pctOfPrimary: 0.20},
	"room_rent_waiver": {pctOfPrimary: 0.10},
	"maternity":        {flat: 2500},
	"opd_cover":        {flat: 1500},
}

// HealthPremium computes a health cover quote. Risk factors compound: each
// present flag multiplies the running rate independently.
func HealthPremium(in HealthInput) HealthBreakdown {
	var p parser
	sum := p.FloatOr("sum_insured", in.SumInsured, defaultHealthSumInsured)
	age := p.FloatOr("age", in.Age, 0)
	ncb := p.FloatOr("ncb", in.NCB, 0)

	base := sum * healthBaseRate
	base *= healthAgeFactor(age)
	base *= cityFactor(in.City)
	if in.Smoker {
		base *= 1.40
	}
	if in.PreExisting {
		base *= 1.50
	}
	base *= ncbFactor(ncb)

	addOns := addOnTotal(healthAddOns, in.AddOns, base)

	return HealthBreakdown{
		BasePremium:     money(base),
		AddOnPremium:    money(addOns),
		TotalPremium:    money(base + addOns),
		AssumedDefaults: p.Assumed(),
	}
}

func healthAgeFactor(age float64) float64 {
	switch {
	case age > 60:
		return 3.00
	case age > 45:
		return 2.00
	case age > 35:
		return 1.50
	case age > 25:
		return 1.20
	default:
		return 1.00
	}
}
