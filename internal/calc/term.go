package calc

// TermInput carries the raw form fields for a term life quote.
type TermInput struct {
	CoverAmount         string   `json:"cover_amount"`
	Age                 string   `json:"age"`
	TermYears           string   `json:"term_years"`
	Smoker              bool     `json:"smoker"`
	HazardousOccupation bool     `json:"hazardous_occupation"`
	AddOns              []string `json:"add_ons"`
}

// TermBreakdown reports the rounded components of a term life quote.
type TermBreakdown struct {
	BasePremium     int      `json:"base_premium"`
	RiderPremium    int      `json:"rider_premium"`
	TotalPremium    int      `json:"total_premium"`
	AssumedDefaults []string `json:"assumed_defaults,omitempty"`
}

const (
	termBaseRate     = 0.0015
	defaultTermCover = 5000000
	defaultTermYears = 20
)

var termRiders = map[string]addOn{
	"accidental_death":       {pctOfPrimary: 0.50},
	"critical_illness_rider": {pctOfPrimary: 0.30},
	"premium_waiver":         {flat: 500},
}

// TermPremium computes an annual term life quote.
func TermPremium(in TermInput) TermBreakdown {
	var p parser
	cover := p.FloatOr("cover_amount", in.CoverAmount, defaultTermCover)
	age := p.FloatOr("age", in.Age, 0)
	years := p.FloatOr("term_years", in.TermYears, defaultTermYears)

	base := cover * termBaseRate
	base *= termAgeFactor(age)
	if in.Smoker {
		base *= 1.50
	}
	if in.HazardousOccupation {
		base *= 1.30
	}
	base *= termLengthFactor(years)

	riders := addOnTotal(termRiders, in.AddOns, base)

	return TermBreakdown{
		BasePremium:     money(base),
		RiderPremium:    money(riders),
		TotalPremium:    money(base + riders),
		AssumedDefaults: p.Assumed(),
	}
}

func termAgeFactor(age float64) float64 {
	switch {
	case age > 55:
		return 3.50
	case age > 45:
		return 2.40
	case age > 35:
		return 1.60
	case age > 25:
		return 1.15
	default:
		return 1.00
	}
}

func termLengthFactor(years float64) float64 {
	switch {
	case years > 30:
		return 1.20
	case years > 20:
		return 1.10
	default:
		return 1.00
	}
}
