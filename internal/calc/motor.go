package calc

// Motor premiums follow the standard composition: an own-damage component
// built from a base rate and a chain of band multipliers, a statutory
// third-party component from a fixed rate table keyed by engine capacity,
// and a catalog of optional add-ons. The third-party component is never
// subject to the own-damage adjustments.

// MotorInput carries the raw form fields shared by the car and bike quotes.
type MotorInput struct {
	VehicleValue   string   `json:"vehicle_value"`
	VehicleAge     string   `json:"vehicle_age"`
	EngineCapacity string   `json:"engine_capacity"`
	FuelType       string   `json:"fuel_type"`
	City           string   `json:"city"`
	PreviousClaims string   `json:"previous_claims"`
	NCB            string   `json:"ncb"`
	AddOns         []string `json:"add_ons"`
}

// MotorBreakdown reports the rounded components of a motor quote.
type MotorBreakdown struct {
	OwnDamagePremium  int      `json:"own_damage_premium"`
	ThirdPartyPremium int      `json:"third_party_premium"`
	AddOnPremium      int      `json:"add_on_premium"`
	TotalPremium      int      `json:"total_premium"`
	AssumedDefaults   []string `json:"assumed_defaults,omitempty"`
}

const (
	bikeBaseRate          = 0.025
	carBaseRate           = 0.03
	defaultBikeEngineCC   = 150
	defaultCarEngineCC    = 1200
	defaultTravelTripDays = 7
)

// bikeAddOns maps add-on tags to either a percentage of the own-damage
// premium or a flat fee.
var bikeAddOns = map[string]addOn{
	"zero_dep":            {pctOfPrimary: 0.15},
	"engine_protect":      {pctOfPrimary: 0.10},
	"roadside_assistance": {flat: 300},
	"pillion_cover":       {flat: 450},
}

var carAddOns = map[string]addOn{
	"zero_dep":            {pctOfPrimary: 0.15},
	"engine_protect":      {pctOfPrimary: 0.08},
	"consumables":         {pctOfPrimary: 0.02},
	"roadside_assistance": {flat: 500},
	"return_to_invoice":   {pctOfPrimary: 0.10},
}

type addOn struct {
	pctOfPrimary float64
	flat         float64
}

func addOnTotal(catalog map[string]addOn, selected []string, primary float64) float64 {
	total := 0.0
	seen := make(map[string]struct{}, len(selected))
	for _, tag := range selected {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		entry, ok := catalog[tag]
		if !ok {
			continue
		}
		total += entry.flat + entry.pctOfPrimary*primary
	}
	return total
}

// BikePremium computes a two-wheeler quote.
func BikePremium(in MotorInput) MotorBreakdown {
	var p parser
	value := p.FloatOr("vehicle_value", in.VehicleValue, 0)
	age := p.FloatOr("vehicle_age", in.VehicleAge, 0)
	engine := p.FloatOr("engine_capacity", in.EngineCapacity, defaultBikeEngineCC)
	claims := p.IntOr("previous_claims", in.PreviousClaims, 0)
	ncb := p.FloatOr("ncb", in.NCB, 0)

	od := value * bikeBaseRate
	od *= bikeAgeFactor(age)
	od *= bikeEngineFactor(engine)
	od *= cityFactor(in.City)
	od *= claimsFactor(claims)
	od *= ncbFactor(ncb)

	tp := bikeThirdParty(engine)
	addOns := addOnTotal(bikeAddOns, in.AddOns, od)

	return MotorBreakdown{
		OwnDamagePremium:  money(od),
		ThirdPartyPremium: money(tp),
		AddOnPremium:      money(addOns),
		TotalPremium:      money(od + tp + addOns),
		AssumedDefaults:   p.Assumed(),
	}
}

// CarPremium computes a private-car quote.
func CarPremium(in MotorInput) MotorBreakdown {
	var p parser
	value := p.FloatOr("vehicle_value", in.VehicleValue, 0)
	age := p.FloatOr("vehicle_age", in.VehicleAge, 0)
	engine := p.FloatOr("engine_capacity", in.EngineCapacity, defaultCarEngineCC)
	claims := p.IntOr("previous_claims", in.PreviousClaims, 0)
	ncb := p.FloatOr("ncb", in.NCB, 0)

	od := value * carBaseRate
	od *= carAgeFactor(age)
	od *= fuelFactor(in.FuelType)
	od *= cityFactor(in.City)
	od *= claimsFactor(claims)
	od *= ncbFactor(ncb)

	tp := carThirdParty(engine)
	addOns := addOnTotal(carAddOns, in.AddOns, od)

	return MotorBreakdown{
		OwnDamagePremium:  money(od),
		ThirdPartyPremium: money(tp),
		AddOnPremium:      money(addOns),
		TotalPremium:      money(od + tp + addOns),
		AssumedDefaults:   p.Assumed(),
	}
}

// Age bands are mutually exclusive and checked oldest first; older vehicles
// carry a lower insurable value and hence a lower own-damage premium.
func bikeAgeFactor(age float64) float64 {
	switch {
	case age > 15:
		return 0.50
	case age > 10:
		return 0.60
	case age > 5:
		return 0.70
	case age > 1:
		return 0.85
	default:
		return 1.00
	}
}

func carAgeFactor(age float64) float64 {
	switch {
	case age > 15:
		return 0.45
	case age > 10:
		return 0.55
	case age > 5:
		return 0.70
	case age > 1:
		return 0.85
	default:
		return 1.00
	}
}

func bikeEngineFactor(cc float64) float64 {
	switch {
	case cc > 350:
		return 1.25
	case cc > 200:
		return 1.15
	case cc < 100:
		return 0.90
	default:
		return 1.00
	}
}

func fuelFactor(fuel string) float64 {
	switch fuel {
	case "diesel":
		return 1.15
	case "cng":
		return 1.05
	default:
		return 1.00
	}
}

// Statutory third-party rates, fixed per engine capacity band.
func bikeThirdParty(cc float64) float64 {
	switch {
	case cc <= 75:
		return 538
	case cc <= 150:
		return 714
	case cc <= 350:
		return 1366
	default:
		return 2804
	}
}

func carThirdParty(cc float64) float64 {
	switch {
	case cc <= 1000:
		return 2094
	case cc <= 1500:
		return 3416
	default:
		return 7897
	}
}
