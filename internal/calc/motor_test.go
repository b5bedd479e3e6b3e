package calc

import (
	"reflect"
	"testing"
)

func TestBikePremium_KnownVector(t *testing.T) {
	in := MotorInput{
		VehicleValue:   "50000",
		VehicleAge:     "2",
		EngineCapacity: "150",
		City:           "metro",
		PreviousClaims: "0",
		NCB:            "20",
	}

	out := BikePremium(in)

	// 50000 * 0.025 * 0.85 * 1.0 * 1.25 * 1.0 * 0.8 = 1062.5 -> 1063
	if out.OwnDamagePremium != 1063 {
		t.Fatalf("expected own damage 1063, got %d", out.OwnDamagePremium)
	}
	if out.ThirdPartyPremium != 714 {
		t.Fatalf("expected third party 714 for 150cc, got %d", out.ThirdPartyPremium)
	}
	if out.AddOnPremium != 0 {
		t.Fatalf("expected no add-ons, got %d", out.AddOnPremium)
	}
	if out.TotalPremium != 1777 {
		t.Fatalf("expected total 1777, got %d", out.TotalPremium)
	}
	if len(out.AssumedDefaults) != 0 {
		t.Fatalf("expected no assumed defaults, got %v", out.AssumedDefaults)
	}
}

func TestBikePremium_EmptyFormDoesNotFail(t *testing.T) {
	out := BikePremium(MotorInput{})

	if out.OwnDamagePremium != 0 {
		t.Fatalf("expected zero own damage for empty value, got %d", out.OwnDamagePremium)
	}
	// Engine capacity defaults to 150cc, which still carries a third-party fee.
	if out.ThirdPartyPremium != 714 {
		t.Fatalf("expected default-engine third party 714, got %d", out.ThirdPartyPremium)
	}
	if out.TotalPremium < out.OwnDamagePremium || out.TotalPremium < out.ThirdPartyPremium {
		t.Fatalf("total must not undercut a component: %+v", out)
	}

	wantAssumed := map[string]bool{"vehicle_value": true, "vehicle_age": true, "engine_capacity": true, "previous_claims": true, "ncb": true}
	for _, name := range out.AssumedDefaults {
		if !wantAssumed[name] {
			t.Fatalf("unexpected assumed default %q", name)
		}
	}
	if len(out.AssumedDefaults) != len(wantAssumed) {
		t.Fatalf("expected %d assumed defaults, got %v", len(wantAssumed), out.AssumedDefaults)
	}
}

func TestBikePremium_Deterministic(t *testing.T) {
	in := MotorInput{
		VehicleValue:   "82000",
		VehicleAge:     "6",
		EngineCapacity: "220",
		City:           "tier2",
		PreviousClaims: "1",
		NCB:            "35",
		AddOns:         []string{"zero_dep", "pillion_cover"},
	}

	first := BikePremium(in)
	second := BikePremium(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different output: %+v vs %+v", first, second)
	}
}

func TestBikePremium_ClaimsMonotonic(t *testing.T) {
	base := MotorInput{
		VehicleValue:   "60000",
		VehicleAge:     "3",
		EngineCapacity: "125",
		City:           "tier1",
		NCB:            "0",
	}

	prev := -1
	for _, claims := range []string{"0", "1", "2", "3", "4", "5"} {
		base.PreviousClaims = claims
		out := BikePremium(base)
		if out.OwnDamagePremium < prev {
			t.Fatalf("own damage decreased at claims=%s: %d < %d", claims, out.OwnDamagePremium, prev)
		}
		prev = out.OwnDamagePremium
	}
}

func TestCarPremium_ClaimsMonotonic(t *testing.T) {
	base := MotorInput{
		VehicleValue:   "900000",
		VehicleAge:     "4",
		EngineCapacity: "1400",
		FuelType:       "petrol",
		City:           "metro",
	}

	prev := -1
	for _, claims := range []string{"0", "1", "2", "3"} {
		base.PreviousClaims = claims
		out := CarPremium(base)
		if out.OwnDamagePremium < prev {
			t.Fatalf("own damage decreased at claims=%s: %d < %d", claims, out.OwnDamagePremium, prev)
		}
		prev = out.OwnDamagePremium
	}
}

func TestCarPremium_ThirdPartyBands(t *testing.T) {
	cases := []struct {
		engine string
		want   int
	}{
		{"900", 2094},
		{"1000", 2094},
		{"1200", 3416},
		{"1500", 3416},
		{"2000", 7897},
	}

	for _, tc := range cases {
		out := CarPremium(MotorInput{VehicleValue: "500000", EngineCapacity: tc.engine})
		if out.ThirdPartyPremium != tc.want {
			t.Fatalf("third party for %scc = %d, want %d", tc.engine, out.ThirdPartyPremium, tc.want)
		}
	}
}

func TestCarPremium_AddOnsAccumulate(t *testing.T) {
	in := MotorInput{
		VehicleValue:   "1000000",
		VehicleAge:     "0",
		EngineCapacity: "1200",
		City:           "tier2",
		PreviousClaims: "0",
		NCB:            "0",
		AddOns:         []string{"roadside_assistance", "zero_dep", "roadside_assistance", "unknown_tag"},
	}

	out := CarPremium(in)

	// OD = 1000000 * 0.03 = 30000; zero_dep 15% = 4500, RSA flat 500,
	// duplicates and unknown tags ignored.
	if out.OwnDamagePremium != 30000 {
		t.Fatalf("expected own damage 30000, got %d", out.OwnDamagePremium)
	}
	if out.AddOnPremium != 5000 {
		t.Fatalf("expected add-on premium 5000, got %d", out.AddOnPremium)
	}
}

func TestNCBFactor_NeverNegative(t *testing.T) {
	out := BikePremium(MotorInput{VehicleValue: "50000", NCB: "150"})
	if out.OwnDamagePremium != 0 {
		t.Fatalf("ncb above 100%% must clamp to zero premium, got %d", out.OwnDamagePremium)
	}
	if out.TotalPremium < 0 {
		t.Fatalf("total must never be negative, got %d", out.TotalPremium)
	}
}
