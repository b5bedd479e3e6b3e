package calc

import "math"

// money rounds a currency amount to the nearest whole unit, clamped at zero.
// Every reported component is rounded independently; the total is rounded
// from the unrounded sum, so displayed parts may differ from the displayed
// total by at most the number of components.
func money(v float64) int {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	return int(r)
}

// cityFactor maps a geography tier to its premium multiplier. Unknown tiers
// fall into the lowest band.
func cityFactor(city string) float64 {
	switch city {
	case "metro":
		return 1.25
	case "tier1":
		return 1.10
	case "tier2":
		return 1.00
	default:
		return 0.90
	}
}

// claimsFactor loads the premium for prior claims. Bands are checked highest
// first and never decrease as the claim count grows.
func claimsFactor(claims int) float64 {
	switch {
	case claims >= 3:
		return 1.50
	case claims == 2:
		return 1.25
	case claims == 1:
		return 1.10
	default:
		return 1.00
	}
}

// ncbFactor converts a no-claim-bonus percentage into a discount multiplier.
// Values outside 0..100 are clamped so the discount can never flip the sign.
func ncbFactor(ncb float64) float64 {
	if ncb < 0 {
		ncb = 0
	}
	if ncb > 100 {
		ncb = 100
	}
	return 1 - ncb/100
}
