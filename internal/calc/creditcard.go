package calc

import "math"

// The credit-card calculator is an amortization solver, not a premium
// formula. Months to amortize come from the closed-form geometric series
//
//	months = ceil(-ln(1 - balance*rate/payment) / ln(1 + rate))
//
// which has no solution when the payment does not cover accruing interest;
// that case is reported through the NeverPaysOff flag rather than a domain
// error.

// CreditCardInput carries the raw form fields for a payoff estimate.
type CreditCardInput struct {
	Balance        string `json:"balance"`
	AnnualRate     string `json:"annual_rate"`
	MonthlyPayment string `json:"monthly_payment"`
	PaymentPercent string `json:"payment_percent"`
}

// CreditCardResult reports the payoff plan and the savings against the
// statutory minimum payment.
type CreditCardResult struct {
	MonthsToPayoff      int      `json:"months_to_payoff"`
	TotalInterest       int      `json:"total_interest"`
	TotalPaid           int      `json:"total_paid"`
	NeverPaysOff        bool     `json:"never_pays_off"`
	MinimumPayment      int      `json:"minimum_payment"`
	MonthsAtMinimum     int      `json:"months_at_minimum"`
	InterestAtMinimum   int      `json:"interest_at_minimum"`
	MinimumNeverPaysOff bool     `json:"minimum_never_pays_off"`
	InterestSaved       int      `json:"interest_saved"`
	AssumedDefaults     []string `json:"assumed_defaults,omitempty"`
}

const (
	defaultCardAPR        = 36
	minimumPaymentRate    = 0.05
	minimumPaymentFloor   = 200
	defaultPaymentPercent = 5
)

// CreditCardPayoff computes months to amortize, total interest, and the
// savings versus paying only the minimum.
func CreditCardPayoff(in CreditCardInput) CreditCardResult {
	var p parser
	balance := p.FloatOr("balance", in.Balance, 0)
	apr := p.FloatOr("annual_rate", in.AnnualRate, defaultCardAPR)
	payment := p.FloatOr("monthly_payment", in.MonthlyPayment, 0)

	if payment <= 0 {
		pct := p.FloatOr("payment_percent", in.PaymentPercent, defaultPaymentPercent)
		payment = balance * pct / 100
	}

	rate := apr / 12 / 100
	result := CreditCardResult{AssumedDefaults: p.Assumed()}

	months, interest, paid, ok := amortize(balance, rate, payment)
	if !ok {
		result.NeverPaysOff = true
	} else {
		result.MonthsToPayoff = months
		result.TotalInterest = money(interest)
		result.TotalPaid = money(paid)
	}

	minPayment := math.Max(balance*minimumPaymentRate, minimumPaymentFloor)
	result.MinimumPayment = money(minPayment)

	minMonths, minInterest, _, minOK := amortize(balance, rate, minPayment)
	if !minOK {
		result.MinimumNeverPaysOff = true
	} else {
		result.MonthsAtMinimum = minMonths
		result.InterestAtMinimum = money(minInterest)
		if ok && result.InterestAtMinimum > result.TotalInterest {
			result.InterestSaved = result.InterestAtMinimum - result.TotalInterest
		}
	}

	return result
}

// amortize returns the months to pay off plus the exact interest and total
// paid. ok is false when the payment never amortizes the balance.
func amortize(balance, rate, payment float64) (months int, interest, paid float64, ok bool) {
	if balance <= 0 || payment <= 0 {
		return 0, 0, 0, balance <= 0
	}
	if rate <= 0 {
		m := int(math.Ceil(balance / payment))
		return m, 0, balance, true
	}
	if payment <= balance*rate {
		return 0, 0, 0, false
	}

	// Any payment above the accrued interest amortizes eventually, however
	// slowly, so the month count is always finite here.
	m := int(math.Ceil(-math.Log(1-balance*rate/payment) / math.Log(1+rate)))
	if m < 1 {
		m = 1
	}

	// Walk the schedule to charge the trimmed final payment exactly.
	remaining := balance
	for i := 0; i < m && remaining > 0; i++ {
		accrued := remaining * rate
		interest += accrued
		remaining += accrued
		due := payment
		if due > remaining {
			due = remaining
		}
		remaining -= due
		paid += due
	}
	return m, interest, paid, true
}
