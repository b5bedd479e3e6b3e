package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/calc"
)

// CalculatorHandler exposes the public premium calculators. The calculators
// are total: any payload that decodes produces a quote, with the fields that
// fell back to defaults reported in assumed_defaults.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new handler instance.
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// Car handles POST /calculators/car.
func (h *CalculatorHandler) Car(c echo.Context) error {
	var input calc.MotorInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "car premium calculated", calc.CarPremium(input))
}

// Bike handles POST /calculators/bike.
func (h *CalculatorHandler) Bike(c echo.Context) error {
	var input calc.MotorInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "bike premium calculated", calc.BikePremium(input))
}

// Health handles POST /calculators/health.
func (h *CalculatorHandler) Health(c echo.Context) error {
	var input calc.HealthInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "health premium calculated", calc.HealthPremium(input))
}

// Term handles POST /calculators/term.
func (h *CalculatorHandler) Term(c echo.Context) error {
	var input calc.TermInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "term premium calculated", calc.TermPremium(input))
}

// Travel handles POST /calculators/travel.
func (h *CalculatorHandler) Travel(c echo.Context) error {
	var input calc.TravelInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "travel premium calculated", calc.TravelPremium(input))
}

// CreditCard handles POST /calculators/credit-card.
func (h *CalculatorHandler) CreditCard(c echo.Context) error {
	var input calc.CreditCardInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "credit card payoff calculated", calc.CreditCardPayoff(input))
}

// IDV handles POST /calculators/idv.
func (h *CalculatorHandler) IDV(c echo.Context) error {
	var input calc.IDVInput
	if err := c.Bind(&input); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return Success(c, http.StatusOK, "idv calculated", calc.IDV(input))
}
