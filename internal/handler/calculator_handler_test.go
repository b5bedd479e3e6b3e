package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(e *echo.Echo, path string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", resp.Data)
	}
	return data
}

func TestCalculatorHandler_Bike(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(e, "/calculators/bike", map[string]any{
		"vehicle_value":   "50000",
		"vehicle_age":     "3",
		"engine_capacity": "150",
		"city":            "metro",
		"ncb":             "20",
	})
	if err := handler.Bike(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := decodeData(t, rec)
	if data["own_damage_premium"].(float64) != 1063 {
		t.Fatalf("unexpected own damage premium: %v", data["own_damage_premium"])
	}
	if data["third_party_premium"].(float64) != 714 {
		t.Fatalf("unexpected third party premium: %v", data["third_party_premium"])
	}
	if data["total_premium"].(float64) != 1777 {
		t.Fatalf("unexpected total: %v", data["total_premium"])
	}
}

func TestCalculatorHandler_EmptyBodyStillQuotes(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(e, "/calculators/health", map[string]any{})
	if err := handler.Health(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty form, got %d", rec.Code)
	}

	data := decodeData(t, rec)
	if data["total_premium"].(float64) <= 0 {
		t.Fatalf("expected positive default quote, got %v", data["total_premium"])
	}
	if data["assumed_defaults"] == nil {
		t.Fatalf("expected assumed_defaults reported")
	}
}

func TestCalculatorHandler_CreditCardNeverPaysOff(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(e, "/calculators/credit-card", map[string]any{
		"balance":         "100000",
		"annual_rate":     "36",
		"monthly_payment": "1000",
	})
	if err := handler.CreditCard(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := decodeData(t, rec)
	if data["never_pays_off"].(bool) != true {
		t.Fatalf("expected never_pays_off sentinel, got %v", data["never_pays_off"])
	}
}

func TestCalculatorHandler_InvalidJSON(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	req := httptest.NewRequest(http.MethodPost, "/calculators/car", bytes.NewBufferString("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Car(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
