package calc

import (
	"strconv"
	"strings"
)

// Calculator inputs arrive as free text from public forms. Parsing is
// deliberately liberal: an empty or unparseable field degrades to its
// documented default instead of failing, and the field name is recorded so
// callers can see which defaults kicked in.

// parser accumulates the names of fields that fell back to a default.
type parser struct {
	assumed []string
}

// FloatOr parses raw as a float, falling back to def on empty or invalid input.
func (p *parser) FloatOr(name, raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.assumed = append(p.assumed, name)
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.assumed = append(p.assumed, name)
		return def
	}
	return v
}

// IntOr parses raw as an integer, falling back to def on empty or invalid input.
func (p *parser) IntOr(name, raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.assumed = append(p.assumed, name)
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.assumed = append(p.assumed, name)
		return def
	}
	return v
}

// Assumed returns the recorded field names, nil when everything parsed.
func (p *parser) Assumed() []string {
	return p.assumed
}
