package service

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "IN"

// ContactNormalizer cleans the free-text contact fields on public forms.
// Intake is deliberately forgiving: a phone that cannot be parsed is kept
// verbatim so the operator can still dial it, and a bad email is dropped
// rather than failing the whole submission.
type ContactNormalizer struct {
	DefaultRegion string
}

// NewContactNormalizer builds a normalizer for the given default dialing region.
func NewContactNormalizer(defaultRegion string) *ContactNormalizer {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactNormalizer{DefaultRegion: region}
}

// NormalizePhone returns the E.164 form when the number parses and validates,
// and the trimmed input otherwise.
func (n *ContactNormalizer) NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	number, err := phonenumbers.Parse(trimmed, n.DefaultRegion)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// NormalizeEmail lowercases and validates the address. It returns "" when the
// address is unusable so callers store NULL instead of junk.
func (n *ContactNormalizer) NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	parts := strings.SplitN(email, "@", 2)
	domain := parts[1]
	if !isDomainValid(domain) {
		return ""
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return ""
	}
	return parts[0] + "@" + asciiDomain
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
