package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/udmdigital/lead-crm-api/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "IN"

// NormalizePhone canonicalizes a phone number to E.164 when it parses as a
// valid number for the default region. Numbers that do not parse are stored
// as the user typed them: the field is required but free-form.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return raw
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return raw
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// NormalizeEmail lowercases the address and converts an internationalized
// domain to its ASCII form. An address that does not look like an email at
// all is rejected.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", nil
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("invalid email address: %q", raw)
	}
	parts := strings.SplitN(email, "@", 2)
	asciiDomain, err := idnaProfile.ToASCII(parts[1])
	if err != nil || asciiDomain == "" {
		return "", fmt.Errorf("invalid email domain: %q", parts[1])
	}
	return parts[0] + "@" + asciiDomain, nil
}

// ValidateServices checks every entry against the fixed service catalog.
func ValidateServices(services []string) error {
	for _, s := range services {
		if !catalogContains(s) {
			return fmt.Errorf("unknown service: %q", s)
		}
	}
	return nil
}

func catalogContains(service string) bool {
	for _, known := range entity.ServiceCatalog {
		if known == service {
			return true
		}
	}
	return false
}
