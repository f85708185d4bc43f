package service

import (
	"regexp"
	"strings"

	"github.com/rnzluv/ecom/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateShipping re-checks the shipping form server-side: the client runs
// the same checks before submitting, but is not trusted. Returns nil when
// every field passes.
func ValidateShipping(addr domain.ShippingAddress, email string) *ValidationError {
	fields := map[string]string{}

	checkRequired(fields, "fullName", addr.FullName)
	checkRequired(fields, "phone", addr.Phone)
	checkRequired(fields, "address", addr.Address)
	checkRequired(fields, "city", addr.City)
	checkRequired(fields, "postalCode", addr.PostalCode)

	if strings.TrimSpace(email) == "" {
		fields["customerEmail"] = "is required"
	} else if !emailPattern.MatchString(email) {
		fields["customerEmail"] = "is not a valid email address"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func checkRequired(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "is required"
	}
}
