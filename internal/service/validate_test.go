package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnzluv/ecom/internal/domain"
)

func TestValidateShippingAllFieldsPresent(t *testing.T) {
	addr := domain.ShippingAddress{
		FullName:   "Juan dela Cruz",
		Phone:      "09171234567",
		Address:    "123 Mabini St",
		City:       "Quezon City",
		PostalCode: "1100",
	}
	assert.Nil(t, ValidateShipping(addr, "juan@example.com"))
}

func TestValidateShippingReportsEveryMissingField(t *testing.T) {
	verr := ValidateShipping(domain.ShippingAddress{}, "")
	require.NotNil(t, verr)

	for _, field := range []string{"fullName", "phone", "address", "city", "postalCode", "customerEmail"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Len(t, verr.Fields, 6)
}

func TestValidateShippingEmailShape(t *testing.T) {
	addr := domain.ShippingAddress{
		FullName:   "Juan",
		Phone:      "0917",
		Address:    "here",
		City:       "QC",
		PostalCode: "1100",
	}

	for _, bad := range []string{"plain", "a@b", "@example.com", "a b@example.com", "a@ex ample.com"} {
		verr := ValidateShipping(addr, bad)
		require.NotNil(t, verr, "expected %q to be rejected", bad)
		assert.Contains(t, verr.Fields, "customerEmail")
	}

	for _, good := range []string{"a@b.co", "juan.dela.cruz+tag@mail.example.com"} {
		assert.Nil(t, ValidateShipping(addr, good), "expected %q to pass", good)
	}
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	verr := &ValidationError{Fields: map[string]string{"city": "is required"}}
	assert.Contains(t, verr.Error(), "city: is required")
}
