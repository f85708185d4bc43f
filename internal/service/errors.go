package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyItems        = errors.New("no order items")
	ErrTotalMismatch     = errors.New("total amount does not match line prices")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrLineNotFound      = errors.New("cart line not found")
	ErrNotInCart         = errors.New("selected product is not in the cart")
	ErrForbidden         = errors.New("not authorized")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ValidationError reports one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
