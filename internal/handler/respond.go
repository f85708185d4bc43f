package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rnzluv/ecom/internal/repository"
	"github.com/rnzluv/ecom/internal/service"
)

// statusFor maps service and repository errors onto HTTP statuses. Anything
// unrecognized is a 500.
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrTotalMismatch),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNotInCart),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, service.ErrLineNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		body = gin.H{
			"error":      "internal error",
			"request_id": c.GetString("request_id"),
		}
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}

	c.JSON(status, body)
}
