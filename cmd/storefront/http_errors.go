package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/validation"
)

// httpStatusFromErr maps service errors to a status, a stable code and a
// message safe to show.
func httpStatusFromErr(err error) (int, string, string) {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED", ve.Error()
	case errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrUnknownAction),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, cartapp.ErrLineNotFound),
		errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, checkoutapp.ErrNoSummary),
		errors.Is(err, checkoutdomain.ErrLineIndex):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func writeError(c *gin.Context, err error) {
	status, code, msg := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := gin.H{"code": code, "message": msg}
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		body["fields"] = ve.Fields
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
