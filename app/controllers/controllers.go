// Package controllers holds the HTTP handlers. Controllers bind and validate
// request bodies, call into services or repositories, and translate domain
// errors into the JSON envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
	"gorm.io/gorm"
)

// uintParam parses a numeric path parameter. Returns 0 and writes a 404 when
// the segment is not a positive integer.
func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		response.NotFound(w)
		return 0, false
	}
	return uint(n), true
}

// pageParams reads ?page= and ?perPage= with defaults handled downstream.
func pageParams(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(r.URL.Query().Get("perPage"))
	return page, perPage
}

// writeDomainError maps a service-layer error to its HTTP status. Anything
// unrecognized is an internal failure and deliberately opaque to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTotalMismatch):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrItemArchived):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w)
	default:
		var attrErr *services.AttributeError
		if errors.As(err, &attrErr) {
			response.ValidationError(w, attrErr.Fields)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
