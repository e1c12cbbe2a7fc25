package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/repository"
)

// writeError translates the repository and state-guard error taxonomy
// into HTTP responses:
//
//	sql.ErrNoRows           -> 404 (booking or visit absent)
//	repository.ErrBadData   -> 400 (unresolvable code or id, value named)
//	booking.StateError      -> 409 (transition from an incompatible state)
//	repository.ErrSeedMissing -> 500 (fixed seed code absent; not caller error)
//	anything else           -> 500
//
// The notFound message lets callers distinguish which lookup missed.
func writeError(c echo.Context, err error, notFound string) error {
	var stateErr *booking.StateError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	case errors.Is(err, repository.ErrBadData):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &stateErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": stateErr.Error()})
	case errors.Is(err, repository.ErrSeedMissing):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
