package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/repository"
)

func errorResponse(t *testing.T, err error, notFound string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, writeError(c, err, notFound))
	return rec
}

func TestWriteError_NoRowsIsNotFound(t *testing.T) {
	rec := errorResponse(t, sql.ErrNoRows, "visit not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "visit not found")
}

func TestWriteError_BadDataNamesValue(t *testing.T) {
	err := fmt.Errorf("%w: prison %q", repository.ErrBadData, "XXX")
	rec := errorResponse(t, err, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "XXX")
}

func TestWriteError_StateConflict(t *testing.T) {
	rec := errorResponse(t, &booking.StateError{Current: "CANC"}, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CANC")
}

func TestWriteError_SeedMissingIsServerFault(t *testing.T) {
	err := fmt.Errorf("%w: VIS_STS/SCH", repository.ErrSeedMissing)
	rec := errorResponse(t, err, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "VIS_STS/SCH")
}

func TestWriteError_UnknownErrorHidesDetail(t *testing.T) {
	rec := errorResponse(t, errors.New("connection reset by peer"), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Contains(t, rec.Body.String(), "database error")
}
