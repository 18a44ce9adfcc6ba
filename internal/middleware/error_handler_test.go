package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_HTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/group-bookings/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))(echo.NewHTTPError(http.StatusNotFound, "booking not found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "booking not found", resp.Message)
}

func TestErrorHandler_PlainErrorIsHiddenAndLogged(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/x/group-bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(logger)(errors.New("connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.Message)
	assert.Contains(t, buf.String(), "connection refused")
}

func TestErrorHandler_NonStringMessage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))(echo.NewHTTPError(http.StatusBadRequest, map[string]int{"code": 1}), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusText(http.StatusBadRequest), resp.Message)
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
