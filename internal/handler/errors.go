package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/service"
	"github.com/labstack/echo/v4"
)

func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrMemberNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrGroupSizeExceeded),
		errors.Is(err, service.ErrFeatureDisabled):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoSurcharge),
		errors.Is(err, service.ErrConfiguration):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrBookingClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
	}
}
