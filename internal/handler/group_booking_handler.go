package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/service"
	"github.com/labstack/echo/v4"
)

type GroupBookingHandler struct {
	svc   service.GroupBookingService
	clock Clock
}

func NewGroupBookingHandler(svc service.GroupBookingService, clock Clock) *GroupBookingHandler {
	return &GroupBookingHandler{svc: svc, clock: clock}
}

func (h *GroupBookingHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("/:id/group-bookings", h.CreateGroupBooking)
	events.GET("/:id/group-bookings", h.ListEventBookings)

	bookings := e.Group("/api/v1/group-bookings")
	bookings.GET("/qr/:code", h.GetBookingByQRCode)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/check-ins", h.ProcessCheckIn)
	bookings.POST("/:id/members/:memberId/payment-url", h.GeneratePaymentURL)
	bookings.POST("/:id/members/:memberId/payments", h.ProcessSurchargePayment)
	bookings.POST("/:id/close", h.CloseBooking)
}

func (h *GroupBookingHandler) CreateGroupBooking(c echo.Context) error {
	var req dto.CreateGroupBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookingTime := h.clock()
	if req.BookingTime != nil {
		bookingTime = *req.BookingTime
	}

	booking, err := h.svc.CreateGroupBooking(c.Request().Context(), c.Param("id"), models.CreateGroupBookingInput{
		HostName:    req.HostName,
		GroupSize:   req.GroupSize,
		BookingTime: bookingTime,
		MemberNames: req.MemberNames,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToGroupBookingResponse(booking))
}

func (h *GroupBookingHandler) ListEventBookings(c echo.Context) error {
	bookings, err := h.svc.GetEventBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.GroupBookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToGroupBookingResponse(&bookings[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *GroupBookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToGroupBookingResponse(booking))
}

func (h *GroupBookingHandler) GetBookingByQRCode(c echo.Context) error {
	booking, err := h.svc.GetBookingByQRCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToGroupBookingResponse(booking))
}

func (h *GroupBookingHandler) ProcessCheckIn(c echo.Context) error {
	var req dto.CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	at := h.clock()
	if req.CheckInTime != nil {
		at = *req.CheckInTime
	}

	outcome, err := h.svc.ProcessCheckIn(c.Request().Context(), c.Param("id"), req.MemberIDs, at)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToCheckInResponse(outcome))
}

func (h *GroupBookingHandler) GeneratePaymentURL(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}

	req, err := h.svc.GeneratePaymentURL(c.Request().Context(), c.Param("id"), memberID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, req)
}

func (h *GroupBookingHandler) ProcessSurchargePayment(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}

	var req dto.SurchargePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.svc.ProcessSurchargePayment(c.Request().Context(), c.Param("id"), memberID, req.PaymentReference)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *GroupBookingHandler) CloseBooking(c echo.Context) error {
	booking, err := h.svc.CloseBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToGroupBookingResponse(booking))
}
