package handler

import (
	"net/http"
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListEvents)
	g.PUT("/:id", h.SetEventConfig)
	g.GET("/:id", h.GetEvent)
	g.GET("/:id/tier", h.PreviewTier)
}

func (h *EventHandler) SetEventConfig(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.SetEventConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &models.EventConfig{
		ID:                  id,
		Name:                req.Name,
		CoverChargeType:     models.CoverChargeType(req.CoverChargeType),
		RedeemableAmount:    req.RedeemableAmount,
		FreeEntryBeforeTime: req.FreeEntryBeforeTime,
		GracePeriodMinutes:  req.GracePeriodMinutes,
		GroupBookingEnabled: req.GroupBookingEnabled,
		MaxGroupSize:        req.MaxGroupSize,
	}
	if event.CoverChargeType == "" {
		event.CoverChargeType = models.CoverChargeFixed
	}
	if req.Date != "" {
		date, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		event.Date = date
	}
	event.Tiers = make([]models.PriceTier, len(req.Tiers))
	for i, t := range req.Tiers {
		event.Tiers[i] = models.PriceTier{Name: t.Name, StartTime: t.StartTime, Price: t.Price}
	}

	saved, err := h.svc.SetEventConfig(c.Request().Context(), event)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(saved))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.svc.GetEventConfig(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEventConfigs(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) PreviewTier(c echo.Context) error {
	at, err := models.ParseTimeOfDay(c.QueryParam("at"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tier, err := h.svc.PreviewTier(c.Request().Context(), c.Param("id"), at)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.TierPreviewResponse{At: at, Tier: tier})
}
