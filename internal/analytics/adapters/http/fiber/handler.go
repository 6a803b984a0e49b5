package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/prashsamosa/web-analytics-service/internal/analytics/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/analytics/core/usecase"
)

type GetCountsUseCase interface {
	GetTotalCount(ctx context.Context, in usecase.TotalCountInput) (int64, error)
	GetCountsByType(ctx context.Context, in usecase.CountsByTypeInput) (domain.TypeCounts, error)
}

type AnalyticsHandler struct {
	countsUC GetCountsUseCase
}

func NewAnalyticsHandler(countsUC GetCountsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{countsUC: countsUC}
}

// GetEventCounts godoc
// @Summary Total event count over an optional window and type filter
// @Tags Analytics
// @Produce json
// @Param event_type query string false "Filter by event type" Enums(view, click, location)
// @Param start_date query string false "Start date (YYYY-MM-DD), inclusive from 00:00:00"
// @Param end_date query string false "End date (YYYY-MM-DD), inclusive through 23:59:59.999999"
// @Success 200 {object} EventCountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/event-counts [get]
func (h *AnalyticsHandler) GetEventCounts(c *fiber.Ctx) error {
	input := usecase.TotalCountInput{}

	if v := c.Query("event_type"); v != "" {
		input.EventType = &v
	}
	if v := c.Query("start_date"); v != "" {
		input.StartDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		input.EndDate = &v
	}

	total, err := h.countsUC.GetTotalCount(c.UserContext(), input)
	if err != nil {
		return writeAnalyticsError(c, err)
	}

	return c.Status(http.StatusOK).JSON(EventCountResponse{TotalEvents: total})
}

// GetEventCountsByType godoc
// @Summary Per-type event counts over an optional window
// @Description Always returns all three type keys, zero-filled
// @Tags Analytics
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), inclusive from 00:00:00"
// @Param end_date query string false "End date (YYYY-MM-DD), inclusive through 23:59:59.999999"
// @Success 200 {object} EventCountsByTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/event-counts-by-type [get]
func (h *AnalyticsHandler) GetEventCountsByType(c *fiber.Ctx) error {
	input := usecase.CountsByTypeInput{}

	if v := c.Query("start_date"); v != "" {
		input.StartDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		input.EndDate = &v
	}

	counts, err := h.countsUC.GetCountsByType(c.UserContext(), input)
	if err != nil {
		return writeAnalyticsError(c, err)
	}

	return c.Status(http.StatusOK).JSON(EventCountsByTypeResponse{
		View:     counts.View,
		Click:    counts.Click,
		Location: counts.Location,
	})
}

func writeAnalyticsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidEventType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event_type",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidDate):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_date",
			Message: err.Error(),
		})
	default:
		log.Error().Err(err).Msg("analytics query failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
