package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/ports"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/usecase"
)

type IngestEventUseCase interface {
	Execute(ctx context.Context, in usecase.SubmitEventInput) (string, error)
}

type GetEventsUseCase interface {
	GetByID(ctx context.Context, eventID string) (*domain.Event, error)
	List(ctx context.Context, in usecase.ListEventsInput) ([]domain.Event, error)
}

type EventHandler struct {
	ingestUC IngestEventUseCase
	getUC    GetEventsUseCase
}

func NewEventHandler(ingestUC IngestEventUseCase, getUC GetEventsUseCase) *EventHandler {
	return &EventHandler{ingestUC: ingestUC, getUC: getUC}
}

// CreateEvent godoc
// @Summary Ingest a user-interaction event
// @Description Validates the payload against its event-type schema and persists the event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 202 {object} CreateEventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	input := usecase.SubmitEventInput{
		UserID:    req.UserID,
		EventType: req.EventType,
		Payload:   req.Payload,
	}

	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_timestamp",
				Message: "timestamp must be an ISO-8601 instant",
			})
		}
		input.Timestamp = &ts
	}

	eventID, err := h.ingestUC.Execute(c.UserContext(), input)
	if err != nil {
		return writeIngestError(c, err)
	}

	log.Info().
		Str("event_id", eventID).
		Str("event_type", req.EventType).
		Str("user_id", req.UserID).
		Msg("event ingested")

	return c.Status(http.StatusAccepted).JSON(CreateEventResponse{
		Message: "Event received successfully",
		EventID: eventID,
	})
}

func writeIngestError(c *fiber.Ctx, err error) error {
	var sv *domain.SchemaViolationError

	switch {
	case errors.Is(err, usecase.ErrInvalidUserID):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_user_id",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnknownEventType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "unknown_event_type",
			Message: err.Error(),
		})
	case errors.As(err, &sv):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "schema_violation",
			Message: sv.Error(),
		})
	case errors.Is(err, usecase.ErrStorageUnavailable):
		log.Error().Err(err).Msg("event store unavailable")
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "storage_unavailable",
		})
	default:
		log.Error().Err(err).Msg("event ingestion failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

// GetEvent godoc
// @Summary Fetch a single event by id
// @Tags Events
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} EventResponse
// @Failure 404 {object} ErrorResponse
// @Router /events/{event_id} [get]
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID := c.Params("event_id")

	e, err := h.getUC.GetByID(c.UserContext(), eventID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error: "event_not_found",
			})
		}
		log.Error().Err(err).Str("event_id", eventID).Msg("event lookup failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(toEventResponse(e))
}

// ListEvents godoc
// @Summary List events with paging and optional filters
// @Tags Events
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Param user_id query string false "Filter by user"
// @Param event_type query string false "Filter by event type" Enums(view, click, location)
// @Success 200 {object} ListEventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	input := usecase.ListEventsInput{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}

	if userID := c.Query("user_id"); userID != "" {
		input.UserID = &userID
	}
	if eventType := c.Query("event_type"); eventType != "" {
		input.EventType = &eventType
	}

	events, err := h.getUC.List(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPaging),
			errors.Is(err, domain.ErrUnknownEventType):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			log.Error().Err(err).Msg("event listing failed")
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := ListEventsResponse{
		Events: make([]EventResponse, len(events)),
		Skip:   input.Skip,
		Limit:  input.Limit,
	}
	for i := range events {
		resp.Events[i] = toEventResponse(&events[i])
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func toEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		EventID:   e.EventID,
		UserID:    e.UserID,
		EventType: string(e.EventType),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		Payload:   e.Payload,
	}
}
