package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/slotline/bookingengine/internal/api/handlers"
	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/service/bookings"
	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeRange  = "дата окончания раньше даты начала"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgInvalidView       = "некорректное представление, ожидается list, day или week"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/calendar?startDate=...&endDate=...&view=list|day|week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/calendar - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	query := r.URL.Query()

	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/calendar - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/calendar - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	view := query.Get("view")
	if view == "" {
		view = ViewList
	}
	if view != ViewList && view != ViewDay && view != ViewWeek {
		h.logger.Warn("GET /businesses/{id}/calendar - Invalid view: %s", view)
		handlers.RespondBadRequest(w, msgInvalidView)
		return
	}

	var status *string
	if raw := query.Get("status"); raw != "" {
		status = &raw
	}

	includeCancelled := query.Get("includeCancelled") == "true"

	result, err := h.service.BookingsInRange(r.Context(), &models.CalendarRequest{
		BusinessID:       businessID,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           status,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /businesses/{id}/calendar - Invalid time range: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /businesses/{id}/calendar - Invalid status filter: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /businesses/{id}/calendar - Failed to get bookings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/calendar - Bookings retrieved: business_id=%d, view=%s, total=%d",
		businessID, view, result.Total)
	handlers.RespondJSON(w, http.StatusOK, BuildCalendarResponse(
		businessID, query.Get("startDate"), query.Get("endDate"), view, result))
}
