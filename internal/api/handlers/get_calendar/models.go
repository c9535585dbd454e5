package get_calendar

import (
	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

// Поддерживаемые представления календаря
const (
	ViewList = "list"
	ViewDay  = "day"
	ViewWeek = "week"
)

// CalendarResponse HTTP модель календаря. Заполнено ровно одно из полей
// Bookings, Days или Weeks в зависимости от запрошенного представления.
type CalendarResponse struct {
	BusinessID int64                      `json:"businessId"`
	StartDate  string                     `json:"startDate"`
	EndDate    string                     `json:"endDate"`
	View       string                     `json:"view"`
	Total      int                        `json:"total"`
	Bookings   []*models.BookingResponse  `json:"bookings,omitempty"`
	Days       []models.DayGroup          `json:"days,omitempty"`
	Weeks      []models.WeekGroup         `json:"weeks,omitempty"`
}

// BuildCalendarResponse собирает ответ в запрошенном представлении
func BuildCalendarResponse(businessID int64, startDate, endDate, view string, list *models.BookingListResponse) *CalendarResponse {
	resp := &CalendarResponse{
		BusinessID: businessID,
		StartDate:  startDate,
		EndDate:    endDate,
		View:       view,
		Total:      list.Total,
	}

	switch view {
	case ViewDay:
		resp.Days = models.GroupByDay(list.Bookings)
	case ViewWeek:
		resp.Weeks = models.GroupByWeek(list.Bookings)
	default:
		resp.Bookings = list.Bookings
	}

	return resp
}
