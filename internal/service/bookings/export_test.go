package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/service/bookings/models"
)

func TestEndTimeLabel(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
	}{
		{name: "hour slot", start: "10:00", duration: 60, want: "11:00"},
		{name: "with minutes", start: "09:30", duration: 45, want: "10:15"},
		{name: "day boundary", start: "23:00", duration: 60, want: "24:00"},
		{name: "full day", start: "00:00", duration: domain.FullDayDurationMinutes, want: "24:00"},
		{name: "garbage start", start: "later", duration: 60, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := endTimeLabel(&models.BookingResponse{StartTime: tt.start, DurationMinutes: tt.duration})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportXLSX(t *testing.T) {
	b := pendingBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: b}}
	svc, _ := newTestService(repo, &fakeSettingsRepo{settings: &domain.BookingSettings{BusinessID: 1}})

	content, fileName, err := svc.ExportXLSX(context.Background(), &models.CalendarRequest{
		BusinessID:       1,
		StartDate:        testNow,
		EndDate:          testNow.AddDate(0, 0, 7),
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Equal(t, "bookings_2026-09-15_to_2026-09-22.xlsx", fileName)
}

func TestExportXLSX_InvalidRange(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}}, &fakeSettingsRepo{})

	_, _, err := svc.ExportXLSX(context.Background(), &models.CalendarRequest{
		BusinessID: 1,
		StartDate:  testNow,
		EndDate:    testNow.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
