package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id int64, date string) *BookingResponse {
	return &BookingResponse{ID: id, BookingDate: date, StartTime: "10:00", Status: "confirmed"}
}

func TestGroupByDay(t *testing.T) {
	groups := GroupByDay([]*BookingResponse{
		booking(1, "2026-09-15"),
		booking(2, "2026-09-16"),
		booking(3, "2026-09-15"),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "2026-09-15", groups[0].Date)
	assert.Len(t, groups[0].Bookings, 2)
	assert.Equal(t, "2026-09-16", groups[1].Date)
	assert.Len(t, groups[1].Bookings, 1)
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}

func TestGroupByWeek(t *testing.T) {
	// 2026-09-15 (вт) и 2026-09-18 (пт) - одна ISO-неделя, 2026-09-21 (пн) - следующая
	groups := GroupByWeek([]*BookingResponse{
		booking(1, "2026-09-15"),
		booking(2, "2026-09-21"),
		booking(3, "2026-09-18"),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, 2026, groups[0].Year)
	assert.Equal(t, groups[0].Week+1, groups[1].Week)
	assert.Len(t, groups[0].Bookings, 2)
	assert.Len(t, groups[1].Bookings, 1)
}

func TestGroupByWeek_SkipsUnparsableDates(t *testing.T) {
	groups := GroupByWeek([]*BookingResponse{
		booking(1, "not-a-date"),
		booking(2, "2026-09-15"),
	})

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Bookings, 1)
}
