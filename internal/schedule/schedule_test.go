package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/pkg/types"
)

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func testHours(open, close string, slotMinutes, bufferMinutes int) *domain.BusinessHours {
	return &domain.BusinessHours{
		BusinessID:          1,
		OpenTime:            types.TimeString(open),
		CloseTime:           types.TimeString(close),
		SlotDurationMinutes: slotMinutes,
		BufferMinutes:       bufferMinutes,
	}
}

func TestGenerate_RegularDay(t *testing.T) {
	hours := testHours("09:00", "18:00", 60, 0)
	settings := &domain.BookingSettings{BusinessID: 1}
	service := &domain.Service{ID: 10, BusinessID: 1, DurationMinutes: 60, CapacityPerSlot: 1}

	slots, err := Generate(testDate, hours, settings, service)
	require.NoError(t, err)

	// 09:00-18:00 по 60 минут = 9 слотов
	require.Len(t, slots, 9)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
	assert.Equal(t, types.TimeString("17:00"), slots[8].StartTime)
	assert.Equal(t, types.TimeString("18:00"), slots[8].EndTime)

	for _, s := range slots {
		require.NotNil(t, s.ServiceID)
		assert.Equal(t, int64(10), *s.ServiceID)
		assert.Equal(t, 1, s.Capacity)
	}
}

func TestGenerate_WithBuffer(t *testing.T) {
	hours := testHours("09:00", "12:00", 60, 15)
	settings := &domain.BookingSettings{BusinessID: 1}
	service := &domain.Service{ID: 10, DurationMinutes: 60, CapacityPerSlot: 2}

	slots, err := Generate(testDate, hours, settings, service)
	require.NoError(t, err)

	// 09:00-10:00, 10:15-11:15; следующий начался бы в 11:30 и вылез за 12:00
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:15"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:15"), slots[1].EndTime)
}

func TestGenerate_TrailingPartialSlotDropped(t *testing.T) {
	// 09:00-10:30 при 60-минутных слотах: хвост 10:00-11:00 не влезает
	hours := testHours("09:00", "10:30", 60, 0)
	settings := &domain.BookingSettings{BusinessID: 1}
	service := &domain.Service{ID: 10, DurationMinutes: 60, CapacityPerSlot: 1}

	slots, err := Generate(testDate, hours, settings, service)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
}

func TestGenerate_ServiceDurationOverridesSlotDuration(t *testing.T) {
	hours := testHours("09:00", "12:00", 60, 0)
	settings := &domain.BookingSettings{BusinessID: 1}
	service := &domain.Service{ID: 10, DurationMinutes: 90, CapacityPerSlot: 1}

	slots, err := Generate(testDate, hours, settings, service)
	require.NoError(t, err)

	// 09:00-10:30 и 10:30-12:00
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("10:30"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("12:00"), slots[1].EndTime)
}

func TestGenerate_NoHoursMeansClosed(t *testing.T) {
	settings := &domain.BookingSettings{BusinessID: 1}
	service := &domain.Service{ID: 10, DurationMinutes: 60, CapacityPerSlot: 1}

	slots, err := Generate(testDate, nil, settings, service)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_FullDayMode(t *testing.T) {
	settings := &domain.BookingSettings{BusinessID: 1, FullDayMode: true}

	slots, err := Generate(testDate, nil, settings, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("00:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("24:00"), slots[0].EndTime)
	assert.Equal(t, 1, slots[0].Capacity)
	assert.Nil(t, slots[0].ServiceID)

	// День продаётся одной единицей: услуга не расширяет capacity
	service := &domain.Service{ID: 10, CapacityPerSlot: 3}
	slots, err = Generate(testDate, nil, settings, service)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 1, slots[0].Capacity)
	assert.Nil(t, slots[0].ServiceID)

	settings.OneBookingPerDay = true
	slots, err = Generate(testDate, nil, settings, service)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 1, slots[0].Capacity)
}

func TestCountForSlot(t *testing.T) {
	serviceID := int64(10)
	otherServiceID := int64(20)
	slot := &domain.Slot{
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		ServiceID: &serviceID,
		Capacity:  2,
	}

	bookings := []*domain.Booking{
		{BookingDate: testDate, StartTime: "10:00", ServiceID: &serviceID, Status: domain.StatusConfirmed},
		{BookingDate: testDate, StartTime: "10:00", ServiceID: &serviceID, Status: domain.StatusCompleted},
		// Отменённое место не занимает
		{BookingDate: testDate, StartTime: "10:00", ServiceID: &serviceID, Status: domain.StatusCancelled},
		// Другая услуга в то же время не мешает
		{BookingDate: testDate, StartTime: "10:00", ServiceID: &otherServiceID, Status: domain.StatusConfirmed},
		// Другое время
		{BookingDate: testDate, StartTime: "11:00", ServiceID: &serviceID, Status: domain.StatusConfirmed},
	}

	assert.Equal(t, 2, CountForSlot(slot, bookings))
}

func TestOccupy(t *testing.T) {
	serviceID := int64(10)
	slots := []domain.Slot{
		{Date: testDate, StartTime: "09:00", EndTime: "10:00", ServiceID: &serviceID, Capacity: 2},
		{Date: testDate, StartTime: "10:00", EndTime: "11:00", ServiceID: &serviceID, Capacity: 2},
	}
	bookings := []*domain.Booking{
		{BookingDate: testDate, StartTime: "09:00", ServiceID: &serviceID, Status: domain.StatusPending},
	}

	occupied := Occupy(slots, bookings)
	assert.Equal(t, 1, occupied[0].Booked)
	assert.Equal(t, 1, occupied[0].Remaining())
	assert.Equal(t, 0, occupied[1].Booked)
}

func TestHasActiveOnDate(t *testing.T) {
	serviceID := int64(10)

	assert.False(t, HasActiveOnDate(nil))
	assert.False(t, HasActiveOnDate([]*domain.Booking{
		{Status: domain.StatusCancelled},
	}))
	assert.True(t, HasActiveOnDate([]*domain.Booking{
		{Status: domain.StatusCancelled},
		{ServiceID: &serviceID, Status: domain.StatusNoShow},
	}))
}

func TestFindSlot(t *testing.T) {
	slots := []domain.Slot{
		{StartTime: "09:00"},
		{StartTime: "10:00"},
	}

	slot, ok := FindSlot(slots, "10:00")
	require.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), slot.StartTime)

	_, ok = FindSlot(slots, "10:30")
	assert.False(t, ok)
}
