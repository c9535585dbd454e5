package domain

// Business validation constants
const (
	MinAdvancePercentage = 1
	MaxAdvancePercentage = 100

	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinCapacityPerSlot     = 1
	MaxCapacityPerSlot     = 100
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 120

	MaxNotesLength        = 500
	MaxCustomerNameLength = 200
)

// Full-day slot: синтетический слот на все сутки
const (
	FullDayStartTime       = "00:00"
	FullDayDurationMinutes = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
