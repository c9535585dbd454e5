package create_booking

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("create_booking: invalid input data")

	// ErrBusinessNotFound возвращается, когда бизнес не сконфигурирован
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается при бронировании несуществующей услуги
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrBusinessClosed возвращается, когда на указанную дату нет рабочих часов
	ErrBusinessClosed = errors.New("create_booking: business is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время начала не совпадает ни с одним слотом
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotUnavailable возвращается, когда все места слота заняты
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrDailyLimitExceeded возвращается, когда политика oneBookingPerDay
	// запрещает второе бронирование на дату
	ErrDailyLimitExceeded = errors.New("create_booking: daily booking limit exceeded")

	// ErrPersistence возвращается при сбое хранилища на атомарном шаге
	// admit-and-create; вызывающая сторона может повторить запрос
	ErrPersistence = errors.New("create_booking: persistence failure")

	// ErrInternal возвращается при прочих внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
