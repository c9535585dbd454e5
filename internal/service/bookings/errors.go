package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAdvanceNotPaid возвращается при попытке подтвердить бронирование
	// до внесения требуемой предоплаты
	ErrAdvanceNotPaid = errors.New("required advance payment has not been made")

	// ErrBookingInFuture возвращается при попытке завершить бронирование,
	// дата которого ещё не наступила
	ErrBookingInFuture = errors.New("booking date is in the future")

	// ErrSlotNotFinished возвращается при попытке отметить no_show до
	// окончания слота
	ErrSlotNotFinished = errors.New("slot has not finished yet")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
