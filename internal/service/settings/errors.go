package settings

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда у бизнеса нет конфигурации
	ErrBusinessNotFound = errors.New("business configuration not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrLastService возвращается при попытке удалить последнюю услугу
	// бизнеса, работающего не в full-day режиме
	ErrLastService = errors.New("cannot delete the last service")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
