package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrUnavailable возвращается, когда webhook недоступен
	ErrUnavailable = errors.New("notifier client: webhook unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе webhook-а
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
