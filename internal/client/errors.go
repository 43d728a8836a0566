package client

import (
	"errors"
	"fmt"
)

// Ошибки клиентской валидации (проверяются до сетевого вызова).
var (
	// ErrConfirmMismatch — код подтверждения не совпадает с кодом базы.
	ErrConfirmMismatch = errors.New("confirmation code does not match database code")

	// ErrWaitRequiresSnapshot — wait допустим только вместе со snapshot.
	ErrWaitRequiresSnapshot = errors.New("wait requires snapshot mode")

	// ErrMissingCode — не задан обязательный код базы.
	ErrMissingCode = errors.New("database code is required")

	// ErrMissingTickDBCode — не задан код исходной tick-базы.
	ErrMissingTickDBCode = errors.New("tick database code is required")

	// ErrMissingBarSize — не задан размер бара.
	ErrMissingBarSize = errors.New("bar size is required")
)

// ValidationError — ошибка клиентской валидации параметров.
//
// Возникает строго до сетевого вызова; запрос к сервису при этом
// не выполняется.
type ValidationError struct {
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// APIError — ответ сервиса со статусом вне диапазона 2xx.
//
// Message берётся из JSON-поля "error" тела ответа, если оно есть,
// иначе — сырое тело. Ошибка отдаётся вызывающему как есть, без
// локальных повторов запроса.
type APIError struct {
	StatusCode int    // HTTP-статус ответа
	Message    string // сообщение сервиса
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
