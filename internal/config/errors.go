package config

import "errors"

// Ошибки валидации конфигурации.
var (
	// ErrInvalidAPIURL — базовый URL не распарсился или имеет
	// неподдерживаемую схему.
	ErrInvalidAPIURL = errors.New("invalid api_url")

	// ErrPasswordWithoutUsername — задан пароль без имени пользователя.
	ErrPasswordWithoutUsername = errors.New("password set without username")
)
