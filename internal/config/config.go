package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Значения по умолчанию.
const (
	DefaultAPIURL     = "http://localhost:8080"
	DefaultTimeoutSec = 30
)

// Config — конфигурация подключения к TickVault API.
//
// Передаётся явно в client.New; глобального состояния нет.
type Config struct {
	// APIURL — базовый URL сервиса (например http://localhost:8080).
	APIURL string `yaml:"api_url"`

	// Username и Password — учётные данные для basic auth.
	// Если Username пустой, аутентификация не используется.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TimeoutSec — таймаут HTTP-запроса в секундах.
	TimeoutSec int `yaml:"timeout_sec"`
}

// FromEnv собирает конфигурацию из переменных окружения:
// TICKVAULT_API_URL, TICKVAULT_USERNAME, TICKVAULT_PASSWORD,
// TICKVAULT_TIMEOUT_SEC. Отсутствующие значения заполняются
// значениями по умолчанию.
func FromEnv() *Config {
	cfg := &Config{
		APIURL:   os.Getenv("TICKVAULT_API_URL"),
		Username: os.Getenv("TICKVAULT_USERNAME"),
		Password: os.Getenv("TICKVAULT_PASSWORD"),
	}
	if v := os.Getenv("TICKVAULT_TIMEOUT_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSec = sec
		}
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет незаданные поля значениями по умолчанию.
func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = DefaultTimeoutSec
	}
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAPIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidAPIURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidAPIURL)
	}
	if c.Password != "" && c.Username == "" {
		return ErrPasswordWithoutUsername
	}
	return nil
}
