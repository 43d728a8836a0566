// Package config описывает конфигурацию подключения к TickVault API.
//
// # Обзор
//
// Конфигурация — это базовый URL сервиса, опциональные учётные данные
// для basic auth и таймаут запроса. Она собирается один раз при старте
// CLI и дальше только читается: client.Client получает её явно при
// создании, ambient-глобалов нет.
//
// # Источники
//
// Поддерживаются два источника, в порядке приоритета:
//
//  1. YAML-файл (флаг --config). В тексте файла раскрываются ${VAR}
//     переменные окружения, поэтому пароль можно не хранить в файле:
//
//     api_url: https://tickvault.example.com
//     username: admin
//     password: ${TICKVAULT_PASSWORD}
//
//  2. Переменные окружения TICKVAULT_API_URL, TICKVAULT_USERNAME,
//     TICKVAULT_PASSWORD, TICKVAULT_TIMEOUT_SEC.
//
// Незаданные поля заполняются значениями по умолчанию, после чего
// результат валидируется (Validate).
package config
