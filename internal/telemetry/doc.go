// Package telemetry настраивает structured logging для CLI.
//
// Логи идут в stderr через log/slog, уровень и формат управляются
// переменными окружения LOG_LEVEL и LOG_FORMAT. Хелперы With*
// добавляют в логгер стандартные поля (request_id, database).
package telemetry
