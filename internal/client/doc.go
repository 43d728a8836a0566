// Package client реализует тонкий HTTP-клиент для TickVault API.
//
// # Обзор
//
// Клиент — это чистая прослойка запрос/ответ: каждая операция
// собирает только непустые параметры в payload, выполняет один
// HTTP-вызов (чтение — GET, идемпотентная замена — PUT, действие
// с побочным эффектом — POST/DELETE) и декодирует JSON-ответ.
// Никакой бизнес-логики, планирования или хранения локально нет —
// всё это живёт на стороне сервиса.
//
// # Ключевые компоненты
//
// ## Client
//
// Транспорт. Создаётся из явной config.Config (базовый URL,
// basic auth, таймаут), глобального состояния нет. Каждый запрос
// получает X-Request-Id (uuid) и логируется на уровне debug.
//
//	c := client.New(cfg)
//	status, err := c.Collect(ctx, client.CollectRequest{Codes: []string{"usa-stk-trades"}})
//
// ## Error mapping
//
// Любой статус вне 2xx единообразно превращается в *APIError со
// статусом и сообщением из JSON-поля "error" (либо сырым телом).
// 204 — не ошибка: результат остаётся пустым. Сетевые сбои net/http
// пробрасываются как есть.
//
// ## Validation
//
// Клиентская валидация минимальна и выполняется строго до сетевого
// вызова (*ValidationError): наличие обязательных аргументов,
// совпадение кода подтверждения в DropDB и связка wait/snapshot
// в Collect. Семантическая валидация — обязанность сервиса.
//
// # Операции
//
// Realtime: CreateTickDB, CreateAggDB, GetDBConfig, DropDB, Collect,
// ActiveCollections, CancelCollections, DownloadMarketData.
//
// DB admin: ListDatabases, GetS3Config, SetS3Config, S3PushDatabases,
// S3PullDatabases, OptimizeDatabases.
package client
