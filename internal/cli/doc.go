// Package cli реализует команды инструмента tickvault.
//
// # Обзор
//
// CLI — клиентская утилита для TickVault API. Диспетчеризация команд
// без состояния: каждая подкоманда отображается 1:1 на типизированную
// операцию internal/client, один сетевой вызов на запуск.
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Произвольные JSON-объекты (конфиги баз, списки) раскладываются
// в строки KEY/VALUE через MapRows. Данные выводятся в stdout,
// сообщения (Success/Error) — в stderr. Это позволяет использовать
// pipe: tickvault db list --json | jq .
//
// Команда realtime get — особый случай: тело ответа (CSV или JSON)
// пишется в файл или stdout без локального форматирования.
//
// # Commands
//
// Cobra-команды организованы по ресурсам:
//   - realtime: create-tick-db, create-agg-db, config, drop-db,
//     collect, active, cancel, get
//   - db: list, s3config, s3push, s3pull, optimize
//
// Каждая группа создаётся через фабричную функцию (NewRealtimeCmd,
// NewDBCmd), принимающую clientFn и outputFn — замыкания для ленивого
// создания Client и Output после парсинга PersistentFlags.
package cli
