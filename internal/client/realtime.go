package client

import (
	"context"
	"io"
	"net/url"

	"github.com/shaiso/tickvault/internal/telemetry"
)

// --- Request types ---

// CreateTickDBRequest — параметры создания tick-базы.
//
// Опциональные поля с omitempty: незаданный параметр не попадает
// в payload (сервис применяет свои значения по умолчанию).
type CreateTickDBRequest struct {
	// Code — код базы (строчные латинские буквы, цифры и дефисы).
	Code string `json:"code"`
	// Universes — собирать данные для этих вселенных.
	Universes []string `json:"universes,omitempty"`
	// Conids — собирать данные для этих конидов.
	Conids []int `json:"conids,omitempty"`
	// Vendor — поставщик данных (по умолчанию на стороне сервиса — "ib").
	Vendor string `json:"vendor,omitempty"`
	// Fields — собираемые поля (по умолчанию last и volume).
	Fields []string `json:"fields,omitempty"`
	// PrimaryExchange — ограничиться данными первичной биржи.
	PrimaryExchange bool `json:"primary_exchange,omitempty"`
}

// CreateAggDBRequest — параметры создания агрегатной базы поверх tick-базы.
type CreateAggDBRequest struct {
	// Code — код агрегатной базы.
	Code string `json:"code"`
	// TickDBCode — код исходной tick-базы.
	TickDBCode string `json:"tick_db_code"`
	// BarSize — интервал агрегации (например 10s, 1m, 2h, 1d).
	BarSize string `json:"bar_size"`
	// Fields — спецификация агрегации: метод (close/open/high/low/mean) →
	// список полей. Пустые методы опускаются.
	Fields map[string][]string `json:"fields,omitempty"`
}

// CollectRequest — параметры запуска сбора рыночных данных.
type CollectRequest struct {
	// Codes — коды баз, для которых запускается сбор.
	Codes []string `json:"codes"`
	// Conids — собирать только эти кониды (переопределяет конфиг базы).
	Conids []int `json:"conids,omitempty"`
	// Universes — собирать только эти вселенные (переопределяет конфиг базы).
	Universes []string `json:"universes,omitempty"`
	// Fields — ограничиться этими полями.
	Fields []string `json:"fields,omitempty"`
	// Until — время остановки сбора: datetime (YYYY-MM-DD HH:MM:SS),
	// время (HH:MM:SS) или длительность (2h, 30m).
	Until string `json:"until,omitempty"`
	// Snapshot — однократный снимок вместо непрерывного потока.
	Snapshot bool `json:"snapshot,omitempty"`
	// Wait — дождаться завершения снимка. Требует Snapshot.
	Wait bool `json:"wait,omitempty"`
}

// CancelRequest — параметры отмены сбора.
type CancelRequest struct {
	Codes     []string
	Conids    []int
	Universes []string
	CancelAll bool
}

// MarketDataParams — фильтры выгрузки рыночных данных.
type MarketDataParams struct {
	// Code — код tick-базы или агрегатной базы.
	Code string
	// StartDate — не раньше этого момента. Дата (YYYY-MM-DD), datetime
	// с опциональной таймзоной или время; время без даты сервис
	// трактует как ближайшее прошедшее.
	StartDate string
	// EndDate — не позже этого момента.
	EndDate          string
	Universes        []string
	Conids           []int
	ExcludeUniverses []string
	ExcludeConids    []int
	Fields           []string
	// JSON — запросить выгрузку в JSON вместо CSV.
	JSON bool
}

// --- Operations ---

// CreateTickDB создаёт новую базу для сбора real-time тиков.
//
// Семантическую валидацию (корректность кода, полей, вселенных)
// выполняет сервис; локально проверяется только наличие кода.
func (c *Client) CreateTickDB(ctx context.Context, req CreateTickDBRequest) (*StatusResponse, error) {
	if req.Code == "" {
		return nil, NewValidationError("code", "database code is required", ErrMissingCode)
	}

	var status StatusResponse
	err := c.doJSON(ctx, "POST", "/realtime/config/"+req.Code, nil, req, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// CreateAggDB создаёт агрегатную базу поверх tick-базы.
func (c *Client) CreateAggDB(ctx context.Context, req CreateAggDBRequest) (*StatusResponse, error) {
	if req.Code == "" {
		return nil, NewValidationError("code", "database code is required", ErrMissingCode)
	}
	if req.TickDBCode == "" {
		return nil, NewValidationError("from", "tick database code is required", ErrMissingTickDBCode)
	}
	if req.BarSize == "" {
		return nil, NewValidationError("bar-size", "bar size is required", ErrMissingBarSize)
	}

	var status StatusResponse
	err := c.doJSON(ctx, "POST", "/realtime/agg_config/"+req.Code, nil, req, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// GetDBConfig возвращает конфигурацию tick-базы или агрегатной базы.
//
// Форма ответа принадлежит сервису (tick и агрегатные конфиги имеют
// разные поля), поэтому результат — generic map.
func (c *Client) GetDBConfig(ctx context.Context, code string) (map[string]any, error) {
	if code == "" {
		return nil, NewValidationError("code", "database code is required", ErrMissingCode)
	}

	cfg := map[string]any{}
	err := c.doJSON(ctx, "GET", "/realtime/config/"+code, nil, nil, &cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DropDB удаляет tick-базу или агрегатную базу вместе с данными.
//
// Удаление необратимо, поэтому confirm должен дословно повторять code —
// это единственная обязательная клиентская проверка перед деструктивным
// вызовом. Cascade удаляет и производные агрегатные базы (применимо
// только к tick-базам).
func (c *Client) DropDB(ctx context.Context, code, confirm string, cascade bool) (*StatusResponse, error) {
	if code == "" {
		return nil, NewValidationError("code", "database code is required", ErrMissingCode)
	}
	if confirm != code {
		return nil, NewValidationError("confirm-by-typing-db-code-again",
			"confirmation code does not match database code", ErrConfirmMismatch)
	}

	query := url.Values{}
	if cascade {
		query.Set("cascade", "true")
	}

	var status StatusResponse
	err := c.doJSON(ctx, "DELETE", "/realtime/config/"+code, query, nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Collect запускает сбор рыночных данных в указанные базы.
//
// Wait без Snapshot отклоняется до сетевого вызова: ждать можно
// только завершения снимка, поток собирается до отмены.
func (c *Client) Collect(ctx context.Context, req CollectRequest) (*StatusResponse, error) {
	if len(req.Codes) == 0 {
		return nil, NewValidationError("codes", "at least one database code is required", ErrMissingCode)
	}
	if req.Wait && !req.Snapshot {
		return nil, NewValidationError("wait", "wait requires snapshot mode", ErrWaitRequiresSnapshot)
	}

	var status StatusResponse
	err := c.doJSON(ctx, "POST", "/realtime/collections", nil, req, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ActiveCollections возвращает количество собираемых тикеров по
// поставщикам и базам. С detail вместо количеств возвращаются
// списки тикеров.
func (c *Client) ActiveCollections(ctx context.Context, detail bool) (map[string]map[string]any, error) {
	query := url.Values{}
	if detail {
		query.Set("detail", "true")
	}

	active := map[string]map[string]any{}
	err := c.doJSON(ctx, "GET", "/realtime/collections", query, nil, &active)
	if err != nil {
		return nil, err
	}
	return active, nil
}

// CancelCollections отменяет сбор рыночных данных.
func (c *Client) CancelCollections(ctx context.Context, req CancelRequest) (*StatusResponse, error) {
	query := url.Values{}
	setStrings(query, "codes", req.Codes)
	setInts(query, "conids", req.Conids)
	setStrings(query, "universes", req.Universes)
	if req.CancelAll {
		query.Set("cancel_all", "true")
	}

	var status StatusResponse
	err := c.doJSON(ctx, "DELETE", "/realtime/collections", query, nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// DownloadMarketData выгружает рыночные данные из базы и пишет тело
// ответа в w как есть. Формат по умолчанию — CSV; с params.JSON
// запрашивается JSON-выгрузка.
func (c *Client) DownloadMarketData(ctx context.Context, params MarketDataParams, w io.Writer) error {
	if params.Code == "" {
		return NewValidationError("code", "database code is required", ErrMissingCode)
	}

	query := url.Values{}
	if params.StartDate != "" {
		query.Set("start_date", params.StartDate)
	}
	if params.EndDate != "" {
		query.Set("end_date", params.EndDate)
	}
	setStrings(query, "universes", params.Universes)
	setInts(query, "conids", params.Conids)
	setStrings(query, "exclude_universes", params.ExcludeUniverses)
	setInts(query, "exclude_conids", params.ExcludeConids)
	setStrings(query, "fields", params.Fields)

	ext := ".csv"
	if params.JSON {
		ext = ".json"
	}

	resp, err := c.do(ctx, "GET", "/realtime/"+params.Code+ext, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}
	if resp.StatusCode == 204 {
		return nil
	}

	logger := telemetry.WithDatabase(c.logger, params.Code)
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return err
	}
	logger.Debug("market data downloaded", "bytes", n)
	return nil
}
