package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/tickvault/internal/config"
	"github.com/shaiso/tickvault/internal/telemetry"
)

// StatusResponse — типовой ответ сервиса на модифицирующие операции.
type StatusResponse struct {
	Status string `json:"status,omitempty"`
	Msg    string `json:"msg,omitempty"`
}

// Client — HTTP-клиент для TickVault API.
//
// Каждая операция — один синхронный запрос: клиент формирует payload,
// выполняет вызов и декодирует JSON-ответ. Повторов и локальной
// отмены нет; идущий на сервисе сбор данных останавливается только
// операцией CancelCollections.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент из конфигурации.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.APIURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		logger: slog.Default(),
	}
}

// SetHTTPClient подменяет HTTP-клиент (для тестов).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetLogger подменяет логгер.
func (c *Client) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// --- HTTP helpers ---

// do выполняет запрос: сериализует body в JSON, добавляет query-параметры,
// basic auth и X-Request-Id.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	logger := telemetry.WithRequestID(c.logger, requestID)
	logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)
	return resp, nil
}

// doJSON выполняет запрос и декодирует JSON-ответ в result.
//
// Ответ 204 (No Content) — не ошибка: result остаётся как есть
// (вызывающие передают заранее инициализированные пустые значения).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if err == io.EOF {
			// Пустое тело при 2xx эквивалентно 204
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkError применяет единый маппинг ошибок: любой статус вне 2xx
// превращается в *APIError. Сообщение берётся из JSON-поля "error",
// если тело распарсилось, иначе — сырое тело.
func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}

	var er struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: er.Error}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

// --- Query helpers ---

// setStrings добавляет в query повторяющийся параметр для каждого значения.
func setStrings(q url.Values, key string, vals []string) {
	for _, v := range vals {
		q.Add(key, v)
	}
}

// setInts добавляет в query повторяющийся числовой параметр.
func setInts(q url.Values, key string, vals []int) {
	for _, v := range vals {
		q.Add(key, strconv.Itoa(v))
	}
}
