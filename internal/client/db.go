package client

import (
	"context"
	"net/url"
)

// ListDatabasesParams — фильтры списка баз.
type ListDatabasesParams struct {
	// Services — ограничиться этими сервисами.
	Services []string
	// Codes — ограничиться этими кодами.
	Codes []string
	// Detail — вернуть статистику по базам вместо плоского списка имён.
	Detail bool
	// Expand — раскрывать шардированные базы до отдельных шардов.
	Expand bool
}

// S3ConfigRequest — настройки S3 для бэкапа и восстановления баз.
//
// Учётные данные хранятся на стороне сервиса в зашифрованном виде.
type S3ConfigRequest struct {
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
	Bucket          string `json:"bucket,omitempty"`
	Region          string `json:"region,omitempty"`
}

// ListDatabases возвращает список баз, сгруппированный по типу
// хранилища. Форма ответа зависит от Detail, поэтому результат —
// generic map.
func (c *Client) ListDatabases(ctx context.Context, params ListDatabasesParams) (map[string]any, error) {
	query := url.Values{}
	setStrings(query, "services", params.Services)
	setStrings(query, "codes", params.Codes)
	if params.Detail {
		query.Set("detail", "true")
	}
	if params.Expand {
		query.Set("expand", "true")
	}

	databases := map[string]any{}
	err := c.doJSON(ctx, "GET", "/db/databases", query, nil, &databases)
	if err != nil {
		return nil, err
	}
	return databases, nil
}

// GetS3Config возвращает текущую конфигурацию S3.
//
// Если конфигурация не задана, сервис отвечает 204 — тогда
// возвращается пустая map, не ошибка.
func (c *Client) GetS3Config(ctx context.Context) (map[string]any, error) {
	cfg := map[string]any{}
	err := c.doJSON(ctx, "GET", "/db/s3config", nil, nil, &cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetS3Config устанавливает конфигурацию S3.
func (c *Client) SetS3Config(ctx context.Context, req S3ConfigRequest) (*StatusResponse, error) {
	var status StatusResponse
	err := c.doJSON(ctx, "PUT", "/db/s3config", nil, req, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// S3PushDatabases отправляет базы в S3.
func (c *Client) S3PushDatabases(ctx context.Context, services, codes []string) (*StatusResponse, error) {
	query := url.Values{}
	setStrings(query, "services", services)
	setStrings(query, "codes", codes)

	var status StatusResponse
	err := c.doJSON(ctx, "PUT", "/db/s3", query, nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// S3PullDatabases восстанавливает базы из S3. С force существующая
// база перезаписывается (по умолчанию сервис отвечает ошибкой).
func (c *Client) S3PullDatabases(ctx context.Context, services, codes []string, force bool) (*StatusResponse, error) {
	query := url.Values{}
	setStrings(query, "services", services)
	setStrings(query, "codes", codes)
	if force {
		query.Set("force", "true")
	}

	var status StatusResponse
	err := c.doJSON(ctx, "GET", "/db/s3", query, nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// OptimizeDatabases запускает оптимизацию баз (VACUUM) на стороне
// сервиса.
func (c *Client) OptimizeDatabases(ctx context.Context, services, codes []string) (*StatusResponse, error) {
	query := url.Values{}
	setStrings(query, "services", services)
	setStrings(query, "codes", codes)

	var status StatusResponse
	err := c.doJSON(ctx, "POST", "/db/optimizations", query, nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
