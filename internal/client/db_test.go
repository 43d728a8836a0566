package client

import (
	"context"
	"reflect"
	"testing"
)

func TestListDatabasesQuery(t *testing.T) {
	c, cap := newTestClient(t, 200, `{"postgres": ["usa-stk-trades"], "sqlite": []}`)

	databases, err := c.ListDatabases(context.Background(), ListDatabasesParams{
		Services: []string{"realtime"},
		Codes:    []string{"usa-stk-trades"},
		Detail:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cap.Method != "GET" || cap.Path != "/db/databases" {
		t.Errorf("unexpected request: %s %s", cap.Method, cap.Path)
	}
	if cap.Query.Get("services") != "realtime" {
		t.Errorf("unexpected services: %v", cap.Query)
	}
	if cap.Query.Get("detail") != "true" {
		t.Errorf("expected detail=true, got %v", cap.Query)
	}
	if cap.Query.Has("expand") {
		t.Errorf("expand must be omitted, got %v", cap.Query)
	}
	if _, ok := databases["postgres"]; !ok {
		t.Errorf("unexpected response: %v", databases)
	}
}

func TestListDatabasesOmitsEmptyFilters(t *testing.T) {
	c, cap := newTestClient(t, 200, `{}`)

	if _, err := c.ListDatabases(context.Background(), ListDatabasesParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cap.Query) != 0 {
		t.Errorf("expected no query params, got %v", cap.Query)
	}
}

func TestSetS3ConfigPayload(t *testing.T) {
	c, cap := newTestClient(t, 200, `{"status": "updated"}`)

	_, err := c.SetS3Config(context.Background(), S3ConfigRequest{
		AccessKeyID: "AKIA123",
		Bucket:      "my-backups",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cap.Method != "PUT" || cap.Path != "/db/s3config" {
		t.Errorf("unexpected request: %s %s", cap.Method, cap.Path)
	}

	want := map[string]any{
		"access_key_id": "AKIA123",
		"bucket":        "my-backups",
	}
	if got := decodeBody(t, cap.Body); !reflect.DeepEqual(got, want) {
		t.Errorf("payload mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestS3PushDatabases(t *testing.T) {
	c, cap := newTestClient(t, 200, `{"status": "the databases will be pushed to S3 asynchronously"}`)

	status, err := c.S3PushDatabases(context.Background(), nil, []string{"usa-stk-trades"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cap.Method != "PUT" || cap.Path != "/db/s3" {
		t.Errorf("unexpected request: %s %s", cap.Method, cap.Path)
	}
	if cap.Query.Get("codes") != "usa-stk-trades" {
		t.Errorf("unexpected codes: %v", cap.Query)
	}
	if cap.Query.Has("services") {
		t.Errorf("services must be omitted, got %v", cap.Query)
	}
	if status.Status == "" {
		t.Error("expected status message")
	}
}

func TestS3PullDatabasesForce(t *testing.T) {
	c, cap := newTestClient(t, 200, `{}`)

	if _, err := c.S3PullDatabases(context.Background(), nil, []string{"usa-stk-trades"}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cap.Method != "GET" || cap.Path != "/db/s3" {
		t.Errorf("unexpected request: %s %s", cap.Method, cap.Path)
	}
	if cap.Query.Get("force") != "true" {
		t.Errorf("expected force=true, got %v", cap.Query)
	}
}

func TestOptimizeDatabases(t *testing.T) {
	c, cap := newTestClient(t, 200, `{"status": "optimizing"}`)

	if _, err := c.OptimizeDatabases(context.Background(), []string{"realtime"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cap.Method != "POST" || cap.Path != "/db/optimizations" {
		t.Errorf("unexpected request: %s %s", cap.Method, cap.Path)
	}
	if cap.Query.Get("services") != "realtime" {
		t.Errorf("unexpected services: %v", cap.Query)
	}
}
