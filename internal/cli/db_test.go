package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/shaiso/tickvault/internal/client"
	"github.com/shaiso/tickvault/internal/config"
)

func execDBCmd(t *testing.T, handler http.HandlerFunc, args ...string) error {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	clientFn := func() (*client.Client, error) {
		return client.New(&config.Config{APIURL: srv.URL, TimeoutSec: 5}), nil
	}
	outputFn := func() *Output {
		return &Output{w: io.Discard, errW: io.Discard}
	}

	cmd := NewDBCmd(clientFn, outputFn)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestDBListFilters(t *testing.T) {
	var method, path string
	var query map[string][]string

	handler := func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		query = r.URL.Query()
		w.Write([]byte(`{"postgres": ["usa-stk-trades"]}`))
	}

	if err := execDBCmd(t, handler, "list", "-s", "realtime", "-d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method != "GET" || path != "/db/databases" {
		t.Errorf("unexpected request: %s %s", method, path)
	}
	if !reflect.DeepEqual(query["services"], []string{"realtime"}) {
		t.Errorf("unexpected services: %v", query)
	}
	if got := query["detail"]; !reflect.DeepEqual(got, []string{"true"}) {
		t.Errorf("expected detail=true, got %v", query)
	}
}

// s3config без флагов читает конфигурацию, с флагами — записывает.
func TestS3ConfigGetOrSet(t *testing.T) {
	var method string
	var body []byte

	handler := func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}

	if err := execDBCmd(t, handler, "s3config"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != "GET" {
		t.Errorf("expected GET without flags, got %s", method)
	}

	if err := execDBCmd(t, handler, "s3config", "--bucket", "my-backups"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != "PUT" {
		t.Errorf("expected PUT with flags, got %s", method)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"bucket": "my-backups"}) {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestS3PullForce(t *testing.T) {
	var method string
	var query map[string][]string

	handler := func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		query = r.URL.Query()
		w.Write([]byte(`{"status": "pulling"}`))
	}

	if err := execDBCmd(t, handler, "s3pull", "-c", "usa-stk-trades", "--force"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method != "GET" {
		t.Errorf("expected GET, got %s", method)
	}
	if !reflect.DeepEqual(query["force"], []string{"true"}) {
		t.Errorf("expected force=true, got %v", query)
	}
}

func TestOptimizeCmd(t *testing.T) {
	var method, path string

	handler := func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.Write([]byte(`{"status": "optimizing"}`))
	}

	if err := execDBCmd(t, handler, "optimize", "-c", "usa-stk-trades"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method != "POST" || path != "/db/optimizations" {
		t.Errorf("unexpected request: %s %s", method, path)
	}
}
