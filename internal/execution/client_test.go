package execution

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"execbench/internal/domain"
	"execbench/internal/protocol"
)

func testOptions() protocol.Options {
	return protocol.Options{
		RuntimeName:    "go",
		RuntimeVersion: "1.22",
		ExecTime:       "2s",
		AllowRead:      true,
	}
}

func TestClient_Execute(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantKind   domain.FailureKind
		wantStatus string
		wantStdout string
	}{
		{
			name: "successful execution",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status":"successful","output":{"run":{"stdout":"1"}}}`))
			},
			wantKind:   domain.KindNone,
			wantStdout: "1",
		},
		{
			name: "service reports failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"failed","output":{"run":{"stderr":"exit status 2"}}}`))
			},
			wantKind:   domain.KindExecutionFailed,
			wantStatus: "failed",
		},
		{
			name: "rejected with HTTP 500 and JSON status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"status":"error"}`))
			},
			wantKind:   domain.KindExecutionFailed,
			wantStatus: "error",
		},
		{
			name: "rejected with bare HTTP 503",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`overloaded`))
			},
			wantKind:   domain.KindExecutionFailed,
			wantStatus: "503 Service Unavailable",
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>nope</html>`))
			},
			wantKind: domain.KindProtocol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second, 1)
			resp, err := client.Execute(context.Background(), protocol.NewEchoRequest("1", testOptions()))

			if tt.wantKind == domain.KindNone {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if resp.Stdout() != tt.wantStdout {
					t.Errorf("expected stdout %q, got %q", tt.wantStdout, resp.Stdout())
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error of kind %s, got success", tt.wantKind)
			}
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected *RequestError, got %T", err)
			}
			if reqErr.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, reqErr.Kind)
			}
			if tt.wantStatus != "" && reqErr.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, reqErr.Status)
			}
		})
	}
}

func TestClient_Execute_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 2*time.Second, 1)
	_, err := client.Execute(context.Background(), protocol.NewEchoRequest("1", testOptions()))
	if err == nil {
		t.Fatal("expected transport error against a closed server")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.Kind != domain.KindTransport {
		t.Errorf("expected kind %s, got %s", domain.KindTransport, reqErr.Kind)
	}
}

func TestClient_Execute_SendsWireFormat(t *testing.T) {
	var got protocol.ExecutionRequest
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"status":"successful","output":{"run":{"stdout":"9"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 1)
	if _, err := client.Execute(context.Background(), protocol.NewEchoRequest("9", testOptions())); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if contentType != "application/json" {
		t.Errorf("expected application/json content type, got %s", contentType)
	}
	if got.Runtime.Name != "go" || got.Runtime.Version != "1.22" {
		t.Errorf("expected runtime go 1.22, got %s %s", got.Runtime.Name, got.Runtime.Version)
	}
	if !strings.Contains(got.Project.Entry, `fmt.Print("9")`) {
		t.Errorf("expected entry printing the message, got %s", got.Project.Entry)
	}
	if got.Process.Time != "2s" {
		t.Errorf("expected process time 2s, got %s", got.Process.Time)
	}
}
