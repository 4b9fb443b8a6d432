package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewEchoRequest(t *testing.T) {
	opts := Options{
		RuntimeName:    "go",
		RuntimeVersion: "1.22",
		ExecTime:       "2s",
		AllowRead:      true,
	}

	req := NewEchoRequest("41", opts)

	if req.Runtime.Name != "go" {
		t.Errorf("expected runtime go, got %s", req.Runtime.Name)
	}
	if req.Runtime.Version != "1.22" {
		t.Errorf("expected version 1.22, got %s", req.Runtime.Version)
	}
	if !strings.Contains(req.Project.Entry, `fmt.Print("41")`) {
		t.Errorf("entry should print the message without a newline, got %s", req.Project.Entry)
	}
	if strings.Contains(req.Project.Entry, "Println") {
		t.Errorf("echo entry should not use Println, got %s", req.Project.Entry)
	}
	if req.Process.Time != "2s" {
		t.Errorf("expected process time 2s, got %s", req.Process.Time)
	}
	if !req.Process.Permissions.Read {
		t.Errorf("expected read permission to be set")
	}
}

func TestNewEchoLineRequest(t *testing.T) {
	req := NewEchoLineRequest("it works", Options{RuntimeName: "go"})

	if !strings.Contains(req.Project.Entry, `fmt.Println("it works")`) {
		t.Errorf("entry should print the message with a newline, got %s", req.Project.Entry)
	}
}

func TestExecutionRequest_WireFormat(t *testing.T) {
	req := NewEchoRequest("7", Options{
		RuntimeName:    "go",
		RuntimeVersion: "1.22",
		ExecTime:       "2s",
		AllowRead:      true,
	})

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)

	for _, want := range []string{
		`"runtime":{"name":"go","version":"1.22"}`,
		`"time":"2s"`,
		`"permissions":{"read":true}`,
		`"entry":`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %s, got %s", want, body)
		}
	}

	// No files are attached, the key must be omitted entirely
	if strings.Contains(body, `"files"`) {
		t.Errorf("expected no files key, got %s", body)
	}
}

func TestExecutionResponse_Decode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		successful bool
		stdout     string
	}{
		{
			name:       "successful run",
			body:       `{"status":"successful","output":{"compile":{"stdout":""},"run":{"stdout":"41","stderr":"","time":12,"memory":1024,"exit_code":0}}}`,
			successful: true,
			stdout:     "41",
		},
		{
			name:       "failed run",
			body:       `{"status":"failed","output":{"run":{"stdout":"","stderr":"exit status 1"}}}`,
			successful: false,
			stdout:     "",
		},
		{
			name:       "extra fields ignored",
			body:       `{"status":"successful","request_id":"abc-123","output":{"run":{"stdout":"ok"}},"queue_position":4}`,
			successful: true,
			stdout:     "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ExecutionResponse
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if resp.Successful() != tt.successful {
				t.Errorf("expected successful=%v, got %v", tt.successful, resp.Successful())
			}
			if resp.Stdout() != tt.stdout {
				t.Errorf("expected stdout %q, got %q", tt.stdout, resp.Stdout())
			}
		})
	}
}
