package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"execbench/internal/config"
	"execbench/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.WorkDir = t.TempDir()
	return cfg
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := testConfig(t)
	storage := NewJSONStorage(cfg)

	meta := domain.RunMeta{
		TotalRequests: 3,
		Succeeded:     2,
		Mismatches:    1,
		Wall:          "1.5s",
		WallSeconds:   1.5,
		MeanSeconds:   0.5,
		Workers:       2,
		Endpoint:      "http://localhost:3000/api/v1/execute",
	}
	failures := []domain.RequestFailure{
		{
			Index:          2,
			Kind:           domain.KindMismatch,
			Expected:       "2",
			Observed:       "3",
			Status:         "successful",
			Message:        `output "3", expected "2"`,
			ElapsedSeconds: 0.4,
		},
	}

	if err := storage.Save(meta, failures); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := storage.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Meta.TotalRequests != 3 {
		t.Errorf("expected TotalRequests 3, got %d", loaded.Meta.TotalRequests)
	}
	if loaded.Meta.Succeeded != 2 {
		t.Errorf("expected Succeeded 2, got %d", loaded.Meta.Succeeded)
	}
	if loaded.Meta.Timestamp == "" {
		t.Errorf("expected save to stamp the metadata")
	}
	if len(loaded.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(loaded.Failures))
	}
	if loaded.Failures[0].Kind != domain.KindMismatch {
		t.Errorf("expected mismatch kind, got %s", loaded.Failures[0].Kind)
	}
	if loaded.Failures[0].Observed != "3" {
		t.Errorf("expected observed output to round-trip, got %q", loaded.Failures[0].Observed)
	}
}

func TestJSONStorage_SaveCreatesOutputDir(t *testing.T) {
	cfg := testConfig(t)
	storage := NewJSONStorage(cfg)

	if err := storage.Save(domain.RunMeta{TotalRequests: 1, Succeeded: 1}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	path := cfg.GetOutputPath()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected results file at %s: %v", path, err)
	}
	if !strings.HasPrefix(path, cfg.WorkDir) {
		t.Errorf("expected results under the work dir, got %s", path)
	}
	if filepath.Base(path) != config.DefaultOutputJSONFile {
		t.Errorf("expected default file name, got %s", filepath.Base(path))
	}
}

func TestJSONStorage_SaveOutputPreservesAcknowledged(t *testing.T) {
	cfg := testConfig(t)
	storage := NewJSONStorage(cfg)

	output := &domain.RunOutput{
		Meta: domain.RunMeta{TotalRequests: 2, Succeeded: 1},
		Failures: []domain.RequestFailure{
			{Index: 1, Kind: domain.KindTransport, Message: "connection refused", Acknowledged: true},
		},
	}

	if err := storage.SaveOutput(output); err != nil {
		t.Fatalf("save output failed: %v", err)
	}

	loaded, err := storage.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(loaded.Failures))
	}
	if !loaded.Failures[0].Acknowledged {
		t.Errorf("expected acknowledged flag to survive the round trip")
	}
}

func TestJSONStorage_LoadMissingFile(t *testing.T) {
	cfg := testConfig(t)
	storage := NewJSONStorage(cfg)

	if _, err := storage.Load(); err == nil {
		t.Errorf("expected error loading before any run was saved")
	}
}
