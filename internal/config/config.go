package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the harness
type Config struct {
	// Working directory, anchors storage and manifest paths
	WorkDir string

	// Target service settings
	Endpoint       string
	RuntimeName    string
	RuntimeVersion string
	ExecTime       string
	HTTPTimeout    time.Duration

	// Run shape settings
	Requests int
	Workers  int

	// Output settings
	OutputJSONFile string
	OutputDir      string
	HistoryFile    string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Requests       int
	Workers        int
	URL            string
	Timeout        time.Duration
	ExecTime       string
	Runtime        string
	RuntimeVersion string
	OpenFailures   bool
	Message        string
	Limit          int
	Template       string
	RuntimesDir    string
	Output         string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		WorkDir:        DefaultWorkDir,
		Endpoint:       DefaultEndpoint,
		RuntimeName:    DefaultRuntimeName,
		RuntimeVersion: DefaultRuntimeVersion,
		ExecTime:       DefaultExecTime,
		HTTPTimeout:    DefaultHTTPTimeout,
		Requests:       DefaultRequests,
		Workers:        DefaultWorkers,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputDir:      DefaultOutputDir,
		HistoryFile:    DefaultHistoryFile,
		Flags:          Flags{Requests: DefaultRequests, Workers: DefaultWorkers, Limit: DefaultRunsLimit},
	}
}

// FromEnv creates a config with defaults, overlaid with values from a .env
// file (when one exists) and EXECBENCH_* environment variables.
func FromEnv() *Config {
	cfg := New()

	// A missing .env file is fine, plain environment variables still apply
	_ = godotenv.Load(filepath.Join(cfg.WorkDir, ".env"))

	if v := os.Getenv("EXECBENCH_URL"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("EXECBENCH_RUNTIME"); v != "" {
		cfg.RuntimeName = v
	}
	if v := os.Getenv("EXECBENCH_RUNTIME_VERSION"); v != "" {
		cfg.RuntimeVersion = v
	}
	if v := os.Getenv("EXECBENCH_EXEC_TIME"); v != "" {
		cfg.ExecTime = v
	}
	if v := os.Getenv("EXECBENCH_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("EXECBENCH_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	return cfg
}

// Apply copies flags into the config and applies non-zero overrides
func (c *Config) Apply(flags Flags) {
	c.Flags = flags

	if flags.Requests > 0 {
		c.Requests = flags.Requests
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.URL != "" {
		c.Endpoint = flags.URL
	}
	if flags.Timeout > 0 {
		c.HTTPTimeout = flags.Timeout
	}
	if flags.ExecTime != "" {
		c.ExecTime = flags.ExecTime
	}
	if flags.Runtime != "" {
		c.RuntimeName = flags.Runtime
	}
	if flags.RuntimeVersion != "" {
		c.RuntimeVersion = flags.RuntimeVersion
	}
}

// Validate checks the run shape against supported bounds
func (c *Config) Validate() error {
	if c.Requests < 1 || c.Requests > MaxRequests {
		return fmt.Errorf("requests must be between 1 and %d, got %d", MaxRequests, c.Requests)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	return nil
}

// GetOutputPath returns the full path to the results JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.WorkDir, c.OutputDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryPath returns the full path to the run history database
func (c *Config) GetHistoryPath() string {
	p := filepath.Join(c.WorkDir, c.OutputDir, c.HistoryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetRuntimesDir returns the runtime descriptor directory, using flag if provided
func (c *Config) GetRuntimesDir() string {
	if c.Flags.RuntimesDir != "" {
		if filepath.IsAbs(c.Flags.RuntimesDir) {
			return c.Flags.RuntimesDir
		}
		return filepath.Join(c.WorkDir, c.Flags.RuntimesDir)
	}
	return filepath.Join(c.WorkDir, DefaultRuntimesDir)
}

// GetTemplatePath returns the manifest template path, using flag if provided
func (c *Config) GetTemplatePath() string {
	if c.Flags.Template != "" {
		return c.Flags.Template
	}
	return filepath.Join(c.GetRuntimesDir(), DefaultTemplateFile)
}

// GetManifestPath returns the generated manifest path, using flag if provided
func (c *Config) GetManifestPath() string {
	if c.Flags.Output != "" {
		return c.Flags.Output
	}
	return filepath.Join(c.GetRuntimesDir(), DefaultManifestFile)
}
