package config

import "time"

const (
	// DefaultWorkDir is the default working directory
	DefaultWorkDir = "."
	// DefaultEndpoint is the default execution service endpoint
	DefaultEndpoint = "http://localhost:3000/api/v1/execute"
	// DefaultRuntimeName is the default runtime requests are executed with
	DefaultRuntimeName = "go"
	// DefaultRuntimeVersion is the default runtime version
	DefaultRuntimeVersion = "1.22"
	// DefaultExecTime is the default service-side execution time limit
	DefaultExecTime = "2s"
	// DefaultHTTPTimeout is the default client-side deadline per request
	DefaultHTTPTimeout = 10 * time.Second
	// DefaultRequests is the default number of requests per run
	DefaultRequests = 50
	// DefaultWorkers is the default number of concurrent workers
	DefaultWorkers = 5
	// MaxRequests is the largest supported run size
	MaxRequests = 1000000
	// MaxWorkers is the largest supported worker count
	MaxWorkers = 1000
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputDir is the default output directory
	DefaultOutputDir = "storage"
	// DefaultHistoryFile is the default run history database file name
	DefaultHistoryFile = "history.db"
	// DefaultRunsLimit is the default number of history entries listed
	DefaultRunsLimit = 20
	// DefaultRuntimesDir is the default runtime descriptor directory
	DefaultRuntimesDir = "runtimes"
	// DefaultTemplateFile is the default manifest template file name
	DefaultTemplateFile = "template.nix"
	// DefaultManifestFile is the default generated manifest file name
	DefaultManifestFile = "default.nix"
	// DefaultSmokeMessage is the message the smoke command round-trips
	DefaultSmokeMessage = "it works"
)
