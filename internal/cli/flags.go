package cli

import (
	"time"

	"execbench/internal/config"
)

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Requests:       f.Requests,
		Workers:        f.Workers,
		URL:            f.URL,
		Timeout:        f.Timeout,
		ExecTime:       f.ExecTime,
		Runtime:        f.Runtime,
		RuntimeVersion: f.RuntimeVersion,
		OpenFailures:   f.OpenFailures,
		Message:        f.Message,
		Limit:          f.Limit,
		Template:       f.Template,
		RuntimesDir:    f.RuntimesDir,
		Output:         f.Output,
	}
}
