package protocol

import "fmt"

// File is an auxiliary source or resource file shipped with a request
type File struct {
	Name     string `json:"name"`
	Contents string `json:"contents"`
}

// Permissions mirrors the service's process permission flags
type Permissions struct {
	Read    bool `json:"read,omitempty"`
	Write   bool `json:"write,omitempty"`
	Network bool `json:"network,omitempty"`
}

// Process carries execution limits and input for a request
type Process struct {
	Stdin       string            `json:"stdin,omitempty"`
	Time        string            `json:"time,omitempty"`
	Permissions Permissions       `json:"permissions,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
}

// Runtime selects the language runtime an entry program runs under
type Runtime struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Project holds the entry program and its supporting files
type Project struct {
	Entry string `json:"entry,omitempty"`
	Files []File `json:"files,omitempty"`
}

// ExecutionRequest is the wire format accepted by the execution endpoint
type ExecutionRequest struct {
	Runtime Runtime `json:"runtime"`
	Project Project `json:"project"`
	Process Process `json:"process,omitempty"`
}

// Options configures the fixed parts of a generated request
type Options struct {
	RuntimeName    string
	RuntimeVersion string
	ExecTime       string
	AllowRead      bool
}

// NewEchoRequest builds a request whose entry program prints msg to stdout
// without a trailing newline, so the expected output is exactly msg.
// The message is spliced into the program source as-is; messages containing
// quote or backslash characters produce an entry that fails to compile.
func NewEchoRequest(msg string, opts Options) ExecutionRequest {
	entry := fmt.Sprintf("package main\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Print(\"%s\")\n}", msg)
	return newRequest(entry, opts)
}

// NewEchoLineRequest builds a request whose entry program prints msg followed
// by a newline. Used by the smoke check, which does not verify output.
func NewEchoLineRequest(msg string, opts Options) ExecutionRequest {
	entry := fmt.Sprintf("package main\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"%s\")\n}", msg)
	return newRequest(entry, opts)
}

func newRequest(entry string, opts Options) ExecutionRequest {
	return ExecutionRequest{
		Runtime: Runtime{Name: opts.RuntimeName, Version: opts.RuntimeVersion},
		Project: Project{Entry: entry},
		Process: Process{
			Time:        opts.ExecTime,
			Permissions: Permissions{Read: opts.AllowRead},
		},
	}
}
