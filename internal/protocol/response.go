package protocol

// StatusSuccessful is the status the service reports when compilation and
// execution both completed.
const StatusSuccessful = "successful"

// ProcessResult is the captured output of one execution phase
type ProcessResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Output   string `json:"output"`
	Time     int32  `json:"time"`
	Memory   uint64 `json:"memory"`
	ExitCode int32  `json:"exit_code"`
}

// Output groups the compile and run phases of an execution
type Output struct {
	Compile ProcessResult `json:"compile"`
	Run     ProcessResult `json:"run"`
}

// ExecutionResponse is the wire format returned by the execution endpoint.
// Fields the harness does not inspect are ignored during decoding.
type ExecutionResponse struct {
	Status string `json:"status"`
	Output Output `json:"output"`
}

// Successful reports whether the service completed the execution
func (r *ExecutionResponse) Successful() bool {
	return r.Status == StatusSuccessful
}

// Stdout returns the run phase's captured standard output
func (r *ExecutionResponse) Stdout() string {
	return r.Output.Run.Stdout
}
