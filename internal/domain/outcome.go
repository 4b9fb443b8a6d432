package domain

import "time"

// FailureKind classifies why a logical request did not fully succeed.
type FailureKind string

const (
	// KindNone marks a request that succeeded end to end.
	KindNone FailureKind = ""
	// KindTransport covers connection, DNS and client-timeout failures.
	KindTransport FailureKind = "transport"
	// KindExecutionFailed covers non-200 responses and service-reported
	// non-success statuses.
	KindExecutionFailed FailureKind = "execution_failed"
	// KindProtocol covers response bodies that could not be decoded.
	KindProtocol FailureKind = "protocol"
	// KindMismatch covers verified responses whose stdout differed from the
	// expected output.
	KindMismatch FailureKind = "mismatch"
)

// Outcome records the result of one logical request. Exactly one Outcome
// exists per request index. Failed requests keep the elapsed time spent until
// the failure; the OK and Kind fields, not the duration, distinguish them
// from fast successes.
type Outcome struct {
	Index    int           // 1-based request index
	Expected string        // expected stdout
	Observed string        // stdout reported by the service
	Status   string        // service-reported status, empty on transport/protocol failure
	Elapsed  time.Duration // time from send until completion or failure
	OK       bool          // HTTP 200, successful status and exact output match
	Kind     FailureKind   // KindNone when OK
	Err      error         // underlying error when Kind != KindNone
}

// Message returns the outcome's error message, or "" for a success.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
