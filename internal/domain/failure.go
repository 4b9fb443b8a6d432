package domain

// RequestFailure describes one failed request from a load run
type RequestFailure struct {
	Index          int         `json:"request"`
	Kind           FailureKind `json:"kind"`
	Expected       string      `json:"expected"`
	Observed       string      `json:"observed,omitempty"`
	Status         string      `json:"status,omitempty"`
	Message        string      `json:"message"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	Acknowledged   bool        `json:"acknowledged,omitempty"` // Track if failure was reviewed in the viewer
}

// FailuresOf extracts the failed outcomes as persistable failure records,
// in request-index order.
func FailuresOf(outcomes []Outcome) []RequestFailure {
	var failures []RequestFailure
	for _, o := range outcomes {
		if o.OK {
			continue
		}
		failures = append(failures, RequestFailure{
			Index:          o.Index,
			Kind:           o.Kind,
			Expected:       o.Expected,
			Observed:       o.Observed,
			Status:         o.Status,
			Message:        o.Message(),
			ElapsedSeconds: o.Elapsed.Seconds(),
		})
	}
	return failures
}
