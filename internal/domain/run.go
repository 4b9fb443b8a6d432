package domain

// RunMeta contains metadata about a completed load run
type RunMeta struct {
	TotalRequests     int     `json:"total_requests"`
	Succeeded         int     `json:"succeeded"`
	Mismatches        int     `json:"mismatches"`
	TransportErrors   int     `json:"transport_errors"`
	ExecutionFailures int     `json:"execution_failures"`
	ProtocolErrors    int     `json:"protocol_errors"`
	Wall              string  `json:"wall"`
	WallSeconds       float64 `json:"wall_seconds"`
	MeanSeconds       float64 `json:"mean_seconds"`
	MinSeconds        float64 `json:"min_seconds"`
	MaxSeconds        float64 `json:"max_seconds"`
	P50Seconds        float64 `json:"p50_seconds"`
	P95Seconds        float64 `json:"p95_seconds"`
	P99Seconds        float64 `json:"p99_seconds"`
	Workers           int     `json:"workers"`
	Endpoint          string  `json:"endpoint"`
	Timestamp         string  `json:"timestamp"`
}

// RunOutput is the complete persisted output of a load run
type RunOutput struct {
	Meta     RunMeta          `json:"meta"`
	Failures []RequestFailure `json:"failures"`
}
