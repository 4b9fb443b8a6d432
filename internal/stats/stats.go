package stats

import (
	"sort"
	"time"

	"execbench/internal/domain"
)

// Summary aggregates the outcomes of one load run
type Summary struct {
	Total             int
	Succeeded         int
	Mismatches        int
	TransportErrors   int
	ExecutionFailures int
	ProtocolErrors    int
	Wall              time.Duration
	Mean              time.Duration
	Min               time.Duration
	Max               time.Duration
	P50               time.Duration
	P95               time.Duration
	P99               time.Duration
}

// Failed returns the total number of failed requests
func (s Summary) Failed() int {
	return s.Mismatches + s.TransportErrors + s.ExecutionFailures + s.ProtocolErrors
}

// Summarize computes summary statistics over a completed run. Latency figures
// include failed requests: time spent on a failure still loads the service.
func Summarize(outcomes []domain.Outcome, wall time.Duration) Summary {
	s := Summary{Total: len(outcomes), Wall: wall}
	if len(outcomes) == 0 {
		return s
	}

	durations := make([]time.Duration, 0, len(outcomes))
	var total time.Duration
	s.Min = outcomes[0].Elapsed
	for _, o := range outcomes {
		durations = append(durations, o.Elapsed)
		total += o.Elapsed
		if o.Elapsed < s.Min {
			s.Min = o.Elapsed
		}
		if o.Elapsed > s.Max {
			s.Max = o.Elapsed
		}
		switch o.Kind {
		case domain.KindNone:
			s.Succeeded++
		case domain.KindMismatch:
			s.Mismatches++
		case domain.KindTransport:
			s.TransportErrors++
		case domain.KindExecutionFailed:
			s.ExecutionFailures++
		case domain.KindProtocol:
			s.ProtocolErrors++
		}
	}
	s.Mean = total / time.Duration(len(outcomes))

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	s.P50 = percentile(durations, 50)
	s.P95 = percentile(durations, 95)
	s.P99 = percentile(durations, 99)

	return s
}

// percentile returns the p-th percentile of sorted durations using linear
// interpolation between the two nearest ranks
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + time.Duration(frac*float64(sorted[upper]-sorted[lower]))
}

// Meta converts the summary into persistable run metadata. The timestamp is
// left for the storage layer to fill at save time.
func (s Summary) Meta(workers int, endpoint string) domain.RunMeta {
	return domain.RunMeta{
		TotalRequests:     s.Total,
		Succeeded:         s.Succeeded,
		Mismatches:        s.Mismatches,
		TransportErrors:   s.TransportErrors,
		ExecutionFailures: s.ExecutionFailures,
		ProtocolErrors:    s.ProtocolErrors,
		Wall:              s.Wall.String(),
		WallSeconds:       s.Wall.Seconds(),
		MeanSeconds:       s.Mean.Seconds(),
		MinSeconds:        s.Min.Seconds(),
		MaxSeconds:        s.Max.Seconds(),
		P50Seconds:        s.P50.Seconds(),
		P95Seconds:        s.P95.Seconds(),
		P99Seconds:        s.P99.Seconds(),
		Workers:           workers,
		Endpoint:          endpoint,
	}
}
