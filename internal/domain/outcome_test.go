package domain

import (
	"errors"
	"testing"
	"time"
)

func TestOutcome_Message(t *testing.T) {
	ok := Outcome{Index: 1, OK: true}
	if got := ok.Message(); got != "" {
		t.Errorf("expected empty message for a success, got %q", got)
	}

	failed := Outcome{Index: 2, Kind: KindTransport, Err: errors.New("connection refused")}
	if got := failed.Message(); got != "connection refused" {
		t.Errorf("expected underlying error message, got %q", got)
	}
}

func TestFailuresOf(t *testing.T) {
	outcomes := []Outcome{
		{Index: 1, OK: true, Expected: "1", Observed: "1", Elapsed: 100 * time.Millisecond},
		{Index: 2, Kind: KindMismatch, Expected: "2", Observed: "3", Status: "successful",
			Err: errors.New(`output "3", expected "2"`), Elapsed: 200 * time.Millisecond},
		{Index: 3, OK: true, Expected: "3", Observed: "3", Elapsed: 150 * time.Millisecond},
		{Index: 4, Kind: KindTransport, Expected: "4", Err: errors.New("connection refused"),
			Elapsed: 50 * time.Millisecond},
	}

	failures := FailuresOf(outcomes)

	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	if failures[0].Index != 2 || failures[1].Index != 4 {
		t.Errorf("expected failures for requests 2 and 4, got %d and %d",
			failures[0].Index, failures[1].Index)
	}
	if failures[0].Kind != KindMismatch {
		t.Errorf("expected mismatch kind, got %s", failures[0].Kind)
	}
	if failures[0].Observed != "3" {
		t.Errorf("expected observed output %q, got %q", "3", failures[0].Observed)
	}
	if failures[1].Message != "connection refused" {
		t.Errorf("expected transport message, got %q", failures[1].Message)
	}
	if failures[1].ElapsedSeconds != 0.05 {
		t.Errorf("expected elapsed 0.05s, got %f", failures[1].ElapsedSeconds)
	}
}

func TestFailuresOf_AllSucceeded(t *testing.T) {
	outcomes := []Outcome{
		{Index: 1, OK: true},
		{Index: 2, OK: true},
	}
	if failures := FailuresOf(outcomes); len(failures) != 0 {
		t.Errorf("expected no failures, got %d", len(failures))
	}
}
