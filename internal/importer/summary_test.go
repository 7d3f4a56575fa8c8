package importer

import (
	"strings"
	"testing"

	"recall/internal/api"
)

func TestSummarizeFailedBoundsPreview(t *testing.T) {
	job := api.ImportStatus{
		Status:      api.TaskFailed,
		FailedWords: []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	summary := Summarize(job)

	if !strings.Contains(summary, "7 words") {
		t.Fatalf("summary missing total: %q", summary)
	}
	if !strings.Contains(summary, "a, b, c, d, e") {
		t.Fatalf("summary missing preview: %q", summary)
	}
	if strings.Contains(summary, ", f") {
		t.Fatalf("preview exceeds limit: %q", summary)
	}
}

func TestSummarizeCompletedWithPartialFailures(t *testing.T) {
	job := api.ImportStatus{
		Status:        api.TaskCompleted,
		Progress:      100,
		FailedDetails: []api.FailedWord{{Word: "ubiquitous", Stage: "translate", Reason: "timeout"}},
	}
	summary := Summarize(job)

	if !strings.Contains(summary, "completed") || !strings.Contains(summary, "1 failed") {
		t.Fatalf("partial failure not surfaced: %q", summary)
	}
	if !strings.Contains(summary, "ubiquitous") {
		t.Fatalf("failed word name missing: %q", summary)
	}
}

func TestSummarizeCleanCompletion(t *testing.T) {
	summary := Summarize(api.ImportStatus{Status: api.TaskCompleted, Progress: 100, Total: 120})
	if !strings.Contains(summary, "120 words") {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestSummarizeInFlight(t *testing.T) {
	summary := Summarize(api.ImportStatus{Status: api.TaskProcessing, Progress: 40, Total: 100, Processed: 40})
	if !strings.Contains(summary, "40/100") {
		t.Fatalf("unexpected summary %q", summary)
	}
}
