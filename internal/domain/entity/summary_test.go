package entity

import "testing"

func TestBuildResultsSummary(t *testing.T) {
	entries := []LogEntry{
		{Timestamp: "2024-06-02T10:00:00Z", Severity: "ERROR", ResourceType: "dataflow_job"},
		{Timestamp: "2024-06-01T08:00:00Z", Severity: "ERROR", ResourceType: "dataflow_job"},
		{Timestamp: "2024-06-03T12:00:00Z", Severity: "INFO", ResourceType: "gce_instance"},
		{Severity: "", ResourceType: ""},
	}

	summary := BuildResultsSummary(entries)

	if summary.TotalEntries != 4 {
		t.Errorf("TotalEntries = %d, want 4", summary.TotalEntries)
	}
	if summary.SeverityCounts["ERROR"] != 2 {
		t.Errorf("SeverityCounts[ERROR] = %d, want 2", summary.SeverityCounts["ERROR"])
	}
	if summary.SeverityCounts["UNKNOWN"] != 1 {
		t.Errorf("SeverityCounts[UNKNOWN] = %d, want 1", summary.SeverityCounts["UNKNOWN"])
	}
	if summary.ResourceTypes["dataflow_job"] != 2 {
		t.Errorf("ResourceTypes[dataflow_job] = %d, want 2", summary.ResourceTypes["dataflow_job"])
	}
	if summary.ResourceTypes["UNKNOWN"] != 1 {
		t.Errorf("ResourceTypes[UNKNOWN] = %d, want 1", summary.ResourceTypes["UNKNOWN"])
	}
	if summary.TimeRange.Earliest != "2024-06-01T08:00:00Z" {
		t.Errorf("Earliest = %q, want 2024-06-01T08:00:00Z", summary.TimeRange.Earliest)
	}
	if summary.TimeRange.Latest != "2024-06-03T12:00:00Z" {
		t.Errorf("Latest = %q, want 2024-06-03T12:00:00Z", summary.TimeRange.Latest)
	}
}

func TestBuildResultsSummaryEmpty(t *testing.T) {
	summary := BuildResultsSummary(nil)

	if summary.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, want 0", summary.TotalEntries)
	}
	if summary.TimeRange.Earliest != "" || summary.TimeRange.Latest != "" {
		t.Errorf("TimeRange should be empty for no entries, got %+v", summary.TimeRange)
	}
}
