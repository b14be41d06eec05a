package snapshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeLaterOverwritesEarlier(t *testing.T) {
	t.Parallel()

	summary := map[string]any{"weight": float64(0), "totalSteps": float64(9000)}
	body := map[string]any{"weight": float64(80500), "bmi": float64(24.1)}

	got := Merge(summary, body)

	want := Snapshot{
		"weight":     float64(80500),
		"totalSteps": float64(9000),
		"bmi":        float64(24.1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOfNothingIsEmptyNotNil(t *testing.T) {
	t.Parallel()

	got := Merge()
	if got == nil {
		t.Fatal("Merge() = nil, want empty snapshot")
	}
	if len(got) != 0 {
		t.Errorf("Merge() has %d keys, want 0", len(got))
	}
}

func TestHRVUnknown(t *testing.T) {
	t.Parallel()

	want := map[string]any{"status": "UNKNOWN"}
	if diff := cmp.Diff(want, HRVUnknown()); diff != "" {
		t.Errorf("HRVUnknown() mismatch (-want +got):\n%s", diff)
	}
}
