package xjson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGet(t *testing.T) {
	t.Parallel()

	v := Value{
		"dailySleepDTO": map[string]any{
			"sleepTimeSeconds": float64(27060),
			"sleepScores": map[string]any{
				"overall": map[string]any{"value": float64(82)},
			},
		},
		"status": "GOOD",
	}

	tests := []struct {
		name   string
		path   []string
		want   any
		wantOK bool
	}{
		{
			name:   "top level key",
			path:   []string{"status"},
			want:   "GOOD",
			wantOK: true,
		},
		{
			name:   "deep path",
			path:   []string{"dailySleepDTO", "sleepScores", "overall", "value"},
			want:   float64(82),
			wantOK: true,
		},
		{
			name:   "missing leaf",
			path:   []string{"dailySleepDTO", "sleepScores", "nap"},
			wantOK: false,
		},
		{
			name:   "missing root",
			path:   []string{"hrvSummary"},
			wantOK: false,
		},
		{
			name:   "traverse into scalar",
			path:   []string{"status", "value"},
			wantOK: false,
		},
		{
			name:   "empty path",
			path:   nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := v.Get(tt.path...)
			if ok != tt.wantOK {
				t.Fatalf("Get(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if tt.wantOK && !cmp.Equal(got, tt.want) {
				t.Errorf("Get(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetOnNilValue(t *testing.T) {
	t.Parallel()

	var v Value
	if _, ok := v.Get("anything"); ok {
		t.Error("Get on nil Value should report absent")
	}
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	v := Value{
		"weight":  float64(80.5),
		"steps":   float64(10234),
		"status":  "BALANCED",
		"summary": map[string]any{"status": "UNKNOWN"},
		"items":   []any{"a", "b"},
	}

	if got, ok := v.Float("weight"); !ok || got != 80.5 {
		t.Errorf("Float(weight) = %v, %v", got, ok)
	}
	if got, ok := v.Int("steps"); !ok || got != 10234 {
		t.Errorf("Int(steps) = %v, %v", got, ok)
	}
	if got, ok := v.String("status"); !ok || got != "BALANCED" {
		t.Errorf("String(status) = %v, %v", got, ok)
	}
	if got, ok := v.Map("summary"); !ok || got["status"] != "UNKNOWN" {
		t.Errorf("Map(summary) = %v, %v", got, ok)
	}
	if got, ok := v.Slice("items"); !ok || len(got) != 2 {
		t.Errorf("Slice(items) = %v, %v", got, ok)
	}

	if _, ok := v.Float("status"); ok {
		t.Error("Float on string should report absent")
	}
	if _, ok := v.Map("items"); ok {
		t.Error("Map on slice should report absent")
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"totalAverage":{"weight":80500.0,"bmi":24.1}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got, ok := v.Float("totalAverage", "bmi"); !ok || got != 24.1 {
		t.Errorf("Float(totalAverage, bmi) = %v, %v", got, ok)
	}

	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("Decode of invalid JSON should error")
	}
}
