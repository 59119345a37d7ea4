package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestEmitBuildInfoRegistersGauge(t *testing.T) {
	EmitBuildInfo()

	families, err := Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == "bluepill_build_info" {
			if len(fam.GetMetric()) == 0 {
				t.Fatal("build info gauge has no samples")
			}
			return
		}
	}
	t.Fatal("bluepill_build_info not registered")
}

func TestOutcomeCounters(t *testing.T) {
	ObserveDaemonize(nil)
	ObserveDaemonize(errors.New("boom"))
	ObserveExec(50*time.Millisecond, nil)

	families, err := Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	for _, name := range []string{"bluepill_daemonize_total", "bluepill_exec_total", "bluepill_exec_duration_seconds"} {
		if !found[name] {
			t.Fatalf("metric %s not gathered", name)
		}
	}
}
