package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	psInvocations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bluepill",
		Name:      "ps_invocations_total",
		Help:      "Total number of process-table listings executed.",
	})

	daemonizeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bluepill",
		Name:      "daemonize_total",
		Help:      "Daemonization attempts by outcome.",
	}, []string{"outcome"})

	execTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bluepill",
		Name:      "exec_total",
		Help:      "Blocking command executions by outcome.",
	}, []string{"outcome"})

	execDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bluepill",
		Name:      "exec_duration_seconds",
		Help:      "Wall-clock duration of blocking command executions.",
	})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bluepill",
		Name:      "build_info",
		Help:      "Build metadata for the running bluepill binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(psInvocations, daemonizeTotal, execTotal, execDuration, buildInfo)
}

// Registry returns the Prometheus registry containing all bluepill metrics.
func Registry() *prometheus.Registry {
	return registry
}

// IncProcessListings records one execution of the process-table listing.
func IncProcessListings() {
	psInvocations.Inc()
}

// ObserveDaemonize records the outcome of a daemonization attempt.
func ObserveDaemonize(err error) {
	daemonizeTotal.WithLabelValues(outcome(err)).Inc()
}

// ObserveExec records the outcome and duration of a blocking execution.
func ObserveExec(d time.Duration, err error) {
	execTotal.WithLabelValues(outcome(err)).Inc()
	execDuration.Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
