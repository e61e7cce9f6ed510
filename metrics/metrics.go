package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/embedded-infra/ret/types"
)

const (
	MetricsNamespace = "ret"
)

var (
	Debug                bool = true
	validResults              = []types.Result{types.ResultPass, types.ResultFail, types.ResultTimeout, types.ResultTagError}
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	testResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "test_results_total",
		Help:      "Count of reported test results",
	}, []string{
		"run_id",
		"path",
		"result",
	})

	runResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_results",
		Help:      "Aggregate result of test runs",
	}, []string{
		"run_id",
		"result",
	})

	runTestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_test_total",
		Help:      "Total number of tests reported per run",
	}, []string{
		"run_id",
	})

	runTestPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_test_passed",
		Help:      "Number of passed tests per run",
	}, []string{
		"run_id",
	})

	runTestFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "run_test_failed",
		Help:      "Number of failed tests per run",
	}, []string{
		"run_id",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration",
		Help:      "Duration of test runs",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordTestResult counts one test result line of a run report.
func RecordTestResult(runID string, path string, result types.Result) {
	if !isValidResult(result) {
		log.Error("RecordTestResult - invalid result", "result", result)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "test_results_total",
			"run_id", runID,
			"path", path,
			"result", result)
	}
	testResultsTotal.WithLabelValues(runID, path, string(result)).Inc()
}

// RecordRun records the aggregate outcome of a completed run.
func RecordRun(
	runID string,
	result types.Result,
	stats types.RunStats,
	duration time.Duration,
) {
	runResults.WithLabelValues(runID, string(result)).Set(1)
	runTestTotal.WithLabelValues(runID).Add(float64(stats.Total))
	runTestPassed.WithLabelValues(runID).Add(float64(stats.Passed))
	runTestFailed.WithLabelValues(runID).Add(float64(stats.Failed + stats.Timeouts + stats.TagErrors))
	runDuration.WithLabelValues(runID).Set(duration.Seconds())
}

func isValidResult(result types.Result) bool {
	return slices.Contains(validResults, result)
}
