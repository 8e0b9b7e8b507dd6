package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestObserveAnalysis(t *testing.T) {
	before := testutil.ToFloat64(analysesTotal.WithLabelValues(OutcomeSuccess))
	beforeErr := testutil.ToFloat64(analysesTotal.WithLabelValues(OutcomeError))

	ObserveAnalysis(25*time.Millisecond, OutcomeSuccess)
	ObserveAnalysis(-time.Second, "something else")
	ObserveAnalysis(time.Millisecond, OutcomeError)

	assert.Equal(t, before+2, testutil.ToFloat64(analysesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(analysesTotal.WithLabelValues(OutcomeError)))
}

func TestObserveSolves(t *testing.T) {
	solves := testutil.ToFloat64(segmentSolvesTotal)
	iterations := testutil.ToFloat64(solverIterationsTotal)
	nonConverged := testutil.ToFloat64(nonConvergedSolvesTotal)

	ObserveSolves(10, 42, 1)
	ObserveSolves(-1, -1, -1)

	assert.Equal(t, solves+10, testutil.ToFloat64(segmentSolvesTotal))
	assert.Equal(t, iterations+42, testutil.ToFloat64(solverIterationsTotal))
	assert.Equal(t, nonConverged+1, testutil.ToFloat64(nonConvergedSolvesTotal))
}

func TestObserveSweepValue(t *testing.T) {
	before := testutil.ToFloat64(sweepValuesTotal.WithLabelValues("tubing-id"))
	ObserveSweepValue("tubing-id")
	ObserveSweepValue("tubing-id")
	assert.Equal(t, before+2, testutil.ToFloat64(sweepValuesTotal.WithLabelValues("tubing-id")))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	ObserveAnalysis(time.Millisecond, OutcomeSuccess)

	path := filepath.Join(t.TempDir(), "gonodal.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gonodal_analyses_total")
	assert.Contains(t, string(data), "gonodal_analysis_seconds_bucket")
}

func TestWriteTextfileBadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	err := WriteTextfile(reg, filepath.Join(t.TempDir(), "missing", "dir", "out.prom"))
	assert.Error(t, err)
}
