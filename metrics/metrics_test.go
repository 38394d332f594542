// SPDX-License-Identifier: MIT
package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rowtrace/metrics"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.Operation("swap", metrics.OutcomeOK)
	r.Operation("swap", metrics.OutcomeOK)
	r.Operation("scale", metrics.OutcomeRejected)
	r.HistoryAction(metrics.ActionUndo, metrics.OutcomeNoop)
	r.Step("initial")
	r.Classification("unique")
	r.SessionsActive(3)
	r.ObserveTrace(0.001)

	n, err := testutil.GatherAndCount(reg, "rowtrace_timeline_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "two label sets")

	expected := `
# HELP rowtrace_session_active Sessions currently held in memory.
# TYPE rowtrace_session_active gauge
rowtrace_session_active 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rowtrace_session_active"))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.Operation("swap", metrics.OutcomeOK)
		r.HistoryAction(metrics.ActionRedo, metrics.OutcomeOK)
		r.Step("complete")
		r.Classification("none")
		r.SessionsActive(1)
		r.ObserveTrace(1)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewRecorder(reg).Step("intermediate")

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `rowtrace_elimination_steps_total{phase="intermediate"} 1`)
}
