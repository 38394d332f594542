// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rowtrace/matrix"
)

// runCLI executes the command line against a fresh database.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func isolate(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("ROWTRACE_DB_PATH", db)
	t.Setenv("ROWTRACE_LOG_LEVEL", "error")
	t.Setenv("ROWTRACE_METRICS_ADDR", "")
	t.Setenv("ROWTRACE_LOCALE", "en")

	return db
}

func TestSolve_Text(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "solve", "[[1,1,2],[2,2,4]]")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Step 0 (initial)")
	assert.Contains(t, out, "Step 1 (intermediate): R1 ↔ R2")
	assert.Contains(t, out, "Step 2 (intermediate): R1 → (1/2)R1")
	assert.Contains(t, out, "Step 4 (complete)")
	assert.Contains(t, out, "The system has infinitely many solutions.")
}

func TestSolve_UniqueSpanish(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "solve", "--locale", "es", "[[2,1,5],[1,-1,1]]")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Matriz aumentada inicial.")
	assert.Contains(t, out, "El sistema tiene solución única.")
	assert.Contains(t, out, "x = 2, y = 1")
}

func TestSolve_JSON(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "solve", "--json", "[[1,2,3,14],[2,5,6,30],[3,1,1,8]]")
	require.Equal(t, 0, code, errOut)

	var got struct {
		Steps []struct {
			Index int    `json:"index"`
			Phase string `json:"phase"`
		} `json:"steps"`
		Outcome  string    `json:"outcome"`
		Solution []float64 `json:"solution"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "unique", got.Outcome)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, got.Solution, 1e-9)
	require.NotEmpty(t, got.Steps)
	assert.Equal(t, "initial", got.Steps[0].Phase)
	assert.Equal(t, "complete", got.Steps[len(got.Steps)-1].Phase)
}

func TestSolve_FileAndREF(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "m.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[1,1,1],[1,1,5]]`), 0o600))

	code, out, errOut := runCLI(t, "solve", "--mode", "ref", "--file", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "row echelon form (REF)")
	assert.Contains(t, out, "The system has no solution.")
}

func TestSolve_Errors(t *testing.T) {
	isolate(t)
	for name, args := range map[string][]string{
		"missing matrix": {"solve"},
		"ragged":         {"solve", "[[1,2],[3]]"},
		"too wide":       {"solve", "[[1,2,3,4,5]]"},
		"bad mode":       {"solve", "--mode", "lu", "[[1,2]]"},
		"not json":       {"solve", "{"},
	} {
		t.Run(name, func(t *testing.T) {
			code, _, errOut := runCLI(t, args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut, "error:")
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	isolate(t)

	code, out, errOut := runCLI(t, "solve", "--save", "[[1,1,2],[2,2,4]]")
	require.Equal(t, 0, code, errOut)
	id := sessionID(t, out)

	code, out, _ = runCLI(t, "sessions", "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, id)

	code, out, _ = runCLI(t, "undo", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Position 2 of 3")

	code, out, _ = runCLI(t, "jump", id, "0")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Position 0 of 3")
	assert.Contains(t, out, "Initial augmented matrix.")

	code, out, _ = runCLI(t, "jump", id, "9")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "position 9 is outside 0..3")

	code, out, _ = runCLI(t, "redo", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Position 1 of 3: R1 ↔ R2")

	// Applying cuts the redo branch.
	code, out, errOut = runCLI(t, "apply", id, "scale", "1", "1/2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Position 2 of 2: R1 → (1/2)R1")

	code, _, errOut = runCLI(t, "apply", id, "scale", "1", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "scalar is zero")

	code, _, errOut = runCLI(t, "apply", "--strict", id, "add", "2", "2", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "target equals source")

	code, out, _ = runCLI(t, "show", "--all", id)
	require.Equal(t, 0, code)
	assert.Equal(t, 3, strings.Count(out, "Position "))

	code, out, _ = runCLI(t, "sessions", "export", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"kind":"swap"`)

	code, _, _ = runCLI(t, "sessions", "delete", id)
	require.Equal(t, 0, code)
	code, _, errOut = runCLI(t, "show", id)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not found")
}

func TestApply_NegativeScalars(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "solve", "--save", "[[1,1,2],[2,2,4]]")
	require.Equal(t, 0, code, errOut)
	id := sessionID(t, out)

	code, _, errOut = runCLI(t, "jump", id, "0")
	require.Equal(t, 0, code, errOut)

	code, out, errOut = runCLI(t, "apply", id, "add", "2", "1", "-2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Position 1 of 1: R2 → R2 - 2R1")
	assert.Contains(t, out, "Subtract 2 times row 1 from row 2.")

	code, out, errOut = runCLI(t, "apply", id, "scale", "1", "-1/2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Position 2 of 2: R1 → ")
	assert.Contains(t, out, "-1/2")

	code, out, errOut = runCLI(t, "apply", "--strict", id, "add", "1", "2", "-3")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Position 3 of 3: R1 → R1 - 3R2")

	code, out, errOut = runCLI(t, "jump", id, "-1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "position -1 is outside 0..3")
}

func TestSessionsImport(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "solve", "--save", "[[2,1,5],[1,-1,1]]")
	require.Equal(t, 0, code, errOut)
	id := sessionID(t, out)

	code, out, _ = runCLI(t, "sessions", "export", id)
	require.Equal(t, 0, code)
	path := filepath.Join(t.TempDir(), "rec.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	code, _, errOut = runCLI(t, "sessions", "import", path)
	assert.Equal(t, 1, code, "id already stored")
	assert.Contains(t, errOut, "already exists")

	isolate(t)
	code, out, errOut = runCLI(t, "sessions", "import", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, id)
}

func TestParseOperation(t *testing.T) {
	cases := []struct {
		args []string
		want matrix.RowOperation
	}{
		{[]string{"swap", "1", "3"}, matrix.Swap{Row1: 0, Row2: 2}},
		{[]string{"scale", "R2", "-2/3"}, matrix.Scale{Row: 1, Scalar: -2.0 / 3}},
		{[]string{"add", "3", "1", "-2"}, matrix.AddMultiple{Target: 2, Source: 0, Scalar: -2}},
		{[]string{"add_multiple", "2", "1", "0.5"}, matrix.AddMultiple{Target: 1, Source: 0, Scalar: 0.5}},
	}
	for _, tc := range cases {
		got, err := parseOperation(tc.args)
		require.NoError(t, err, "%v", tc.args)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range [][]string{
		nil,
		{"rotate", "1"},
		{"swap", "1"},
		{"scale", "x", "2"},
		{"scale", "1", "1/0"},
		{"add", "1", "2"},
	} {
		_, err := parseOperation(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func sessionID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) == 2 && f[0] == "session" {
			return f[1]
		}
	}
	t.Fatalf("no session id in output:\n%s", out)

	return ""
}
