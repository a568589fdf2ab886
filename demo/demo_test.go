package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"simonwaldherr.de/go/themedemo/config"
	"simonwaldherr.de/go/themedemo/worker"
)

func quickOptions() Options {
	o := DefaultOptions()
	o.Schedule = worker.Schedule{WorkerSteps: 9, WorkerInterval: time.Millisecond, MainSteps: 4, MainInterval: time.Millisecond}
	return o
}

// stripConcurrent drops the interleaved Thread/Main lines, whose order is
// not deterministic.
func stripConcurrent(out string) []string {
	var keep []string
	for _, l := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if strings.HasPrefix(l, "Thread: ") || strings.HasPrefix(l, "Main: ") {
			continue
		}
		keep = append(keep, l)
	}
	return keep
}

func TestRunOutput(t *testing.T) {
	var buf bytes.Buffer
	rep, err := Run(context.Background(), &buf, quickOptions(), zap.NewNop())
	require.NoError(t, err)

	want := []string{
		"Hello, my name is Alice and I am 30 years old",
		"Scores: [85, 92, 78, 96, 88, 95]",
		"Largest score: 96",
		"Timeout: 30",
		"Division result: 5.00",
		"Multiplication result: 30",
		"Squared scores: [7225, 8464, 6084, 9216, 7744, 9025]",
		"Person display: Alice (age: 30, active: true)",
		`After deactivation: Person { name: "Alice", age: 30, active: false }`,
	}
	if diff := cmp.Diff(want, stripConcurrent(buf.String())); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 9, strings.Count(buf.String(), "Thread: "))
	assert.Equal(t, 4, strings.Count(buf.String(), "Main: "))

	assert.Equal(t, 96, rep.Largest)
	assert.Equal(t, []int{7225, 8464, 6084, 9216, 7744, 9025}, rep.Squared)
	require.NotNil(t, rep.Timeout)
	assert.Equal(t, 30, *rep.Timeout)
	assert.True(t, rep.Division.OK)
	assert.Equal(t, 5.0, rep.Division.Value)
	assert.Equal(t, 30, rep.Product)
	assert.False(t, rep.Final.Active)
	assert.NotEmpty(t, rep.RunID)
}

func TestRunDoesNotMutateScores(t *testing.T) {
	o := quickOptions()
	_, err := Run(context.Background(), &bytes.Buffer{}, o, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{85, 92, 78, 96, 88}, o.Scores)
}

func TestRunDivisionByZero(t *testing.T) {
	o := quickOptions()
	o.Divisor = 0
	var buf bytes.Buffer
	rep, err := Run(context.Background(), &buf, o, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error: Division by zero\n")
	assert.False(t, rep.Division.OK)
	assert.Equal(t, "Division by zero", rep.Division.Error)
}

func TestRunTimeoutNotConfigured(t *testing.T) {
	o := quickOptions()
	o.Settings = config.NewSettings()
	var buf bytes.Buffer
	rep, err := Run(context.Background(), &buf, o, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Timeout not configured\n")
	assert.Nil(t, rep.Timeout)
}

func TestRunCancelled(t *testing.T) {
	o := DefaultOptions()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	var buf bytes.Buffer
	_, err := Run(ctx, &buf, o, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, buf.String(), "After deactivation")
}

func TestRunAlreadyCancelledSkipsWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	rep, err := Run(ctx, &buf, quickOptions(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, buf.String(), "Thread: ")
	assert.NotContains(t, buf.String(), "Main: ")
	assert.Contains(t, buf.String(), "Squared scores: ")
	assert.Equal(t, 96, rep.Largest)
}

func TestWriteReportKeepsZeroQuotient(t *testing.T) {
	o := quickOptions()
	o.Dividend = 0
	o.Divisor = 5
	rep, err := Run(context.Background(), &bytes.Buffer{}, o, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rep))

	var decoded struct {
		Division map[string]any `json:"division"`
	}
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded.Division["ok"])
	value, present := decoded.Division["value"]
	assert.True(t, present, "a zero quotient must still be reported")
	assert.EqualValues(t, 0, value)
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Settings.Set("timeout", 5)
	cfg.Schedule.MainSteps = 1
	o := FromConfig(cfg)
	v, _ := o.Settings.Lookup("timeout")
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, o.Schedule.MainSteps)
	assert.Equal(t, "Alice", o.Name)
}

func TestWriteReport(t *testing.T) {
	rep, err := Run(context.Background(), &bytes.Buffer{}, quickOptions(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rep))

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.RunID, decoded["run_id"])
	assert.EqualValues(t, 96, decoded["largest"])
	assert.Equal(t, false, decoded["final"].(map[string]any)["active"])
	assert.Equal(t, true, decoded["division"].(map[string]any)["ok"])
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "[]", FormatList(nil))
	assert.Equal(t, "[1]", FormatList([]int{1}))
	assert.Equal(t, "[1, 2, 3]", FormatList([]int{1, 2, 3}))
}
