package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caio/go-prefixsum/internal/bench"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetErr(&stderr)
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	return stderr.String(), err
}

func TestReport(t *testing.T) {
	out, err := run(t, "st", "sum", "--min-log", "3", "--max-log", "5", "--runs", "2", "--queries", "50", "--level", "error")
	require.NoError(t, err)

	var report bench.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "segment_tree", report.Type)
	require.Len(t, report.Timings, 3)
}

func TestReportName(t *testing.T) {
	out, err := run(t, "sts_64u", "update", "--log", "wide64", "--min-log", "4", "--max-log", "4", "--runs", "1", "--queries", "10", "--level", "error")
	require.NoError(t, err)

	var report bench.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "wide64", report.Type)
	require.Len(t, report.Timings, 1)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PSDS_MAX_LOG", "7")
	t.Setenv("PSDS_MIN_LOG", "6")
	t.Setenv("PSDS_RUNS", "1")
	t.Setenv("PSDS_QUERIES", "20")
	t.Setenv("PSDS_LEVEL", "error")

	out, err := run(t, "stt", "sum")
	require.NoError(t, err)

	var report bench.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "truncated_segment_tree", report.Type)
	require.Len(t, report.Timings, 2)
}

func TestBadArguments(t *testing.T) {
	_, err := run(t, "st")
	require.Error(t, err)

	_, err = run(t, "st", "insert", "--level", "error")
	require.ErrorIs(t, err, bench.ErrBadConfig)

	_, err = run(t, "unknown", "sum", "--level", "error")
	require.Error(t, err)

	_, err = run(t, "st", "sum", "--level", "loud")
	require.Error(t, err)
}
