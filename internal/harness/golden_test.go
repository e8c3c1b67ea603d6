package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGoldenStoreScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/store_reader_skew.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRunWithGoldenExchangeScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/exchange_version_skew.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestSnapshotIsCanonical(t *testing.T) {
	result := &Result{
		Pass:     true,
		RunToken: "token",
		Trace: []TraceEvent{
			{Seq: 1, Kind: KindInsert, Record: "Greeting", Revision: "v0", Outcome: "ok"},
		},
	}

	data, err := Snapshot("sample", result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"pass":true,"run_token":"token","scenario_name":"sample","trace":[{"kind":"insert","outcome":"ok","record":"Greeting","revision":"v0","seq":1}]}`,
		string(data))
}

func TestSnapshotIncludesErrors(t *testing.T) {
	result := &Result{Pass: true, RunToken: "token", Trace: []TraceEvent{}}
	result.AddError("steps[0]: boom")

	data, err := Snapshot("failing", result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"errors":["steps[0]: boom"],"pass":false,"run_token":"token","scenario_name":"failing","trace":[]}`,
		string(data))
}

func TestSnapshotDeterminism(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/store_reader_skew.yaml")
	require.NoError(t, err)

	first, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	second, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
