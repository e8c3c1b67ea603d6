package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/store_reader_skew.yaml")
	require.NoError(t, err)

	assert.Equal(t, "store_reader_skew", scenario.Name)
	assert.Equal(t, "golden-store-reader-skew", scenario.RunToken)
	require.Len(t, scenario.Steps, 4)
	assert.NotNil(t, scenario.Steps[0].Insert)
	assert.NotNil(t, scenario.Steps[2].ReadAll)
	assert.Equal(t, "missing_field:name", scenario.Steps[3].ReadAll.Expect)
	require.Len(t, scenario.Assertions, 2)
}

func TestLoadScenarioFileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenarioFile(t, `
name: typo
description: "unknown field"
stepz:
  - insert: { record: Greeting, revision: v0, value: { greeting: "x", name: "y" } }
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps:\n  - read_all: { record: Greeting, revision: v0, expect: ok }\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps:\n  - read_all: { record: Greeting, revision: v0, expect: ok }\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "empty step",
			content: "name: n\ndescription: d\nsteps:\n  - {}\n",
			wantErr: "exactly one of",
		},
		{
			name: "two members in one step",
			content: "name: n\ndescription: d\nsteps:\n" +
				"  - read_all: { record: Greeting, revision: v0, expect: ok }\n" +
				"    check: { record: Greeting, encode: v0, decode: v1, value: { greeting: g, name: m }, expect: ok }\n",
			wantErr: "exactly one of",
		},
		{
			name:    "insert without value",
			content: "name: n\ndescription: d\nsteps:\n  - insert: { record: Greeting, revision: v0 }\n",
			wantErr: "value is required",
		},
		{
			name:    "read_all without expect",
			content: "name: n\ndescription: d\nsteps:\n  - read_all: { record: Greeting, revision: v0 }\n",
			wantErr: "expect is required",
		},
		{
			name:    "exchange without server",
			content: "name: n\ndescription: d\nsteps:\n  - exchange: { client: hello_v0, expect: ok }\n",
			wantErr: "client and server are required",
		},
		{
			name: "unknown assertion type",
			content: "name: n\ndescription: d\nsteps:\n" +
				"  - read_all: { record: Greeting, revision: v0, expect: ok }\n" +
				"assertions:\n  - type: nonsense\n",
			wantErr: "unknown assertion type",
		},
		{
			name: "trace_count without event",
			content: "name: n\ndescription: d\nsteps:\n" +
				"  - read_all: { record: Greeting, revision: v0, expect: ok }\n" +
				"assertions:\n  - type: trace_count\n    count: 1\n",
			wantErr: "event is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenarioFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
