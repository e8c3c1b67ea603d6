package schema

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRevisionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "revisions.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRevisions(t *testing.T) {
	path := writeRevisionsFile(t, `
records: {
	GreetingRequest: {
		v0: fields: ["favorite_thing", "name"]
		v1: fields: ["favorite_song", "favorite_thing", "name"]
	}
	Greeting: {
		v0: fields: ["greeting", "name"]
		v1: fields: ["greeting"]
	}
}
`)

	revisions, err := LoadRevisions(path)
	require.NoError(t, err)
	require.Len(t, revisions, 4)

	// Sorted by record, then version.
	assert.Equal(t, "Greeting@v0", revisions[0].String())
	assert.Equal(t, "Greeting@v1", revisions[1].String())
	assert.Equal(t, "GreetingRequest@v0", revisions[2].String())
	assert.Equal(t, "GreetingRequest@v1", revisions[3].String())

	r, ok := Find(revisions, "GreetingRequest", "v1")
	require.True(t, ok)
	assert.Equal(t, []string{"favorite_song", "favorite_thing", "name"}, r.Fields)

	assert.Equal(t, []string{"Greeting", "GreetingRequest"}, Records(revisions))
}

func TestLoadRevisionsFileNotFound(t *testing.T) {
	_, err := LoadRevisions(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
}

func TestLoadRevisionsInvalidCUE(t *testing.T) {
	path := writeRevisionsFile(t, `records: { Greeting: { v0: fields:`)
	_, err := LoadRevisions(path)
	require.Error(t, err)
}

func TestCompileRevisionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "missing records struct",
			source:  `other: 1`,
			wantErr: "records struct is required",
		},
		{
			name:    "empty records struct",
			source:  `records: {}`,
			wantErr: "declares no records",
		},
		{
			name:    "record with no versions",
			source:  `records: Greeting: {}`,
			wantErr: "declares no versions",
		},
		{
			name:    "version without fields",
			source:  `records: Greeting: v0: {}`,
			wantErr: "fields list is required",
		},
		{
			name:    "empty fields list",
			source:  `records: Greeting: v0: fields: []`,
			wantErr: "must be non-empty",
		},
		{
			name:    "duplicate field",
			source:  `records: Greeting: v0: fields: ["name", "name"]`,
			wantErr: "duplicate field",
		},
	}

	ctx := cuecontext.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ctx.CompileString(tt.source)
			require.NoError(t, v.Err())

			_, err := CompileRevisions(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindMissingRevision(t *testing.T) {
	revisions := []Revision{NewRevision("Greeting", "v0", "greeting")}
	_, ok := Find(revisions, "Greeting", "v9")
	assert.False(t, ok)
}
