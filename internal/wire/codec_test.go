package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type taggedNote struct {
	Title  string `json:"title"`
	Hidden string `json:"-"`
	Plain  string
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	data, err := JSON.Marshal(note{Title: "z", Body: "a"})
	require.NoError(t, err)
	assert.Equal(t, `{"body":"a","title":"z"}`, string(data))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	data, err := JSON.Marshal(note{Title: "<script>", Body: "a&b"})
	require.NoError(t, err)
	assert.Equal(t, `{"body":"a&b","title":"<script>"}`, string(data))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form.
	data, err := JSON.Marshal(note{Title: "café", Body: ""})
	require.NoError(t, err)
	assert.Equal(t, "{\"body\":\"\",\"title\":\"café\"}", string(data))
}

func TestMarshalCanonicalMapAndSlice(t *testing.T) {
	data, err := JSON.Marshal(map[string][]string{
		"zebra": {"b", "a"},
		"alpha": {},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":[],"zebra":["b","a"]}`, string(data))
}

func TestMarshalRejectsFloats(t *testing.T) {
	_, err := JSON.Marshal(3.14)
	require.Error(t, err)
}

func TestMarshalTagHandling(t *testing.T) {
	data, err := JSON.Marshal(taggedNote{Title: "t", Hidden: "x", Plain: "p"})
	require.NoError(t, err)
	assert.Equal(t, `{"Plain":"p","title":"t"}`, string(data))
}

func TestDecodeRoundTrip(t *testing.T) {
	in := note{Title: "hello", Body: "world"}
	out, err := Decode[note](Encode(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	out, err := Decode[note]([]byte(`{"title":"t","body":"b","extra":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, note{Title: "t", Body: "b"}, out)
}

func TestDecodeMissingFieldFails(t *testing.T) {
	_, err := Decode[note]([]byte(`{"title":"t"}`))
	require.Error(t, err)
	assert.True(t, IsMissingField(err))

	de, ok := AsDecodeError(err)
	require.True(t, ok)
	assert.Equal(t, "body", de.Field)
	assert.Equal(t, "note", de.Schema)
}

func TestDecodeMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json at all"},
		{"truncated object", `{"title":"t"`},
		{"wrong top-level type", `[1,2,3]`},
		{"wrong field type", `{"title":"t","body":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[note]([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "want malformed, got %v", err)
		})
	}
}

func TestDecodeEmptyObjectIntoEmptyStruct(t *testing.T) {
	type empty struct{}
	_, err := Decode[empty]([]byte(`{}`))
	require.NoError(t, err)
}

func TestEncodeDecodeDeterministic(t *testing.T) {
	in := note{Title: "same", Body: "every time"}

	first := Encode(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, string(first), string(Encode(in)))
	}

	a, errA := Decode[note](first)
	b, errB := Decode[note](first)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestDecodeFields(t *testing.T) {
	data := []byte(`{"greeting":"Hi","name":"Greg","surplus":"ignored"}`)

	require.NoError(t, DecodeFields(data, "Greeting", []string{"greeting", "name"}))

	err := DecodeFields(data, "Greeting", []string{"greeting", "name", "favorite_song"})
	require.Error(t, err)
	assert.True(t, IsMissingField(err))
	de, _ := AsDecodeError(err)
	assert.Equal(t, "favorite_song", de.Field)

	err = DecodeFields([]byte("junk"), "Greeting", []string{"greeting"})
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}

func TestUnmarshalTargetMustBePointer(t *testing.T) {
	var v note
	err := JSON.Unmarshal([]byte(`{}`), v)
	require.Error(t, err)
}

func TestCodecName(t *testing.T) {
	assert.Equal(t, "json", JSON.Name())
}
