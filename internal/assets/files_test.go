package assets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_DecodeTOML(t *testing.T) {
	v, err := MugKind.DecodeTOML([]byte(`
mugHeight = 15
simple = true
handleComplexity = 500
mugComplexity = 12.7
`))
	require.NoError(t, err)
	assert.Equal(t, 15.0, v["mugHeight"])
	assert.True(t, v.Bool("simple"))
	assert.Equal(t, 100.0, v["handleComplexity"])
	assert.Equal(t, 12, v.Int("mugComplexity"))
	assert.Len(t, v, len(MugKind.Params))
}

func TestKind_DecodeTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "lidColor = 3"},
		{"flag as number", "simple = 1"},
		{"number as bool", "mugHeight = true"},
		{"number as text", `mugHeight = "tall"`},
		{"syntax", "mugHeight = "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MugKind.DecodeTOML([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestKind_SaveLoadParams(t *testing.T) {
	dir := t.TempDir()
	v := StoolKind.Random(11)
	for _, name := range []string{"stool.yaml", "stool.toml", "stool.TOML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, StoolKind.SaveParams(path, v))
			back, err := StoolKind.LoadParams(path)
			require.NoError(t, err)
			assert.Equal(t, v, back)
		})
	}

	_, err := StoolKind.LoadParams(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRegistry_Suggest(t *testing.T) {
	r := Builtin()
	_, err := r.Kind("stoool")
	require.ErrorIs(t, err, ErrUnknownAsset)
	assert.Contains(t, err.Error(), `did you mean "stool"`)

	_, err = r.Kind("Drawers")
	assert.Contains(t, err.Error(), `did you mean "drawer"`)

	_, err = r.Kind("xyzzyqq")
	require.ErrorIs(t, err, ErrUnknownAsset)
	assert.NotContains(t, err.Error(), "did you mean")
}
