package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/classmodel"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.True(t, opts.CPlusPlus)
	assert.True(t, opts.GenerateDefault)
	assert.Equal(t, classmodel.InheritAll, opts.InheritMode)
	assert.Equal(t, accessor.DefaultNaming(), opts.Naming)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
cplusplus: false
no_default: true
inherit: [functions, constants]
naming:
  member: "%c__%m"
  get: "get_%v"
log_level: debug
`))
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.False(t, opts.CPlusPlus)
	assert.False(t, opts.GenerateDefault)
	assert.Equal(t, classmodel.InheritFunctions|classmodel.InheritConstants, opts.InheritMode)
	assert.Equal(t, "Shape__area", opts.Naming.MemberName("Shape", "area"))
	assert.Equal(t, "get_Shape__x", opts.Naming.GetName("Shape__x"))
	assert.Equal(t, accessor.DefaultSet, opts.Naming.Set)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "cplusplus: true\nbogus: 1\n", "bogus"},
		{"bad inherit", "inherit: [methods]\n", "invalid inherit[0]"},
		{"bad level", "log_level: loud\n", "invalid log_level"},
		{"bad naming", "naming:\n  member: \"%c_\"\n", "lacks %m"},
		{"bad yaml", "inherit: [functions\n", "config: parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classwrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_default: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.NoDefault)
	assert.True(t, *cfg.CPlusPlus)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level: loud\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
