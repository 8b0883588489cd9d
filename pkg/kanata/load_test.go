package kanata

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kanata.kbd"), []byte(`
;; main file
(include aliases.kbd)
(defsrc a s d f)
(deflayer base a @ss @nav f)
(deflayer nav lft down)
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aliases.kbd"), []byte(`
(defalias
  nav (layer-while-held nav)
  ss (tap-hold-release 200 200 s @sft)
  sft lsft)
`), 0o644))

	log, logs := observedLogger()
	cfg, err := LoadConfig(filepath.Join(dir, "kanata.kbd"), log)
	require.NoError(t, err)

	assert.Equal(t, []Action{
		Key("a"),
		Form{Key("tap-hold-release"), Key("200"), Key("200"), Key("s"), Key("lsft")},
		Form{Key("layer-while-held"), Key("nav")},
		Key("f"),
	}, cfg.Layers["base"])
	assert.Equal(t, []string{
		filepath.Join(dir, "kanata.kbd"),
		filepath.Join(dir, "aliases.kbd"),
	}, cfg.Files)

	mismatch := logs.FilterMessage("layer length mismatch").All()
	require.Len(t, mismatch, 1)
	assert.Contains(t, mismatch[0].ContextMap()["error"], `layer "nav" has 2 actions for 4 source keys`)
}

func TestLoadConfig_IsStateless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanata.kbd")

	require.NoError(t, os.WriteFile(path, []byte(`(defsrc a) (deflayer old a) (defalias x y)`), 0o644))
	log, _ := observedLogger()
	first, err := LoadConfig(path, log)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`(defsrc b) (deflayer new b)`), 0o644))
	second, err := LoadConfig(path, log)
	require.NoError(t, err)

	assert.Equal(t, []string{"old"}, first.LayerOrder)
	assert.Equal(t, []string{"new"}, second.LayerOrder)
	assert.Empty(t, second.Aliases)
	assert.Equal(t, []string{"b"}, second.SrcKeys)
}

func TestLoadConfig_StructuralErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanata.kbd")
	require.NoError(t, os.WriteFile(path, []byte(`(defsrc a (b)`), 0o644))

	log, _ := observedLogger()
	_, err := LoadConfig(path, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
