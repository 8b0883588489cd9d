package kbd

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, r *Reader, path string) ([]Section, error) {
	t.Helper()
	var sections []Section
	for section, err := range r.Sections(path) {
		if err != nil {
			return sections, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func TestReader_IncludeOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.kbd"), `
(defsrc a-before)
(include sub/b.kbd)
(deflayer a-after)
`)
	writeFile(t, filepath.Join(dir, "sub", "b.kbd"), `
(defalias b-before x)
(include "c.kbd")
(deflayer b-after)
`)
	writeFile(t, filepath.Join(dir, "sub", "c.kbd"), `(defcfg c-all)`)

	r := NewReader()
	sections, err := collect(t, r, filepath.Join(dir, "a.kbd"))
	require.NoError(t, err)

	var names []string
	for _, s := range sections {
		names = append(names, s.Body[1].String())
	}
	assert.Equal(t, []string{"a-before", "b-before", "c-all", "b-after", "a-after"}, names)

	assert.Equal(t, filepath.Join(dir, "sub", "c.kbd"), sections[2].Path)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.kbd"),
		filepath.Join(dir, "sub", "b.kbd"),
		filepath.Join(dir, "sub", "c.kbd"),
	}, r.Files())
}

func TestReader_SelfIncludeHitsDepthLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "loop.kbd"), `(defsrc a) (include loop.kbd)`)

	sections, err := collect(t, NewReader(WithMaxIncludeDepth(4)), filepath.Join(dir, "loop.kbd"))
	require.ErrorIs(t, err, ErrIncludeDepth)
	assert.Len(t, sections, 5)
}

func TestReader_MissingInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.kbd"), `(defsrc a) (include nope.kbd) (deflayer base a)`)

	sections, err := collect(t, NewReader(), filepath.Join(dir, "main.kbd"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "nope.kbd")
	assert.Len(t, sections, 1)
}

func TestReader_ParseErrorInIncludedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.kbd"), `(include broken.kbd)`)
	writeFile(t, filepath.Join(dir, "broken.kbd"), "(defsrc a\n")

	_, err := collect(t, NewReader(), filepath.Join(dir, "main.kbd"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, filepath.Join(dir, "broken.kbd"), parseErr.Path)
}

func TestReader_BadInclude(t *testing.T) {
	files := map[string]string{
		"/cfg/main.kbd": `(include a.kbd b.kbd)`,
	}
	r := NewReader(WithReadFile(func(path string) ([]byte, error) {
		content, ok := files[path]
		if !ok {
			return nil, fs.ErrNotExist
		}
		return []byte(content), nil
	}))

	_, err := collect(t, r, "/cfg/main.kbd")
	require.ErrorIs(t, err, ErrIncludeArgs)
}

func TestReader_StopsWhenConsumerStops(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.kbd"), `(defsrc a) (include other.kbd) (deflayer base a)`)
	writeFile(t, filepath.Join(dir, "other.kbd"), `(defalias x y) (defalias z w)`)

	r := NewReader()
	count := 0
	for _, err := range r.Sections(filepath.Join(dir, "main.kbd")) {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
