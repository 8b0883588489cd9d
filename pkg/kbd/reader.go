package kbd

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrIncludeArgs  = errors.New("include expects a single path")
	ErrIncludeDepth = errors.New("include depth exceeded")
)

const DefaultMaxIncludeDepth = 32

// Reader reads configuration files and inlines their include directives.
// A Reader remembers the files it read, so use a fresh one per load.
type Reader struct {
	maxDepth int
	readFile func(string) ([]byte, error)
	files    []string
}

type Option func(*Reader)

func WithMaxIncludeDepth(depth int) Option {
	return func(r *Reader) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithReadFile replaces os.ReadFile, mostly for tests.
func WithReadFile(readFile func(string) ([]byte, error)) Option {
	return func(r *Reader) {
		r.readFile = readFile
	}
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{
		maxDepth: DefaultMaxIncludeDepth,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Files returns the absolute paths of every file read so far, in read order.
func (r *Reader) Files() []string {
	return r.files
}

// Sections lazily yields the top-level sections of path. An include section
// is replaced, in place, by the sections of the included file, resolved
// relative to the directory of the including file. The first error ends the
// sequence.
func (r *Reader) Sections(path string) iter.Seq2[Section, error] {
	return func(yield func(Section, error) bool) {
		r.emit(path, 0, yield)
	}
}

func (r *Reader) emit(path string, depth int, yield func(Section, error) bool) bool {
	if depth > r.maxDepth {
		yield(Section{}, fmt.Errorf("read %s: %w (%d)", path, ErrIncludeDepth, r.maxDepth))
		return false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		yield(Section{}, fmt.Errorf("resolve %s: %w", path, err))
		return false
	}

	data, err := r.readFile(absPath)
	if err != nil {
		yield(Section{}, fmt.Errorf("read %s: %w", path, err))
		return false
	}
	r.files = append(r.files, absPath)

	lists, err := Parse(absPath, string(data))
	if err != nil {
		yield(Section{}, err)
		return false
	}

	for _, list := range lists {
		if head, _ := list.Head(); head == "include" {
			target, ok := includeTarget(list)
			if !ok {
				yield(Section{}, fmt.Errorf("%s: %w: %s", absPath, ErrIncludeArgs, list))
				return false
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(absPath), target)
			}
			if !r.emit(target, depth+1, yield) {
				return false
			}
			continue
		}

		if !yield(Section{Path: absPath, Body: list}, nil) {
			return false
		}
	}

	return true
}

func includeTarget(list List) (string, bool) {
	if len(list) != 2 {
		return "", false
	}
	atom, ok := list[1].(Atom)
	if !ok {
		return "", false
	}
	target := strings.Trim(string(atom), `"`)
	return target, target != ""
}
