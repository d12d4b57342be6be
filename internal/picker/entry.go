package picker

import (
	"path/filepath"

	"github.com/atomicstack/nvim-switcher/internal/nvim"
	"github.com/atomicstack/nvim-switcher/internal/pathutil"
)

const unnamedBuffer = "[No Name]"

// Entry is a buffer prepared for display in the picker.
type Entry struct {
	nvim.Buffer
	BaseName    string
	Directory   string
	Duplicate   bool
	DisplayName string
}

// Disambiguate derives display names for buffers. A buffer whose base name is
// shared with another buffer in the same set is shown with its directory.
func Disambiguate(buffers []nvim.Buffer, cwd string) []Entry {
	entries := make([]Entry, len(buffers))
	counts := make(map[string]int, len(buffers))
	for i, b := range buffers {
		base, dir := unnamedBuffer, "."
		if b.Path != "" {
			base = filepath.Base(b.Path)
			dir = pathutil.Simplify(filepath.Dir(b.Path), cwd)
		}
		entries[i] = Entry{Buffer: b, BaseName: base, Directory: dir}
		counts[base]++
	}
	for i := range entries {
		e := &entries[i]
		e.Duplicate = counts[e.BaseName] > 1
		if e.Duplicate {
			e.DisplayName = e.Directory + "/" + e.BaseName
		} else {
			e.DisplayName = e.BaseName
		}
	}
	return entries
}

func displayName(e Entry) string {
	return e.DisplayName
}
