package picker

import (
	"testing"

	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

func buffers(paths ...string) []nvim.Buffer {
	out := make([]nvim.Buffer, len(paths))
	for i, p := range paths {
		out[i] = nvim.Buffer{Handle: nvim.BufferHandle(i + 1), Path: p}
	}
	return out
}

func TestDisambiguateMarksDuplicates(t *testing.T) {
	t.Setenv("HOME", "/nonexistent-home")
	got := Disambiguate(buffers("/a/x.txt", "/b/x.txt", "/c/y.txt"), "")
	want := []struct {
		display   string
		duplicate bool
	}{
		{"/a/x.txt", true},
		{"/b/x.txt", true},
		{"y.txt", false},
	}
	for i, w := range want {
		if got[i].DisplayName != w.display || got[i].Duplicate != w.duplicate {
			t.Fatalf("entry %d: expected %q duplicate=%v, got %q duplicate=%v", i, w.display, w.duplicate, got[i].DisplayName, got[i].Duplicate)
		}
	}
	if got[2].Directory != "/c" || got[2].BaseName != "y.txt" {
		t.Fatalf("expected directory /c and base y.txt, got %#v", got[2])
	}
}

func TestDisambiguateSimplifiesDirectories(t *testing.T) {
	t.Setenv("HOME", "/home/me")
	got := Disambiguate(buffers(
		"/home/me/project/cmd/main.go",
		"/home/me/project/main.go",
		"/home/me/scratch/main.go",
	), "/home/me/project")
	want := []string{"cmd/main.go", "./main.go", "~/scratch/main.go"}
	for i, w := range want {
		if got[i].DisplayName != w {
			t.Fatalf("entry %d: expected %q, got %q", i, w, got[i].DisplayName)
		}
	}
}

func TestDisambiguateUnnamedBuffer(t *testing.T) {
	got := Disambiguate(buffers(""), "/tmp")
	if got[0].DisplayName != unnamedBuffer || got[0].Duplicate {
		t.Fatalf("expected unnamed display, got %#v", got[0])
	}
}

func TestDisambiguateKeepsBufferIdentity(t *testing.T) {
	in := []nvim.Buffer{{Handle: 42, Path: "/x/a.go", Modified: true}}
	got := Disambiguate(in, "")
	if got[0].Handle != 42 || !got[0].Modified || got[0].Path != "/x/a.go" {
		t.Fatalf("expected buffer fields to carry through, got %#v", got[0])
	}
}
