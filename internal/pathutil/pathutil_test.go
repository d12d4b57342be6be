package pathutil

import "testing"

func withHome(t *testing.T, home string) {
	t.Helper()
	prev := homeDir
	homeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { homeDir = prev })
}

func TestSimplify(t *testing.T) {
	withHome(t, "/home/me")
	cases := []struct {
		dir, cwd, want string
	}{
		{"/home/me/project/src", "/home/me/project", "src"},
		{"/home/me/project", "/home/me/project", "."},
		{"/home/me/notes", "/home/me/project", "~/notes"},
		{"/home/me", "/srv", "~"},
		{"/etc/nginx", "/home/me/project", "/etc/nginx"},
		{"/home/meo/x", "", "/home/meo/x"},
		{".", "/home/me", "."},
		{"/home/me/project/../other", "/home/me/project", "~/other"},
	}
	for _, tc := range cases {
		if got := Simplify(tc.dir, tc.cwd); got != tc.want {
			t.Fatalf("Simplify(%q, %q): expected %q, got %q", tc.dir, tc.cwd, tc.want, got)
		}
	}
}
