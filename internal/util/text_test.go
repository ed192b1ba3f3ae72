package util

import "testing"

func TestIsBlank(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\n\t ", true},
		{"ok", false},
		{"  hi  ", false},
	}
	for _, tc := range tests {
		if got := IsBlank(tc.in); got != tc.want {
			t.Errorf("IsBlank(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Hi team,\nmeeting moved.", 0, "Hi team, meeting moved."},
		{"  padded  ", 20, "padded"},
		{"short", 5, "short"},
		{"abcdefgh", 5, "abcd…"},
		{"ab cdefgh", 4, "ab…"}, // trailing space before ellipsis dropped
		{"héllo wörld", 6, "héllo…"},
		{"abc", 1, "…"},
		{"", 10, ""},
	}
	for _, tc := range tests {
		if got := Preview(tc.in, tc.max); got != tc.want {
			t.Errorf("Preview(%q, %d) = %q; want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
