package gitrepo

import "testing"

func TestParseVersion(t *testing.T) {
	cases := []struct {
		input string
		want  Version
	}{
		{"git version 2.39.2", Version{2, 39, 2}},
		{"git version 2.29.0", Version{2, 29, 0}},
		{"2.41.0", Version{2, 41, 0}},
		{"git version 2.37.1.windows.1", Version{2, 37, 1}},
		{"git version 2.30", Version{2, 30, 0}},
	}
	for _, tc := range cases {
		got, err := ParseVersion(tc.input)
		if err != nil {
			t.Errorf("ParseVersion(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseVersionMalformed(t *testing.T) {
	for _, input := range []string{"", "git version", "git version x.y.z"} {
		if _, err := ParseVersion(input); err == nil {
			t.Errorf("ParseVersion(%q) expected error, got none", input)
		}
	}
}

func TestVersionLess(t *testing.T) {
	cases := []struct {
		a, b Version
		want bool
	}{
		{Version{2, 28, 9}, MinReferenceTransaction, true},
		{Version{2, 29, 0}, MinReferenceTransaction, false},
		{Version{2, 30, 0}, MinReferenceTransaction, false},
		{Version{1, 99, 99}, Version{2, 0, 0}, true},
		{Version{2, 29, 1}, Version{2, 29, 2}, true},
	}
	for _, tc := range cases {
		if got := tc.a.Less(tc.b); got != tc.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
