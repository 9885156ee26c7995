package winget

import "testing"

func TestCleanField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "23.01", "23.01"},
		{"surrounding space", "  1.2.3  ", "1.2.3"},
		{"broken bar dropped", "1.2.0 ¦ 1.2.1", "1.2.0 1.2.1"},
		{"ellipsis dropped", "Microsoft Visual Studio C…", "Microsoft Visual Studio C"},
		{"whitespace collapsed", "a   b\t c", "a b c"},
		{"non-ascii only", "…¦®", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanField(tt.input); got != tt.want {
				t.Errorf("cleanField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionToken(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"single dotted", "23.01", "23.01"},
		{"first dotted token wins", "1.2.0 1.2.1", "1.2.0"},
		{"leading junk skipped", "> 23.01", "23.01"},
		{"digits with dashes", "2021-09", "2021-09"},
		{"plain digits", "42", "42"},
		{"fallback to first token", "beta rc1", "beta"},
		{"unknown literal passes through", "Unknown", "Unknown"},
		{"empty cell", "", UnknownVersion},
		{"spaces only", "   ", UnknownVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionToken(tt.cell); got != tt.want {
				t.Errorf("versionToken(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestVersionTokenArtifactScenario(t *testing.T) {
	// An Available cell of "1.2.0 ¦ 1.2.1" cleans to "1.2.0 1.2.1" and the
	// first dotted token is selected.
	if got := versionToken(cleanField("1.2.0 ¦ 1.2.1")); got != "1.2.0" {
		t.Errorf("got %q, want %q", got, "1.2.0")
	}
}

func TestIsVersionDigits(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"123", true},
		{"1-2-3", true},
		{"1.2", true},
		{"v1", false},
		{"-", false},
		{".", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isVersionDigits(tt.tok); got != tt.want {
			t.Errorf("isVersionDigits(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}
