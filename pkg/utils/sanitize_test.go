package utils

import "testing"

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Alice@X.COM", "alice@x.com"},
		{"trims", "  alice@x.com  ", "alice@x.com"},
		{"strips tags", "alice<script>@x.com", "alice@x.com"},
		{"plain", "bob@example.org", "bob@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  <b>Acme</b>  "); got != "&lt;b&gt;Acme&lt;/b&gt;" {
		t.Errorf("SanitizeString() = %q", got)
	}
}
