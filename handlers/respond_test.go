package handlers

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to hyphens", "Monitoramento de Fauna", "Monitoramento-de-Fauna"},
		{"slashes to hyphens", "fase/1", "fase-1"},
		{"backslashes", "a\\b", "a-b"},
		{"colons", "campo:1", "campo-1"},
		{"quotes dropped", `"Fauna"`, "Fauna"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
