package worker

import (
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "Brazil", "Brazil"},
		{"Surrounding spaces", "  West Germany ", "West Germany"},
		{"Non-breaking space", "South\u00a0Korea", "South Korea"},
		{"Narrow no-break space", "Costa\u202fRica", "Costa Rica"},
		{"Zero width space", "Ita\u200bly", "Italy"},
		{"Byte order mark", "\ufeffUruguay", "Uruguay"},
		{"Accents kept", "Côte d'Ivoire", "Côte d'Ivoire"},
		{"Case kept", "USA", "USA"},
		{"Inner spacing kept", "Korea  DPR", "Korea  DPR"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeName(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeName(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func BenchmarkSanitizeName(b *testing.B) {
	input := "\ufeffSouth\u00a0Korea "
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sanitizeName(input)
	}
}
