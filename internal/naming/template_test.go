package naming

import (
	"testing"
)

func TestParseTemplateRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		season   int
		episode  int
		want     string
	}{
		{
			name:     "default template",
			template: DefaultTemplate,
			season:   1,
			episode:  2,
			want:     "S01E02",
		},
		{
			name:     "no padding",
			template: "Season {season} Episode {episode}",
			season:   3,
			episode:  12,
			want:     "Season 3 Episode 12",
		},
		{
			name:     "mixed padding",
			template: "{season}x{episode:02d}",
			season:   1,
			episode:  7,
			want:     "1x07",
		},
		{
			name:     "wide zero padding",
			template: "E{episode:03d}",
			season:   1,
			episode:  7,
			want:     "E007",
		},
		{
			name:     "space padding",
			template: "E{episode:3d}",
			season:   1,
			episode:  7,
			want:     "E  7",
		},
		{
			name:     "brace escapes",
			template: "{{S}}{season:02d}E{episode:02d}",
			season:   4,
			episode:  9,
			want:     "{S}04E09",
		},
		{
			name:     "value wider than padding",
			template: "S{season:02d}E{episode:02d}",
			season:   1,
			episode:  100,
			want:     "S01E100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.template)
			if err != nil {
				t.Fatalf("ParseTemplate(%q) error = %v", tt.template, err)
			}
			if got := tmpl.Render(tt.season, tt.episode); got != tt.want {
				t.Errorf("Render(%d, %d) = %q, want %q", tt.season, tt.episode, got, tt.want)
			}
		})
	}
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no placeholders", "episode"},
		{"unknown field", "{show}E{episode:02d}"},
		{"unclosed brace", "S{season:02d}E{episode"},
		{"stray closing brace", "S}E{episode:02d}"},
		{"string format spec", "{season:s}"},
		{"float format spec", "{episode:.2f}"},
		{"path separator", "S{season:02d}/{episode:02d}"},
		{"backslash", `S{season:02d}\E{episode:02d}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTemplate(tt.template); err == nil {
				t.Errorf("ParseTemplate(%q) expected error, got nil", tt.template)
			}
		})
	}
}

func TestTemplateFileName(t *testing.T) {
	tmpl, err := ParseTemplate(DefaultTemplate)
	if err != nil {
		t.Fatalf("ParseTemplate(%q) error = %v", DefaultTemplate, err)
	}

	// The extension travels verbatim, including its case.
	if got := tmpl.FileName(1, 2, ".MKV"); got != "S01E02.MKV" {
		t.Errorf("FileName() = %q, want %q", got, "S01E02.MKV")
	}
	if got := tmpl.FileName(10, 24, ".mp4"); got != "S10E24.mp4" {
		t.Errorf("FileName() = %q, want %q", got, "S10E24.mp4")
	}
}
