package richtext

import "testing"

func TestStripDuplicateTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		title    string
		want     string
	}{
		{
			name:     "matching title heading is removed",
			markdown: "# Guia\n\n## Visão geral\n\ntexto novo",
			title:    "Guia",
			want:     "## Visão geral\n\ntexto novo",
		},
		{
			name:     "comparison ignores case and accents",
			markdown: "# Instalacao\n\ncorpo",
			title:    "Instalação",
			want:     "corpo",
		},
		{
			name:     "different heading is kept",
			markdown: "# Outro\n\ncorpo",
			title:    "Guia",
			want:     "# Outro\n\ncorpo",
		},
		{
			name:     "level two heading is not a title",
			markdown: "## Guia\n\ncorpo",
			title:    "Guia",
			want:     "## Guia\n\ncorpo",
		},
		{
			name:     "empty title is a no-op",
			markdown: "# Guia\n\ncorpo",
			title:    "  ",
			want:     "# Guia\n\ncorpo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripDuplicateTitle(tt.markdown, tt.title)
			if got != tt.want {
				t.Errorf("StripDuplicateTitle() = %q, want %q", got, tt.want)
			}

			// Idempotence: a second pass must not remove anything else.
			if twice := StripDuplicateTitle(got, tt.title); twice != got {
				t.Errorf("second pass changed the result: %q -> %q", got, twice)
			}
		})
	}
}
