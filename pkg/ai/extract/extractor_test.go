package extract

import "testing"

func TestDocumentMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced sentinel block",
			response: "Ok.\n```DOCUMENT_MARKDOWN\n# A\nbody\n```",
			want:     "# A\nbody",
		},
		{
			name:     "fenced block wins over earlier heading",
			response: "# Ignorado\n```DOCUMENT_MARKDOWN\n# Real\nconteúdo\n```",
			want:     "# Real\nconteúdo",
		},
		{
			name:     "lowercase sentinel tag",
			response: "```document_markdown\n# Guia\ntexto\n```",
			want:     "# Guia\ntexto",
		},
		{
			name:     "no fence falls back to first heading",
			response: "Explanation.\n# Title\nBody",
			want:     "# Title\nBody",
		},
		{
			name:     "heading mid-document keeps everything after it",
			response: "Segue o documento:\n\n# Guia\n\n## Seção\n\ntexto",
			want:     "# Guia\n\n## Seção\n\ntexto",
		},
		{
			name:     "no structure returns whole response",
			response: "Just plain prose, no structure.",
			want:     "Just plain prose, no structure.",
		},
		{
			name:     "whole response is trimmed",
			response: "  texto solto  \n",
			want:     "texto solto",
		},
		{
			name:     "empty response",
			response: "",
			want:     "",
		},
		{
			name:     "whitespace only",
			response: "   \n\t",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentMarkdown(tt.response); got != tt.want {
				t.Errorf("DocumentMarkdown(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}
